package extract

import (
	"regexp"
	"strconv"
	"strings"

	"creditlens/internal/utils"
	"creditlens/pkg/types"
)

const (
	minTextLength    = 100
	minAccountDigits = 4
	unknownCreditor  = "Unknown Creditor"
)

var (
	// headers are the all-caps section titles; case matters so field
	// labels like "Account Number" do not split a tradeline in half
	sectionHeaderRe = regexp.MustCompile(`(?m)^.*\b(?:ACCOUNT|TRADE ?LINE|TRADELINE|CREDITOR INFORMATION)\b.*$`)

	accountNumberRe = regexp.MustCompile(`(?i)(?:account|acct)\.?\s*(?:number|no\.?|#)?\s*[:#]?\s*([0-9Xx*]["0-9Xx*\- ]{2,22}[0-9Xx*])`)
	creditorRe      = regexp.MustCompile(`(?im)^\s*(?:creditor|company|furnisher|original\s+creditor)\s*:?\s*(.+?)\s*$`)
	balanceRe       = regexp.MustCompile(`(?i)(?:current\s+)?balance\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`)
	creditLimitRe   = regexp.MustCompile(`(?i)(?:credit\s+limit|high\s+credit|limit)\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`)
	statusRe        = regexp.MustCompile(`(?im)^\s*(?:payment\s+status|account\s+status|status)\s*:?\s*(.+?)\s*$`)
	dateOpenedRe    = regexp.MustCompile(`(?i)(?:date\s+opened|opened)\s*:?\s*(\d{1,4}[/\-.]\d{1,2}[/\-.]\d{1,4})`)
	dateReportedRe  = regexp.MustCompile(`(?i)(?:date\s+reported|last\s+reported|reported)\s*:?\s*(\d{1,4}[/\-.]\d{1,2}[/\-.]\d{1,4})`)
	paymentHistRe   = regexp.MustCompile(`(?i)payment\s+history\s*:?\s*([0-9CXO\- ]{2,})`)

	nameRe    = regexp.MustCompile(`(?im)^\s*(?:name|consumer)\s*:?\s*([A-Za-z][A-Za-z .,'\-]{1,60})\s*$`)
	ssnRe     = regexp.MustCompile(`(?i)(?:ssn|social\s+security)[^\dXx*]{0,10}(?:[\dXx*]{3}[\- ][\dXx*]{2}[\- ])?(\d{4})\b`)
	dobRe     = regexp.MustCompile(`(?i)(?:date\s+of\s+birth|dob)\s*:?\s*(\d{1,4}[/\-.]\d{1,2}[/\-.]\d{1,4})`)
	addressRe = regexp.MustCompile(`(?im)^\s*(?:current\s+address|address)\s*:?\s*(.+?)\s*$`)

	inquiryLineRe = regexp.MustCompile(`(?m)^\s*([A-Z][A-Za-z&.,' \-]{2,40}?)\s{2,}(\d{1,2}/\d{1,2}/\d{2,4})\s*$`)

	nonAlnumRe = regexp.MustCompile(`[^0-9A-Za-z]`)
)

var accountTypeKeywords = []struct {
	keyword string
	acctype types.AccountType
}{
	{"credit card", types.AccountTypeCreditCard},
	{"visa", types.AccountTypeCreditCard},
	{"mastercard", types.AccountTypeCreditCard},
	{"american express", types.AccountTypeCreditCard},
	{"amex", types.AccountTypeCreditCard},
	{"discover", types.AccountTypeCreditCard},
	{"revolving", types.AccountTypeCreditCard},
	{"mortgage", types.AccountTypeMortgage},
	{"home loan", types.AccountTypeMortgage},
	{"auto loan", types.AccountTypeAutoLoan},
	{"auto", types.AccountTypeAutoLoan},
	{"vehicle", types.AccountTypeAutoLoan},
	{"student loan", types.AccountTypeStudentLoan},
	{"student", types.AccountTypeStudentLoan},
	{"personal loan", types.AccountTypePersonalLoan},
	{"installment", types.AccountTypePersonalLoan},
}

// PatternExtractor recovers structured records from raw report text with
// a fixed regex set. It is the fallback when no AI provider is in play.
type PatternExtractor struct{}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// ExtractFields produces a tagged extraction from raw report text.
// Every field inside a section is optional; missing values get
// defaults rather than dropping the section.
func (e *PatternExtractor) ExtractFields(text string) Extraction {
	if len(strings.TrimSpace(text)) < minTextLength {
		return Empty("text too short to contain report data")
	}

	report := &types.ParsedReport{
		PersonalInfo:  e.extractPersonalInfo(text),
		Accounts:      e.extractAccounts(text),
		Inquiries:     e.extractInquiries(text),
		PublicRecords: e.extractPublicRecords(text),
	}

	if len(report.Accounts) == 0 && report.PersonalInfo.Empty() {
		return Empty("no accounts or personal info recognized")
	}

	return Found(report)
}

func (e *PatternExtractor) extractAccounts(text string) []types.CreditAccount {
	sections := splitSections(text)

	accounts := make([]types.CreditAccount, 0, len(sections))
	seen := make(map[string]struct{})

	for _, section := range sections {
		account, ok := e.extractAccount(section)
		if !ok {
			continue
		}

		normalized := normalizeAccountNumber(account.AccountNumber)
		if len(normalized) < minAccountDigits {
			continue // noise, not a real tradeline
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}

		accounts = append(accounts, account)
	}

	return accounts
}

// splitSections cuts the text into per-account chunks on section
// headers; when no headers match it falls back to starting a chunk at
// every account-number line.
func splitSections(text string) []string {
	headerIdx := sectionHeaderRe.FindAllStringIndex(text, -1)
	if len(headerIdx) == 0 {
		headerIdx = accountNumberRe.FindAllStringIndex(text, -1)
	}
	if len(headerIdx) == 0 {
		return []string{text}
	}

	sections := make([]string, 0, len(headerIdx))
	for i, idx := range headerIdx {
		start := idx[0]
		end := len(text)
		if i+1 < len(headerIdx) {
			end = headerIdx[i+1][0]
		}
		sections = append(sections, text[start:end])
	}
	return sections
}

func (e *PatternExtractor) extractAccount(section string) (types.CreditAccount, bool) {
	account := types.CreditAccount{
		CreditorName: unknownCreditor,
		AccountType:  types.AccountTypeOther,
	}

	m := accountNumberRe.FindStringSubmatch(section)
	if m == nil {
		return account, false
	}
	account.AccountNumber = strings.TrimSpace(m[1])

	if m := creditorRe.FindStringSubmatch(section); m != nil {
		account.CreditorName = strings.TrimSpace(m[1])
	}
	if m := balanceRe.FindStringSubmatch(section); m != nil {
		if v, ok := parseMoney(m[1]); ok {
			account.Balance = utils.Float64Ptr(v)
		}
	}
	if m := creditLimitRe.FindStringSubmatch(section); m != nil {
		if v, ok := parseMoney(m[1]); ok {
			account.CreditLimit = utils.Float64Ptr(v)
		}
	}
	if m := statusRe.FindStringSubmatch(section); m != nil {
		account.PaymentStatus = strings.TrimSpace(m[1])
	}
	if m := dateOpenedRe.FindStringSubmatch(section); m != nil {
		account.DateOpened = utils.StringPtr(m[1])
	}
	if m := dateReportedRe.FindStringSubmatch(section); m != nil {
		account.DateReported = utils.StringPtr(m[1])
	}
	if m := paymentHistRe.FindStringSubmatch(section); m != nil {
		account.PaymentHistory = strings.TrimSpace(m[1])
	}

	account.AccountType = detectAccountType(section)
	account.Bureaus = detectBureaus(section)

	return account, true
}

func (e *PatternExtractor) extractPersonalInfo(text string) types.PersonalInfo {
	var info types.PersonalInfo

	if m := nameRe.FindStringSubmatch(text); m != nil {
		info.Name = strings.TrimSpace(m[1])
	}
	if m := ssnRe.FindStringSubmatch(text); m != nil {
		info.SSN = "XXX-XX-" + m[1]
	}
	if m := dobRe.FindStringSubmatch(text); m != nil {
		info.DateOfBirth = m[1]
	}
	if m := addressRe.FindStringSubmatch(text); m != nil {
		info.Address = strings.TrimSpace(m[1])
	}

	return info
}

func (e *PatternExtractor) extractInquiries(text string) []types.Inquiry {
	section, ok := sectionAfter(text, "INQUIR")
	if !ok {
		return nil
	}

	var inquiries []types.Inquiry
	for _, m := range inquiryLineRe.FindAllStringSubmatch(section, -1) {
		inquiries = append(inquiries, types.Inquiry{
			CreditorName: strings.TrimSpace(m[1]),
			Date:         m[2],
			InquiryType:  "hard",
		})
	}
	return inquiries
}

func (e *PatternExtractor) extractPublicRecords(text string) []types.PublicRecord {
	section, ok := sectionAfter(text, "PUBLIC RECORD")
	if !ok {
		return nil
	}

	var records []types.PublicRecord
	lower := strings.ToLower(section)
	for _, recordType := range []string{"bankruptcy", "tax lien", "judgment", "foreclosure"} {
		if strings.Contains(lower, recordType) {
			record := types.PublicRecord{RecordType: strings.ReplaceAll(recordType, " ", "_")}
			if m := dateReportedRe.FindStringSubmatch(section); m != nil {
				record.DateFiled = m[1]
			}
			records = append(records, record)
		}
	}
	return records
}

// sectionAfter returns the text from the first occurrence of marker up
// to the next all-caps section header, best effort.
func sectionAfter(text, marker string) (string, bool) {
	idx := strings.Index(strings.ToUpper(text), marker)
	if idx < 0 {
		return "", false
	}
	section := text[idx:]
	if end := sectionHeaderRe.FindStringIndex(section[len(marker):]); end != nil {
		section = section[:len(marker)+end[0]]
	}
	return section, true
}

func normalizeAccountNumber(number string) string {
	return strings.ToUpper(nonAlnumRe.ReplaceAllString(number, ""))
}

func detectAccountType(section string) types.AccountType {
	lower := strings.ToLower(section)
	for _, kw := range accountTypeKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.acctype
		}
	}
	return types.AccountTypeOther
}

func detectBureaus(section string) []string {
	lower := strings.ToLower(section)

	var bureaus []string
	for _, bureau := range []string{types.BureauExperian, types.BureauEquifax, types.BureauTransUnion} {
		if strings.Contains(lower, strings.ToLower(bureau)) {
			bureaus = append(bureaus, bureau)
		}
	}
	return bureaus
}

func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
