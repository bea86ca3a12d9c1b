package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"creditlens/pkg/types"
)

const (
	fcraReportingYears       = 7
	bankruptcyReportingYears = 10
	utilizationThreshold     = 0.90
)

// statusMarkers map derogatory status keywords to an item type, checked
// in order so the specific markers win over the generic late ones.
var statusMarkers = []struct {
	marker   string
	itemType types.NegativeItemType
}{
	{"charge-off", types.NegativeChargeOff},
	{"charge off", types.NegativeChargeOff},
	{"chargeoff", types.NegativeChargeOff},
	{"collection", types.NegativeCollection},
	{"repossess", types.NegativeRepossession},
	{"foreclos", types.NegativeForeclosure},
	{"bankrupt", types.NegativeBankruptcy},
	{"tax lien", types.NegativeTaxLien},
	{"judgment", types.NegativeJudgment},
	{"late", types.NegativeLatePayment},
	{"past due", types.NegativeLatePayment},
	{"past_due", types.NegativeLatePayment},
	{"delinquent", types.NegativeLatePayment},
	{"default", types.NegativeLatePayment},
	{"closed", types.NegativeLatePayment},
}

// ClassifyStatus reports whether a payment status is derogatory and
// which item type it maps to. Markers without a dedicated type fall
// back to late_payment.
func ClassifyStatus(status string) (types.NegativeItemType, bool) {
	lower := strings.ToLower(strings.TrimSpace(status))
	if lower == "" {
		return "", false
	}
	for _, sm := range statusMarkers {
		if strings.Contains(lower, sm.marker) {
			return sm.itemType, true
		}
	}
	return "", false
}

// IdentifyNegativeItems derives negative items from accounts whose
// status carries a derogatory marker. Accounts are expected to already
// have their ids assigned so the items can reference them.
func IdentifyNegativeItems(accounts []types.CreditAccount) []types.NegativeItem {
	items := make([]types.NegativeItem, 0)

	for i := range accounts {
		account := &accounts[i]

		itemType, negative := ClassifyStatus(account.PaymentStatus)
		if !negative {
			continue
		}

		item := types.NegativeItem{
			Type:           itemType,
			CreditorName:   account.CreditorName,
			CurrentBalance: account.Balance,
			DateReported:   account.DateReported,
			Status:         account.PaymentStatus,
			Description:    fmt.Sprintf("%s reported by %s", itemLabel(itemType), account.CreditorName),
		}
		if account.ID != "" {
			id := account.ID
			item.AccountID = &id
		}

		items = append(items, item)
	}

	return items
}

// MergeNegativeItems keeps the derived items and appends
// provider-supplied items that no derived item already covers. Items
// without a backing account stay standalone.
func MergeNegativeItems(derived, provided []types.NegativeItem) []types.NegativeItem {
	covered := make(map[string]struct{}, len(derived))
	for _, item := range derived {
		covered[itemKey(item)] = struct{}{}
	}

	merged := derived
	for _, item := range provided {
		if _, ok := covered[itemKey(item)]; ok {
			continue
		}
		covered[itemKey(item)] = struct{}{}
		item.AccountID = nil // provider references are not trusted
		merged = append(merged, item)
	}
	return merged
}

func itemKey(item types.NegativeItem) string {
	return strings.ToLower(item.CreditorName) + "|" + string(item.Type)
}

// DetectViolations applies the fixed rule set. Rules are independent;
// one account can raise several violations.
func DetectViolations(accounts []types.CreditAccount, items []types.NegativeItem, now time.Time) []types.Violation {
	violations := make([]types.Violation, 0)

	violations = append(violations, duplicateViolations(accounts)...)
	violations = append(violations, ageViolations(items, now)...)
	violations = append(violations, completenessViolations(accounts)...)
	violations = append(violations, consistencyViolations(accounts)...)
	violations = append(violations, utilizationViolations(accounts)...)

	return violations
}

// duplicateViolations flags groups of accounts sharing creditor, type
// and the last four digits of the account number.
func duplicateViolations(accounts []types.CreditAccount) []types.Violation {
	groups := make(map[string][]*types.CreditAccount)
	var order []string

	for i := range accounts {
		account := &accounts[i]
		key := strings.ToLower(account.CreditorName) + "|" + string(account.AccountType) + "|" + lastFour(account.AccountNumber)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], account)
	}

	var violations []types.Violation
	for _, key := range order {
		group := groups[key]
		if len(group) <= 1 {
			continue
		}

		v := types.Violation{
			Type:            types.ViolationMetro2,
			Severity:        types.SeverityMedium,
			Description:     fmt.Sprintf("%s is reported %d times for the same tradeline (ending %s)", group[0].CreditorName, len(group), lastFour(group[0].AccountNumber)),
			SuggestedAction: "Dispute the duplicate tradeline with each reporting bureau",
		}
		if group[0].ID != "" {
			id := group[0].ID
			v.AccountID = &id
		}
		violations = append(violations, v)
	}

	return violations
}

// ageViolations flags items reported beyond the FCRA limit: strictly
// older than 7 years, 10 for bankruptcies. Items whose reported date is
// missing or unparsable are skipped; unknown dates are a product
// decision, not a rule hit.
func ageViolations(items []types.NegativeItem, now time.Time) []types.Violation {
	var violations []types.Violation

	for i := range items {
		item := &items[i]
		if item.DateReported == nil {
			continue
		}
		reported, ok := parseReportDate(*item.DateReported)
		if !ok {
			continue
		}

		years := fcraReportingYears
		if item.Type == types.NegativeBankruptcy {
			years = bankruptcyReportingYears
		}

		cutoff := now.AddDate(-years, 0, 0)
		if !reported.Before(cutoff) {
			continue
		}

		legal := "15 U.S.C. 1681c"
		v := types.Violation{
			Type:            types.ViolationFCRA,
			Severity:        types.SeverityHigh,
			Description:     fmt.Sprintf("%s from %s is beyond the %d-year FCRA reporting limit", itemLabel(item.Type), *item.DateReported, years),
			SuggestedAction: "Demand removal of the obsolete item from the report",
			LegalBasis:      &legal,
		}
		if item.ID != "" {
			id := item.ID
			v.NegativeItemID = &id
		}
		violations = append(violations, v)
	}

	return violations
}

// completenessViolations flags accounts missing more than one of the
// core reported fields.
func completenessViolations(accounts []types.CreditAccount) []types.Violation {
	var violations []types.Violation

	for i := range accounts {
		account := &accounts[i]

		missing := 0
		if account.DateOpened == nil {
			missing++
		}
		if account.DateReported == nil {
			missing++
		}
		if account.Balance == nil && account.CreditLimit == nil {
			missing++
		}
		if strings.TrimSpace(account.PaymentStatus) == "" {
			missing++
		}
		if missing <= 1 {
			continue
		}

		v := types.Violation{
			Type:            types.ViolationMetro2,
			Severity:        types.SeverityLow,
			Description:     fmt.Sprintf("%s tradeline is missing %d required reporting fields", account.CreditorName, missing),
			SuggestedAction: "Request a fully furnished tradeline or its removal",
		}
		if account.ID != "" {
			id := account.ID
			v.AccountID = &id
		}
		violations = append(violations, v)
	}

	return violations
}

// consistencyViolations flags balances exceeding the credit limit.
func consistencyViolations(accounts []types.CreditAccount) []types.Violation {
	var violations []types.Violation

	for i := range accounts {
		account := &accounts[i]
		if account.Balance == nil || account.CreditLimit == nil || *account.CreditLimit <= 0 {
			continue
		}
		if *account.Balance <= *account.CreditLimit {
			continue
		}

		v := types.Violation{
			Type:            types.ViolationMetro2,
			Severity:        types.SeverityMedium,
			Description:     fmt.Sprintf("%s reports a balance of %.2f over its %.2f limit", account.CreditorName, *account.Balance, *account.CreditLimit),
			SuggestedAction: "Verify the reported balance and limit with the furnisher",
		}
		if account.ID != "" {
			id := account.ID
			v.AccountID = &id
		}
		violations = append(violations, v)
	}

	return violations
}

// utilizationViolations flags credit cards running above 90%
// utilization.
func utilizationViolations(accounts []types.CreditAccount) []types.Violation {
	var violations []types.Violation

	for i := range accounts {
		account := &accounts[i]
		if account.AccountType != types.AccountTypeCreditCard {
			continue
		}
		util, ok := account.Utilization()
		if !ok || util <= utilizationThreshold {
			continue
		}

		v := types.Violation{
			Type:            types.ViolationOther,
			Severity:        types.SeverityMedium,
			Description:     fmt.Sprintf("%s card utilization is %.0f%%, above the 90%% threshold", account.CreditorName, util*100),
			SuggestedAction: "Pay the balance down below 30% utilization",
		}
		if account.ID != "" {
			id := account.ID
			v.AccountID = &id
		}
		violations = append(violations, v)
	}

	return violations
}

var nonDigitRe = regexp.MustCompile(`\D`)

func lastFour(number string) string {
	digits := nonDigitRe.ReplaceAllString(number, "")
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func itemLabel(itemType types.NegativeItemType) string {
	return strings.ReplaceAll(string(itemType), "_", " ")
}
