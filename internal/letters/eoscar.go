package letters

import (
	"regexp"
	"strings"
)

// ComplianceCheck is a single pass/fail criterion applied to a letter
// body before it is persisted.
type ComplianceCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// ComplianceResult is the scored outcome. Score is the percentage of
// checks passed, 0-100.
type ComplianceResult struct {
	Score  int               `json:"score"`
	Checks []ComplianceCheck `json:"checks"`
}

func (r ComplianceResult) Passed(name string) bool {
	for _, c := range r.Checks {
		if c.Name == name {
			return c.Passed
		}
	}

	return false
}

const (
	minLetterLength = 300
	maxLetterLength = 6000
)

var (
	dateLineRe    = regexp.MustCompile(`(?m)^(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\s*$`)
	accountRefRe  = regexp.MustCompile(`(?i)account[:\s#]`)
	salutationRe  = regexp.MustCompile(`(?i)(to whom it may concern|dear\s)`)
	signatureRe   = regexp.MustCompile(`(?i)sincerely|respectfully`)
	fcraRe        = regexp.MustCompile(`(?i)fair credit reporting act|fair debt collection practices act|15 u\.s\.c\.`)
	disputeWordRe = regexp.MustCompile(`(?i)dispute|inaccurate|request.{0,20}(validation|verification)`)
	leftoverTokRe = regexp.MustCompile(`\[[^\]\n]+\]`)
	specialCharRe = regexp.MustCompile(`[^\x20-\x7E\n\t]`)
)

// ScoreLetter runs the automated compliance checks modeled on what
// e-OSCAR intake tends to choke on: missing dates, no account
// reference, control characters, form-letter bodies with unresolved
// placeholders.
func ScoreLetter(body string) ComplianceResult {
	trimmed := strings.TrimSpace(body)

	checks := []ComplianceCheck{
		check("date", dateLineRe.MatchString(trimmed),
			"letter should open with a written-out date"),
		check("recipient", strings.Contains(trimmed, "Re:"),
			"letter should carry a subject (Re:) line"),
		check("salutation", salutationRe.MatchString(trimmed),
			"letter should have a salutation"),
		check("account_reference", accountRefRe.MatchString(trimmed),
			"letter should reference the disputed account"),
		check("dispute_statement", disputeWordRe.MatchString(trimmed),
			"letter should state the dispute or validation request"),
		check("legal_citation", fcraRe.MatchString(trimmed),
			"letter should cite the statute it relies on"),
		check("signature", signatureRe.MatchString(trimmed),
			"letter should close with a signature block"),
		check("no_placeholders", !leftoverTokRe.MatchString(trimmed),
			"letter contains unresolved placeholders"),
		check("length", len(trimmed) >= minLetterLength && len(trimmed) <= maxLetterLength,
			"letter length is outside the accepted range"),
		check("printable", !specialCharRe.MatchString(trimmed),
			"letter contains non-printable or non-ASCII characters"),
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	return ComplianceResult{
		Score:  passed * 100 / len(checks),
		Checks: checks,
	}
}

func check(name string, passed bool, detail string) ComplianceCheck {
	c := ComplianceCheck{Name: name, Passed: passed}
	if !passed {
		c.Detail = detail
	}

	return c
}

var (
	smartQuoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		"–", "-", "—", "-",
		" ", " ",
	)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
	trailingWSRe = regexp.MustCompile(`(?m)[ \t]+$`)
)

// NormalizeLetter rewrites typographic quotes and dashes to their
// ASCII equivalents, strips trailing whitespace and collapses runs of
// blank lines. Normalizing before scoring raises the printable check's
// pass rate without changing the letter's content.
func NormalizeLetter(body string) string {
	out := smartQuoteReplacer.Replace(body)
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = trailingWSRe.ReplaceAllString(out, "")
	out = multiBlankRe.ReplaceAllString(out, "\n\n")

	return strings.TrimSpace(out)
}
