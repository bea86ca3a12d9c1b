package letters

import (
	"fmt"
	"strings"
	"time"

	"creditlens/pkg/types"
)

// Request carries everything needed to render a letter. Item and
// Violation are optional; when present they drive the dispute reason
// and description.
type Request struct {
	Type            types.LetterType `form:"type"`
	Recipient       string           `form:"recipient"`
	ConsumerName    string           `form:"consumerName"`
	ConsumerAddress string           `form:"consumerAddress"`
	SSNLast4        string           `form:"ssnLast4"`
	CreditorName    string           `form:"creditorName"`
	AccountNumber   string           `form:"accountNumber"`

	Item      *types.NegativeItem
	Violation *types.Violation
}

// Generate renders the letter for req and returns the body together
// with its compliance score. The returned body has already been
// normalized.
func Generate(req Request, now time.Time) (string, ComplianceResult) {
	tmpl := templateFor(req.Type)

	reason := defaultDisputeReason
	description := ""
	if req.Item != nil {
		if r, ok := disputeReasons[req.Item.Type]; ok {
			reason = r
		}
		description = itemDescription(req.Item)
		if req.CreditorName == "" {
			req.CreditorName = req.Item.CreditorName
		}
	}

	legalBasis := "This conduct may constitute a violation of the Fair Credit Reporting Act, 15 U.S.C. 1681 et seq."
	if req.Violation != nil {
		if req.Violation.LegalBasis != nil && *req.Violation.LegalBasis != "" {
			legalBasis = *req.Violation.LegalBasis
		}
		if req.Violation.Description != "" && description == "" {
			description = req.Violation.Description
		}
	}

	body := fillTemplate(tmpl, map[string]string{
		"DATE":             now.Format("January 2, 2006"),
		"CONSUMER_NAME":    req.ConsumerName,
		"CONSUMER_ADDRESS": req.ConsumerAddress,
		"RECIPIENT":        req.Recipient,
		"CREDITOR_NAME":    req.CreditorName,
		"ACCOUNT_NUMBER":   req.AccountNumber,
		"SSN_LAST4":        req.SSNLast4,
		"DISPUTE_REASON":   reason,
		"ITEM_DESCRIPTION": description,
		"LEGAL_BASIS":      legalBasis,
	})

	body = NormalizeLetter(body)

	return body, ScoreLetter(body)
}

// Subject builds the persisted subject line for a generated letter.
func Subject(req Request) string {
	label := map[types.LetterType]string{
		types.LetterTypeDispute:      "Dispute",
		types.LetterTypeComplaint:    "Complaint",
		types.LetterTypeVerification: "Debt Verification Request",
	}[req.Type]
	if label == "" {
		label = "Dispute"
	}

	if req.CreditorName != "" {
		return fmt.Sprintf("%s - %s", label, req.CreditorName)
	}

	return label
}

// tokenDefaults fill placeholders the caller left blank so the letter
// never ships with a raw [TOKEN] in it.
var tokenDefaults = map[string]string{
	"CONSUMER_NAME":    "[Your Name]",
	"CONSUMER_ADDRESS": "[Your Address]",
	"RECIPIENT":        "[Credit Bureau Address]",
	"CREDITOR_NAME":    "the creditor listed",
	"ACCOUNT_NUMBER":   "[Account Number]",
	"SSN_LAST4":        "[XXXX]",
	"ITEM_DESCRIPTION": "",
}

func fillTemplate(tmpl string, values map[string]string) string {
	out := tmpl
	for token, value := range values {
		if value == "" {
			value = tokenDefaults[token]
		}

		out = strings.ReplaceAll(out, "["+token+"]", value)
	}

	return out
}

func itemDescription(item *types.NegativeItem) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("The disputed item is reported as a %s", strings.ReplaceAll(string(item.Type), "_", " ")))
	if item.CreditorName != "" {
		sb.WriteString(fmt.Sprintf(" by %s", item.CreditorName))
	}

	if item.CurrentBalance != nil {
		sb.WriteString(fmt.Sprintf(" with a reported balance of $%.2f", *item.CurrentBalance))
	}

	if item.DateReported != nil && *item.DateReported != "" {
		sb.WriteString(fmt.Sprintf(", dated %s", *item.DateReported))
	}

	sb.WriteString(".")

	return sb.String()
}
