package types

import "time"

type NegativeItemType string

const (
	NegativeLatePayment  NegativeItemType = "late_payment"
	NegativeChargeOff    NegativeItemType = "charge_off"
	NegativeCollection   NegativeItemType = "collection"
	NegativeBankruptcy   NegativeItemType = "bankruptcy"
	NegativeForeclosure  NegativeItemType = "foreclosure"
	NegativeRepossession NegativeItemType = "repossession"
	NegativeTaxLien      NegativeItemType = "tax_lien"
	NegativeJudgment     NegativeItemType = "judgment"
	NegativeInquiry      NegativeItemType = "inquiry"
)

// NegativeItem is a derogatory entry derived from a CreditAccount, or
// carried standalone when a provider reports one without a matching
// tradeline.
type NegativeItem struct {
	ID              string           `db:"id" json:"id,omitempty"`
	ReportID        string           `db:"report_id" json:"reportId,omitempty"`
	UserID          string           `db:"user_id" json:"-"`
	AccountID       *string          `db:"account_id" json:"accountId,omitempty"`
	Type            NegativeItemType `db:"item_type" json:"type"`
	CreditorName    string           `db:"creditor_name" json:"creditorName"`
	CurrentBalance  *float64         `db:"current_balance" json:"currentBalance,omitempty"`
	OriginalAmount  *float64         `db:"original_amount" json:"originalAmount,omitempty"`
	DateReported    *string          `db:"date_reported" json:"dateReported,omitempty"`
	DelinquencyDate *string          `db:"delinquency_date" json:"delinquencyDate,omitempty"`
	Status          string           `db:"status" json:"status,omitempty"`
	Description     string           `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"-"`
}
