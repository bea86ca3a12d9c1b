package types

import "time"

type AccountType string

const (
	AccountTypeCreditCard   AccountType = "credit_card"
	AccountTypeMortgage     AccountType = "mortgage"
	AccountTypeAutoLoan     AccountType = "auto_loan"
	AccountTypePersonalLoan AccountType = "personal_loan"
	AccountTypeStudentLoan  AccountType = "student_loan"
	AccountTypeOther        AccountType = "other"
)

// Bureau names as they appear in report text.
const (
	BureauExperian   = "Experian"
	BureauEquifax    = "Equifax"
	BureauTransUnion = "TransUnion"
)

// CreditAccount is a tradeline extracted from a report. Accounts are
// immutable once persisted; re-analysis replaces the whole set.
//
// DateOpened/DateReported stay as the partially-validated strings the
// source report carries. Rules that need real dates parse them at
// evaluation time and treat unparsable values as unknown.
type CreditAccount struct {
	ID             string      `db:"id" json:"id,omitempty"`
	ReportID       string      `db:"report_id" json:"reportId,omitempty"`
	UserID         string      `db:"user_id" json:"-"`
	AccountNumber  string      `db:"account_number" json:"accountNumber"` // partially masked
	CreditorName   string      `db:"creditor_name" json:"creditorName"`
	AccountType    AccountType `db:"account_type" json:"accountType"`
	Balance        *float64    `db:"balance" json:"balance,omitempty"`
	CreditLimit    *float64    `db:"credit_limit" json:"creditLimit,omitempty"`
	PaymentStatus  string      `db:"payment_status" json:"paymentStatus"`
	DateOpened     *string     `db:"date_opened" json:"dateOpened,omitempty"`
	DateReported   *string     `db:"date_reported" json:"dateReported,omitempty"`
	PaymentHistory string      `db:"payment_history" json:"paymentHistory,omitempty"`
	Bureaus        []string    `db:"bureaus" json:"bureaus,omitempty"` // jsonb array
	CreatedAt      time.Time   `db:"created_at" json:"-"`
}

// Utilization returns balance/limit for accounts where both are known,
// and false when the ratio is undefined.
func (a *CreditAccount) Utilization() (float64, bool) {
	if a.Balance == nil || a.CreditLimit == nil || *a.CreditLimit <= 0 {
		return 0, false
	}
	return *a.Balance / *a.CreditLimit, true
}
