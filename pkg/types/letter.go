package types

import "time"

type LetterType string

const (
	LetterTypeDispute      LetterType = "dispute"
	LetterTypeComplaint    LetterType = "complaint"
	LetterTypeVerification LetterType = "verification"
)

type LetterStatus string

const (
	LetterStatusDraft     LetterStatus = "draft"
	LetterStatusSent      LetterStatus = "sent"
	LetterStatusResponded LetterStatus = "responded"
)

// DisputeLetter is a generated artifact. Only Status mutates after
// generation.
type DisputeLetter struct {
	ID              string       `db:"id" json:"id"`
	UserID          string       `db:"user_id" json:"-"`
	ReportID        *string      `db:"report_id" json:"reportId,omitempty"`
	NegativeItemID  *string      `db:"negative_item_id" json:"negativeItemId,omitempty"`
	ViolationID     *string      `db:"violation_id" json:"violationId,omitempty"`
	Recipient       string       `db:"recipient" json:"recipient"`
	Subject         string       `db:"subject" json:"subject"`
	Body            string       `db:"body" json:"body"`
	Type            LetterType   `db:"letter_type" json:"type"`
	Status          LetterStatus `db:"status" json:"status"`
	ComplianceScore int          `db:"compliance_score" json:"complianceScore"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updatedAt"`
}
