package types

import "time"

type ViolationType string

const (
	ViolationMetro2 ViolationType = "metro2_compliance"
	ViolationFCRA   ViolationType = "fcra_violation"
	ViolationFDCPA  ViolationType = "fdcpa_violation"
	ViolationOther  ViolationType = "other"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Violation is a rule-flagged reporting problem. It references the
// account or negative item it was raised from; references are set at
// construction time by the pipeline so they always point inside the
// same report.
type Violation struct {
	ID               string        `db:"id" json:"id,omitempty"`
	ReportID         string        `db:"report_id" json:"reportId,omitempty"`
	UserID           string        `db:"user_id" json:"-"`
	AccountID        *string       `db:"account_id" json:"accountId,omitempty"`
	NegativeItemID   *string       `db:"negative_item_id" json:"negativeItemId,omitempty"`
	Type             ViolationType `db:"violation_type" json:"type"`
	Severity         Severity      `db:"severity" json:"severity"`
	Description      string        `db:"description" json:"description"`
	SuggestedAction  string        `db:"suggested_action" json:"suggestedAction,omitempty"`
	LegalBasis       *string       `db:"legal_basis" json:"legalBasis,omitempty"`
	EstimatedDamages *float64      `db:"estimated_damages" json:"estimatedDamages,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"-"`
}
