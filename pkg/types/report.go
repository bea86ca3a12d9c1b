package types

import "time"

type ReportStatus string

const (
	ReportStatusUploaded   ReportStatus = "uploaded"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusProcessed  ReportStatus = "processed"
	ReportStatusFailed     ReportStatus = "failed"
)

// CreditReport is one uploaded report file and its processing state.
// Reports are never deleted by the system, only by the owning user.
type CreditReport struct {
	ID            string       `db:"id" json:"id"`
	UserID        string       `db:"user_id" json:"userId"`
	FileName      string       `db:"file_name" json:"fileName"`
	FileSizeBytes int64        `db:"file_size_bytes" json:"fileSizeBytes"`
	MimeType      string       `db:"mime_type" json:"mimeType"`
	StorageKey    string       `db:"storage_key" json:"storageKey"`
	Status        ReportStatus `db:"status" json:"status"`
	Provider      *string      `db:"provider" json:"provider,omitempty"`
	RawText       *string      `db:"raw_text" json:"-"`
	ParsedPayload []byte       `db:"parsed_payload" json:"-"` // jsonb
	FailureReason *string      `db:"failure_reason" json:"failureReason,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updatedAt"`
}
