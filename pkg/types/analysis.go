package types

// PersonalInfo is the best-effort consumer identity block pulled from a
// report. Every field is optional.
type PersonalInfo struct {
	Name        string `json:"name,omitempty"`
	SSN         string `json:"ssn,omitempty"` // masked, last 4 only
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
}

func (p PersonalInfo) Empty() bool {
	return p.Name == "" && p.SSN == "" && p.DateOfBirth == "" && p.Address == ""
}

type Inquiry struct {
	CreditorName string `json:"creditorName"`
	Date         string `json:"date,omitempty"`
	InquiryType  string `json:"inquiryType,omitempty"` // hard/soft
	Bureau       string `json:"bureau,omitempty"`
}

type PublicRecord struct {
	RecordType string   `json:"recordType"`
	Status     string   `json:"status,omitempty"`
	DateFiled  string   `json:"dateFiled,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Court      string   `json:"court,omitempty"`
}

// ParsedReport is the normalized shape every extraction path produces:
// the pattern extractor, each AI provider, and the response normalizer
// all converge here. All slices are non-nil after normalization so
// downstream code never null-checks.
type ParsedReport struct {
	PersonalInfo  PersonalInfo    `json:"personalInfo"`
	Accounts      []CreditAccount `json:"accounts"`
	NegativeItems []NegativeItem  `json:"negativeItems"`
	Inquiries     []Inquiry       `json:"inquiries"`
	PublicRecords []PublicRecord  `json:"publicRecords"`
	Violations    []Violation     `json:"violations"`
}

// EnsureDefaults replaces nil slices with empty ones.
func (r *ParsedReport) EnsureDefaults() {
	if r.Accounts == nil {
		r.Accounts = []CreditAccount{}
	}
	if r.NegativeItems == nil {
		r.NegativeItems = []NegativeItem{}
	}
	if r.Inquiries == nil {
		r.Inquiries = []Inquiry{}
	}
	if r.PublicRecords == nil {
		r.PublicRecords = []PublicRecord{}
	}
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
}

// Summary is the advisory aggregate rendered on the dashboard. It is
// never used for a control decision.
type Summary struct {
	AccountCount      int     `json:"accountCount"`
	NegativeItemCount int     `json:"negativeItemCount"`
	ViolationCount    int     `json:"violationCount"`
	InquiryCount      int     `json:"inquiryCount"`
	PublicRecordCount int     `json:"publicRecordCount"`
	Utilization       float64 `json:"utilization"`
	ScoreImpact       int     `json:"scoreImpact"`
	ScorePolicy       string  `json:"scorePolicy"`
}
