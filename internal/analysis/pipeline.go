package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"creditlens/internal/ai"
	"creditlens/internal/extract"
	"creditlens/internal/storage"
	"creditlens/internal/store"
	"creditlens/internal/utils"
	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

// ProviderPattern selects the regex extractor instead of an AI
// provider.
const ProviderPattern = "pattern"

// Result is the in-memory outcome of one analysis run. It is returned
// to the caller even when persistence partially failed; those failures
// are logged, not surfaced.
type Result struct {
	Report        *types.CreditReport  `json:"report"`
	Extraction    extract.Outcome      `json:"extraction"`
	Parsed        *types.ParsedReport  `json:"parsed"`
	NegativeItems []types.NegativeItem `json:"negativeItems"`
	Violations    []types.Violation    `json:"violations"`
	Summary       types.Summary        `json:"summary"`
}

// Pipeline runs upload bytes through text extraction, one of the
// extraction strategies, issue identification and summary, then
// persists whatever it can.
type Pipeline struct {
	logger     *logrus.Logger
	extractor  *extract.TextExtractor
	pattern    *extract.PatternExtractor
	providers  *ai.Registry
	files      storage.ObjectStorage
	reports    *store.ReportRepository
	accounts   *store.AccountRepository
	negatives  *store.NegativeItemRepository
	violations *store.ViolationRepository
	policy     ScorePolicy
}

func NewPipeline(
	logger *logrus.Logger,
	extractor *extract.TextExtractor,
	providers *ai.Registry,
	files storage.ObjectStorage,
	reports *store.ReportRepository,
	accounts *store.AccountRepository,
	negatives *store.NegativeItemRepository,
	violations *store.ViolationRepository,
	policy ScorePolicy,
) *Pipeline {
	return &Pipeline{
		logger:     logger,
		extractor:  extractor,
		pattern:    extract.NewPatternExtractor(),
		providers:  providers,
		files:      files,
		reports:    reports,
		accounts:   accounts,
		negatives:  negatives,
		violations: violations,
		policy:     policy,
	}
}

// Analyze runs the full pipeline for a stored report. The report moves
// uploaded -> processing -> processed|failed; a failure is scoped to
// this run and leaves the uploaded file usable.
func (p *Pipeline) Analyze(ctx context.Context, userID, reportID, providerName string) (*Result, error) {
	report, err := p.reports.Report(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	if err := p.reports.UpdateStatus(ctx, userID, reportID, types.ReportStatusProcessing, ""); err != nil {
		p.logger.WithError(err).WithField("report_id", reportID).Warn("failed to mark report processing")
	}

	result, err := p.run(ctx, report, providerName)
	if err != nil {
		if statusErr := p.reports.UpdateStatus(ctx, userID, reportID, types.ReportStatusFailed, err.Error()); statusErr != nil {
			p.logger.WithError(statusErr).WithField("report_id", reportID).Warn("failed to mark report failed")
		}
		return nil, err
	}

	return result, nil
}

func (p *Pipeline) run(ctx context.Context, report *types.CreditReport, providerName string) (*Result, error) {
	fileData, err := p.files.Download(ctx, report.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download report file: %w", err)
	}

	text := &extract.TextResult{Scanned: true}
	switch report.MimeType {
	case "application/pdf":
		extracted, err := p.extractor.ExtractText(fileData)
		if err != nil {
			p.logger.WithError(err).WithField("report_id", report.ID).Warn("pdf text extraction failed, continuing as scanned document")
		} else {
			text = extracted
		}
	case "text/plain":
		raw := string(fileData)
		text = &extract.TextResult{Text: raw, Lines: strings.Split(raw, "\n"), PageCount: 1}
	}

	parsed, outcome, err := p.extractStructured(ctx, text, fileData, report.MimeType, providerName)
	if err != nil {
		return nil, err
	}
	parsed.EnsureDefaults()

	// Assign ids up front so derived records reference entities from
	// this same report.
	for i := range parsed.Accounts {
		parsed.Accounts[i].ID = utils.NanoID()
	}

	items := MergeNegativeItems(IdentifyNegativeItems(parsed.Accounts), parsed.NegativeItems)
	for i := range items {
		items[i].ID = utils.NanoID()
	}

	// provider-supplied violation references point at provider-invented
	// ids; drop them rather than persist dangling links
	for i := range parsed.Violations {
		parsed.Violations[i].AccountID = nil
		parsed.Violations[i].NegativeItemID = nil
	}

	violations := append(DetectViolations(parsed.Accounts, items, time.Now()), parsed.Violations...)
	for i := range violations {
		violations[i].ID = utils.NanoID()
	}

	summary := Summarize(parsed, items, violations, p.policy)

	p.persist(ctx, report, providerName, text, parsed, items, violations, summary)

	return &Result{
		Report:        report,
		Extraction:    outcome,
		Parsed:        parsed,
		NegativeItems: items,
		Violations:    violations,
		Summary:       summary,
	}, nil
}

func (p *Pipeline) extractStructured(ctx context.Context, text *extract.TextResult, fileData []byte, mimeType, providerName string) (*types.ParsedReport, extract.Outcome, error) {
	if providerName == "" || providerName == ProviderPattern {
		extraction := p.pattern.ExtractFields(text.Text)
		switch extraction.Outcome {
		case extract.OutcomeFound:
			return extraction.Report, extraction.Outcome, nil
		case extract.OutcomeEmpty:
			empty := &types.ParsedReport{}
			empty.EnsureDefaults()
			return empty, extraction.Outcome, nil
		default:
			return nil, extraction.Outcome, fmt.Errorf("pattern extraction failed: %s", extraction.Reason)
		}
	}

	provider, err := p.providers.Provider(providerName)
	if err != nil {
		return nil, extract.OutcomeFailed, err
	}

	input := ai.Input{FileData: fileData, MimeType: mimeType}
	if !text.Scanned {
		input.Text = text.Text
	}

	parsed, err := provider.Analyze(ctx, input)
	if err != nil {
		return nil, extract.OutcomeFailed, fmt.Errorf("provider %s analysis failed: %w", providerName, err)
	}

	return parsed, extract.OutcomeFound, nil
}

// persist writes the analysis entities. Each write is an independent
// best-effort call: failures are logged and swallowed so the caller
// still gets the in-memory result.
func (p *Pipeline) persist(ctx context.Context, report *types.CreditReport, providerName string, text *extract.TextResult, parsed *types.ParsedReport, items []types.NegativeItem, violations []types.Violation, summary types.Summary) {
	log := p.logger.WithField("report_id", report.ID)

	// re-analysis replaces the previous entity sets
	if err := p.violations.DeleteViolationsByReport(ctx, report.UserID, report.ID); err != nil {
		log.WithError(err).Warn("failed to clear previous violations")
	}
	if err := p.negatives.DeleteNegativeItemsByReport(ctx, report.UserID, report.ID); err != nil {
		log.WithError(err).Warn("failed to clear previous negative items")
	}
	if err := p.accounts.DeleteAccountsByReport(ctx, report.UserID, report.ID); err != nil {
		log.WithError(err).Warn("failed to clear previous accounts")
	}

	for i := range parsed.Accounts {
		account := &parsed.Accounts[i]
		account.ReportID = report.ID
		account.UserID = report.UserID
		if err := p.accounts.CreateAccount(ctx, account); err != nil {
			log.WithError(err).WithField("creditor", account.CreditorName).Warn("failed to persist account")
		}
	}

	for i := range items {
		item := &items[i]
		item.ReportID = report.ID
		item.UserID = report.UserID
		if err := p.negatives.CreateNegativeItem(ctx, item); err != nil {
			log.WithError(err).WithField("creditor", item.CreditorName).Warn("failed to persist negative item")
		}
	}

	for i := range violations {
		violation := &violations[i]
		violation.ReportID = report.ID
		violation.UserID = report.UserID
		if err := p.violations.CreateViolation(ctx, violation); err != nil {
			log.WithError(err).Warn("failed to persist violation")
		}
	}

	payload, err := json.Marshal(struct {
		Parsed  *types.ParsedReport `json:"parsed"`
		Summary types.Summary       `json:"summary"`
	}{parsed, summary})
	if err != nil {
		log.WithError(err).Warn("failed to encode parsed payload")
	}

	report.Status = types.ReportStatusProcessed
	report.FailureReason = nil
	report.ParsedPayload = payload
	if providerName != "" {
		report.Provider = utils.StringPtr(providerName)
	} else {
		report.Provider = utils.StringPtr(ProviderPattern)
	}
	if text.Text != "" {
		report.RawText = utils.StringPtr(text.Text)
	}

	if err := p.reports.UpdateReport(ctx, report); err != nil {
		log.WithError(err).Warn("failed to persist processed report")
	}
}
