package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creditlens/internal/analysis"
	"creditlens/internal/extract"
	"creditlens/internal/store"
	"creditlens/internal/utils"
	"creditlens/pkg/types"
)

// SeedDemoReport inserts one fully analyzed report for userID so a
// fresh environment has something to look at. The report uses the
// built-in sample data and never touches object storage or an AI
// provider.
//
// To generate a demo for another user: `go run ./cmd/creditlens seed --user <id>`
func SeedDemoReport(
	ctx context.Context,
	userID string,
	reports *store.ReportRepository,
	accounts *store.AccountRepository,
	negatives *store.NegativeItemRepository,
	violations *store.ViolationRepository,
	policy analysis.ScorePolicy,
) (string, error) {
	parsed := extract.SampleReport()

	report := &types.CreditReport{
		ID:            utils.NanoID(),
		UserID:        userID,
		FileName:      "sample-credit-report.pdf",
		FileSizeBytes: 0,
		MimeType:      "application/pdf",
		StorageKey:    fmt.Sprintf("%s/demo", userID),
		Status:        types.ReportStatusProcessed,
		Provider:      utils.StringPtr("demo"),
	}

	for i := range parsed.Accounts {
		parsed.Accounts[i].ID = utils.NanoID()
		parsed.Accounts[i].ReportID = report.ID
		parsed.Accounts[i].UserID = userID
	}

	items := analysis.IdentifyNegativeItems(parsed.Accounts)
	found := analysis.DetectViolations(parsed.Accounts, items, time.Now())
	summary := analysis.Summarize(parsed, items, found, policy)

	payload, err := json.Marshal(struct {
		Parsed  *types.ParsedReport `json:"parsed"`
		Summary types.Summary       `json:"summary"`
	}{parsed, summary})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sample payload: %w", err)
	}
	report.ParsedPayload = payload

	if err := reports.CreateReport(ctx, report); err != nil {
		return "", err
	}

	for i := range parsed.Accounts {
		if err := accounts.CreateAccount(ctx, &parsed.Accounts[i]); err != nil {
			return "", err
		}
	}

	for i := range items {
		items[i].ID = utils.NanoID()
		items[i].ReportID = report.ID
		items[i].UserID = userID
		if err := negatives.CreateNegativeItem(ctx, &items[i]); err != nil {
			return "", err
		}
	}

	for i := range found {
		found[i].ID = utils.NanoID()
		found[i].ReportID = report.ID
		found[i].UserID = userID
		if err := violations.CreateViolation(ctx, &found[i]); err != nil {
			return "", err
		}
	}

	return report.ID, nil
}
