package analysis

import (
	"strings"
	"testing"
	"time"

	"creditlens/internal/utils"
	"creditlens/pkg/types"
)

func TestClassifyStatus_ChargeOffBeatsLate(t *testing.T) {
	// "Charge-off, was 120 days late" carries both markers; the
	// specific one wins.
	itemType, negative := ClassifyStatus("Charge-off, was 120 days late")
	if !negative {
		t.Fatal("expected status to classify as negative")
	}
	if itemType != types.NegativeChargeOff {
		t.Errorf("expected charge_off, got %s", itemType)
	}
}

func TestClassifyStatus_CurrentIsNotNegative(t *testing.T) {
	if _, negative := ClassifyStatus("Current"); negative {
		t.Error("expected current status to be non-negative")
	}
	if _, negative := ClassifyStatus(""); negative {
		t.Error("expected empty status to be non-negative")
	}
}

func TestIdentifyNegativeItems_CarriesAccountFields(t *testing.T) {
	accounts := []types.CreditAccount{
		{
			ID:            "acct-1",
			CreditorName:  "Midland Funding",
			PaymentStatus: "Collection",
			Balance:       utils.Float64Ptr(500),
			DateReported:  utils.StringPtr("01/15/2024"),
		},
		{
			ID:            "acct-2",
			CreditorName:  "Chase",
			PaymentStatus: "Current",
		},
	}

	items := IdentifyNegativeItems(accounts)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Type != types.NegativeCollection {
		t.Errorf("expected collection, got %s", item.Type)
	}
	if item.AccountID == nil || *item.AccountID != "acct-1" {
		t.Errorf("expected item to reference acct-1, got %v", item.AccountID)
	}
	if item.CurrentBalance == nil || *item.CurrentBalance != 500 {
		t.Errorf("expected balance 500, got %v", item.CurrentBalance)
	}
}

func TestMergeNegativeItems_ProviderDuplicatesDropped(t *testing.T) {
	derived := []types.NegativeItem{
		{Type: types.NegativeChargeOff, CreditorName: "Capital One", AccountID: utils.StringPtr("acct-1")},
	}
	provided := []types.NegativeItem{
		{Type: types.NegativeChargeOff, CreditorName: "CAPITAL ONE", AccountID: utils.StringPtr("made-up")},
		{Type: types.NegativeInquiry, CreditorName: "Discover", AccountID: utils.StringPtr("made-up")},
	}

	merged := MergeNegativeItems(derived, provided)
	if len(merged) != 2 {
		t.Fatalf("expected 2 items after merge, got %d", len(merged))
	}

	// the derived item keeps its account reference
	if merged[0].AccountID == nil || *merged[0].AccountID != "acct-1" {
		t.Errorf("expected derived item to keep acct-1, got %v", merged[0].AccountID)
	}

	// the standalone provider item loses its untrusted reference
	if merged[1].AccountID != nil {
		t.Errorf("expected provider item reference to be cleared, got %v", *merged[1].AccountID)
	}
}

func TestDuplicateViolations_SameLastFourGrouped(t *testing.T) {
	accounts := []types.CreditAccount{
		{ID: "a1", CreditorName: "Synchrony Bank", AccountType: types.AccountTypeCreditCard, AccountNumber: "****1234"},
		{ID: "a2", CreditorName: "Synchrony Bank", AccountType: types.AccountTypeCreditCard, AccountNumber: "XXXX-XXXX-1234"},
		{ID: "a3", CreditorName: "Synchrony Bank", AccountType: types.AccountTypeCreditCard, AccountNumber: "****5678"},
	}

	violations := duplicateViolations(accounts)
	if len(violations) != 1 {
		t.Fatalf("expected 1 duplicate violation, got %d", len(violations))
	}
	if violations[0].Severity != types.SeverityMedium {
		t.Errorf("expected medium severity, got %s", violations[0].Severity)
	}
	if violations[0].AccountID == nil || *violations[0].AccountID != "a1" {
		t.Errorf("expected violation to reference the first account, got %v", violations[0].AccountID)
	}
}

func TestAgeViolations_SevenYearBoundary(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		reported string
		itemType types.NegativeItemType
		want     int
	}{
		{"exactly seven years is not obsolete", "06/15/2019", types.NegativeLatePayment, 0},
		{"one day past seven years", "06/14/2019", types.NegativeLatePayment, 1},
		{"bankruptcy gets ten years", "06/15/2017", types.NegativeBankruptcy, 0},
		{"bankruptcy past ten years", "06/14/2016", types.NegativeBankruptcy, 1},
		{"unparsable date skipped", "unknown", types.NegativeLatePayment, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := []types.NegativeItem{
				{ID: "item-1", Type: tc.itemType, CreditorName: "Acme", DateReported: utils.StringPtr(tc.reported)},
			}
			got := ageViolations(items, now)
			if len(got) != tc.want {
				t.Fatalf("expected %d violations, got %d", tc.want, len(got))
			}
			if tc.want == 1 {
				if got[0].Type != types.ViolationFCRA {
					t.Errorf("expected fcra violation, got %s", got[0].Type)
				}
				if got[0].NegativeItemID == nil || *got[0].NegativeItemID != "item-1" {
					t.Errorf("expected violation to reference item-1")
				}
			}
		})
	}
}

func TestAgeViolations_MissingDateSkipped(t *testing.T) {
	items := []types.NegativeItem{
		{Type: types.NegativeChargeOff, CreditorName: "Acme"},
	}
	if got := ageViolations(items, time.Now()); len(got) != 0 {
		t.Errorf("expected no violations for missing date, got %d", len(got))
	}
}

func TestCompletenessViolations_OneMissingFieldTolerated(t *testing.T) {
	// missing only a reported date: no violation
	one := []types.CreditAccount{
		{
			CreditorName:  "Chase",
			PaymentStatus: "Current",
			Balance:       utils.Float64Ptr(100),
			DateOpened:    utils.StringPtr("01/2020"),
		},
	}
	if got := completenessViolations(one); len(got) != 0 {
		t.Fatalf("expected no violation with one missing field, got %d", len(got))
	}

	// missing dates and balance: violation
	many := []types.CreditAccount{
		{CreditorName: "Chase", PaymentStatus: "Current"},
	}
	got := completenessViolations(many)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}
	if got[0].Severity != types.SeverityLow {
		t.Errorf("expected low severity, got %s", got[0].Severity)
	}
}

func TestConsistencyViolations_BalanceOverLimit(t *testing.T) {
	accounts := []types.CreditAccount{
		{CreditorName: "Over", Balance: utils.Float64Ptr(1200), CreditLimit: utils.Float64Ptr(1000)},
		{CreditorName: "At", Balance: utils.Float64Ptr(1000), CreditLimit: utils.Float64Ptr(1000)},
		{CreditorName: "NoLimit", Balance: utils.Float64Ptr(1200)},
	}

	got := consistencyViolations(accounts)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}
	if !strings.Contains(got[0].Description, "Over") {
		t.Errorf("expected violation about the over-limit account, got %q", got[0].Description)
	}
}

func TestUtilizationViolations_ThresholdIsNinetyPercent(t *testing.T) {
	accounts := []types.CreditAccount{
		{CreditorName: "High", AccountType: types.AccountTypeCreditCard, Balance: utils.Float64Ptr(2850), CreditLimit: utils.Float64Ptr(3000)},
		{CreditorName: "Fine", AccountType: types.AccountTypeCreditCard, Balance: utils.Float64Ptr(2400), CreditLimit: utils.Float64Ptr(3000)},
		{CreditorName: "NotACard", AccountType: types.AccountTypeAutoLoan, Balance: utils.Float64Ptr(2850), CreditLimit: utils.Float64Ptr(3000)},
	}

	got := utilizationViolations(accounts)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(got))
	}
	if !strings.Contains(got[0].Description, "High") {
		t.Errorf("expected violation about the 95%% card, got %q", got[0].Description)
	}
}

func TestLastFour_StripsMaskCharacters(t *testing.T) {
	if got := lastFour("XXXX-XXXX-XXXX-9876"); got != "9876" {
		t.Errorf("expected 9876, got %q", got)
	}
	if got := lastFour("***12"); got != "12" {
		t.Errorf("expected short digit runs returned as-is, got %q", got)
	}
}

func TestParseReportDate_TwoDigitYear(t *testing.T) {
	parsed, ok := parseReportDate("03/15/24")
	if !ok {
		t.Fatal("expected date to parse")
	}
	if parsed.Year() != 2024 {
		t.Errorf("expected year 2024, got %d", parsed.Year())
	}
}
