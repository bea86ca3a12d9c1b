package store

import (
	"context"
	"testing"

	"creditlens/pkg/types"
)

// attemptInsert swallows the panic a nil pool raises at Exec; the id
// stamping happens before the insert runs, so it is still observable.
func attemptInsert(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestCreateReport_KeepsPreAssignedID(t *testing.T) {
	repo := NewReportRepository(nil)
	report := &types.CreditReport{ID: "seeded-report-id", UserID: "user-1"}

	attemptInsert(func() { _ = repo.CreateReport(context.Background(), report) })

	if report.ID != "seeded-report-id" {
		t.Errorf("expected the pre-assigned id to survive, got %q", report.ID)
	}
}

func TestCreateReport_AssignsIDWhenEmpty(t *testing.T) {
	repo := NewReportRepository(nil)
	report := &types.CreditReport{UserID: "user-1"}

	attemptInsert(func() { _ = repo.CreateReport(context.Background(), report) })

	if report.ID == "" {
		t.Error("expected an id to be assigned")
	}
}

func TestCreateLetter_KeepsPreAssignedID(t *testing.T) {
	repo := NewLetterRepository(nil)
	letter := &types.DisputeLetter{ID: "seeded-letter-id", UserID: "user-1"}

	attemptInsert(func() { _ = repo.CreateLetter(context.Background(), letter) })

	if letter.ID != "seeded-letter-id" {
		t.Errorf("expected the pre-assigned id to survive, got %q", letter.ID)
	}
}

func TestCreateAccount_KeepsPreAssignedID(t *testing.T) {
	repo := NewAccountRepository(nil)
	account := &types.CreditAccount{ID: "seeded-account-id", UserID: "user-1"}

	attemptInsert(func() { _ = repo.CreateAccount(context.Background(), account) })

	if account.ID != "seeded-account-id" {
		t.Errorf("expected the pre-assigned id to survive, got %q", account.ID)
	}
}
