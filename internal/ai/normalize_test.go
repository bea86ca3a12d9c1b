package ai

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalize_StrictJSON(t *testing.T) {
	raw := `{"personalInfo":{"name":"Jane Consumer"},"accounts":[{"creditorName":"Chase","balance":120.5}]}`

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.PersonalInfo.Name != "Jane Consumer" {
		t.Errorf("expected name, got %q", report.PersonalInfo.Name)
	}
	if len(report.Accounts) != 1 || report.Accounts[0].CreditorName != "Chase" {
		t.Errorf("expected one Chase account, got %+v", report.Accounts)
	}
}

func TestNormalize_FencedBlockPreferred(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n{\"accounts\":[{\"creditorName\":\"Discover\"}]}\n```\nLet me know if you need anything else. { not json }"

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Accounts) != 1 || report.Accounts[0].CreditorName != "Discover" {
		t.Errorf("expected fenced block to win, got %+v", report.Accounts)
	}
}

func TestNormalize_TrailingCommasAccepted(t *testing.T) {
	raw := `{"accounts":[{"creditorName":"Chase",},],"inquiries":[],}`

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Accounts) != 1 {
		t.Errorf("expected 1 account, got %d", len(report.Accounts))
	}
}

func TestNormalize_RepairsTruncatedResponse(t *testing.T) {
	// truncated mid-array: only the auto-repair stage can save this
	raw := `{"accounts":[{"creditorName":"Chase","balance":100}`

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("expected repair to succeed, got %v", err)
	}
	if len(report.Accounts) != 1 || report.Accounts[0].CreditorName != "Chase" {
		t.Errorf("expected repaired account, got %+v", report.Accounts)
	}
}

func TestNormalize_NoJSONAtAll(t *testing.T) {
	_, err := Normalize("I could not analyze this document, sorry.")
	if !errors.Is(err, ErrNoJSONFound) {
		t.Fatalf("expected ErrNoJSONFound, got %v", err)
	}
}

func TestLocateJSON_BracesWithoutFence(t *testing.T) {
	payload, err := locateJSON(`prefix {"a":1} suffix`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != `{"a":1}` {
		t.Errorf("expected brace-delimited payload, got %q", payload)
	}
}

func TestStripTrailingCommas(t *testing.T) {
	got := stripTrailingCommas(`{"a":[1,2,],"b":{"c":1,},}`)
	want := `{"a":[1,2],"b":{"c":1}}`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_KeyAliases(t *testing.T) {
	raw := `{
		"personal_info": {"name": "Jane"},
		"tradelines": [{"creditorName": "Chase"}],
		"derogatory_items": [{"type": "charge_off", "creditorName": "Chase"}],
		"credit_inquiries": [{"creditorName": "Discover"}]
	}`

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.PersonalInfo.Name != "Jane" {
		t.Errorf("expected personal_info alias, got %+v", report.PersonalInfo)
	}
	if len(report.Accounts) != 1 {
		t.Errorf("expected tradelines alias, got %d accounts", len(report.Accounts))
	}
	if len(report.NegativeItems) != 1 {
		t.Errorf("expected derogatory_items alias, got %d items", len(report.NegativeItems))
	}
	if len(report.Inquiries) != 1 {
		t.Errorf("expected credit_inquiries alias, got %d inquiries", len(report.Inquiries))
	}
}

func TestNormalize_ObjectShapedCollections(t *testing.T) {
	// single object instead of an array, and an indexed map
	raw := `{
		"accounts": {"creditorName": "Chase"},
		"inquiries": {"1": {"creditorName": "Second"}, "0": {"creditorName": "First"}}
	}`

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Accounts) != 1 {
		t.Fatalf("expected single object coerced to array, got %d", len(report.Accounts))
	}
	if len(report.Inquiries) != 2 {
		t.Fatalf("expected indexed map coerced to array, got %d", len(report.Inquiries))
	}
	if report.Inquiries[0].CreditorName != "First" {
		t.Errorf("expected numeric key order, got %q first", report.Inquiries[0].CreditorName)
	}
}

func TestNormalize_QuotedMoneyAndBureauStrings(t *testing.T) {
	raw := `{"accounts":[{"creditorName":"Chase","balance":"$2,850.00","creditLimit":"not a number","bureaus":"Experian, Equifax"}]}`

	report, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account := report.Accounts[0]
	if account.Balance == nil || *account.Balance != 2850 {
		t.Errorf("expected quoted balance coerced to 2850, got %v", account.Balance)
	}
	if account.CreditLimit != nil {
		t.Errorf("expected junk limit dropped, got %v", *account.CreditLimit)
	}
	if len(account.Bureaus) != 2 || account.Bureaus[0] != "Experian" {
		t.Errorf("expected bureau string split, got %v", account.Bureaus)
	}
}

func TestNormalize_AllSlicesNonNil(t *testing.T) {
	report, err := Normalize(`{}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Accounts == nil || report.NegativeItems == nil || report.Inquiries == nil ||
		report.PublicRecords == nil || report.Violations == nil {
		t.Error("expected all collections non-nil")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := `{"personal_info":{"name":"Jane"},"tradelines":[{"creditorName":"Chase","balance":"$100"}]}`

	first, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	second, err := Normalize(string(encoded))
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("normalization is not idempotent:\nfirst:  %s\nsecond: %s", a, b)
	}
}
