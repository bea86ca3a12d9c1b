package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeLetterForm_JSONWithCharsetParameter(t *testing.T) {
	s := testService()

	body := `{"type":"complaint","recipient":"Equifax","consumerName":"Jane Q Consumer"}`
	r := httptest.NewRequest(http.MethodPost, "/api/letters", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	form, err := s.decodeLetterForm(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Type != "complaint" {
		t.Errorf("expected type complaint, got %q", form.Type)
	}
	if form.Recipient != "Equifax" {
		t.Errorf("expected recipient Equifax, got %q", form.Recipient)
	}
}

func TestDecodeLetterForm_URLEncoded(t *testing.T) {
	s := testService()

	r := httptest.NewRequest(http.MethodPost, "/api/letters", strings.NewReader("type=dispute&recipient=Experian"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := s.decodeLetterForm(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Type != "dispute" || form.Recipient != "Experian" {
		t.Errorf("expected decoded form fields, got %+v", form)
	}
}
