package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

func testService() *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &Service{
		logger: logger,
		config: &types.Config{CookieName: "session_id"},
	}
}

func TestStripTrailingSlash_Redirects(t *testing.T) {
	s := testService()
	handler := s.StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/?status=processed", nil))

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/api/reports?status=processed" {
		t.Errorf("expected query preserved, got %q", got)
	}
}

func TestStripTrailingSlash_RootUntouched(t *testing.T) {
	s := testService()
	called := false
	handler := s.StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("expected the root path to pass through")
	}
}

func TestRespondStoreError_MapsSentinelsToNotFound(t *testing.T) {
	s := testService()

	rec := httptest.NewRecorder()
	s.respondStoreError(rec, types.ErrReportNotFound)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing report, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.respondStoreError(rec, http.ErrBodyNotAllowed)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for other errors, got %d", rec.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("expected a JSON error body: %v", err)
	}
	if body.Error != "internal error" {
		t.Errorf("expected generic message, got %q", body.Error)
	}
}

func TestMimeFromName(t *testing.T) {
	if got := mimeFromName("report.PDF"); got != "application/pdf" {
		t.Errorf("expected pdf detection, got %q", got)
	}
	if got := mimeFromName("report.txt"); got != "text/plain" {
		t.Errorf("expected text detection, got %q", got)
	}
	if got := mimeFromName("report.docx"); got != "" {
		t.Errorf("expected unknown extension to be empty, got %q", got)
	}
}

func TestAccessToken_BearerHeader(t *testing.T) {
	s := testService()

	r := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	r.Header.Set("Authorization", "Bearer tok-123")

	token, err := s.accessToken(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected token extracted, got %q", token)
	}

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if _, err := s.accessToken(r); err == nil {
		t.Error("expected non-bearer header to error")
	}
}
