package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

func testHTTPClient(attempts int) *httpClient {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &httpClient{
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: attempts,
		delay:    time.Millisecond,
		logger:   logger,
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestChatProvider_DecodesChoicesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer header, got %q", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("malformed request body: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model forwarded, got %q", req.Model)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{
					"content": "```json\n{\"accounts\":[{\"creditorName\":\"Chase\"}]}\n```",
				}},
			},
		})
	}))
	defer srv.Close()

	p := &chatProvider{
		name:  "openai",
		url:   srv.URL,
		model: "test-model",
		headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer test-key",
		},
		http:   testHTTPClient(1),
		logger: quietLogger(),
	}

	report, err := p.Analyze(context.Background(), Input{Text: "some report text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Accounts) != 1 || report.Accounts[0].CreditorName != "Chase" {
		t.Errorf("expected normalized account, got %+v", report.Accounts)
	}
}

func TestChatProvider_RequiresText(t *testing.T) {
	p := &chatProvider{name: "openai", http: testHTTPClient(1), logger: quietLogger()}
	if _, err := p.Analyze(context.Background(), Input{FileData: []byte("%PDF")}); err == nil {
		t.Fatal("expected error for missing text")
	}
}

func TestHTTPClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, resp, err := testHTTPClient(3).do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected eventual 200, got %d", resp.StatusCode)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", body)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestHTTPClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, resp, err := testHTTPClient(3).do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("4xx should return, not error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 passed through, got %d", resp.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single call, got %d", calls.Load())
	}
}

func TestHTTPClient_ExhaustedRetriesReturnLastError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, _, err := testHTTPClient(2).do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestRegistry_OnlyConfiguredProviders(t *testing.T) {
	config := &types.Config{
		OpenAIAPIKey:    "key",
		AnthropicAPIKey: "key",
		AITimeoutSec:    5,
	}

	registry := NewRegistry(config, quietLogger())

	names := registry.Names()
	if len(names) != 2 || names[0] != "anthropic" || names[1] != "openai" {
		t.Fatalf("expected [anthropic openai], got %v", names)
	}

	if _, err := registry.Provider("openai"); err != nil {
		t.Errorf("expected openai registered: %v", err)
	}

	_, err := registry.Provider("gemini")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider for unconfigured gemini, got %v", err)
	}
}
