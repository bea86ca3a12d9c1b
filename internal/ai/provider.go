package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

// ErrUnknownProvider is returned when a request names a provider that
// is not configured with credentials.
var ErrUnknownProvider = errors.New("unknown or unconfigured provider")

// Input is what an adapter gets to work with: extracted text for chat
// providers, the raw file for vision/document providers.
type Input struct {
	Text     string
	FileData []byte
	MimeType string
}

// Provider turns report input into a normalized ParsedReport via an
// external AI API.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, input Input) (*types.ParsedReport, error)
}

// Registry holds the providers whose credentials are present in config.
// Credentials are injected once here; adapters never read the
// environment themselves.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(config *types.Config, logger *logrus.Logger) *Registry {
	httpc := &httpClient{
		client:   &http.Client{Timeout: time.Duration(config.AITimeoutSec) * time.Second},
		attempts: int(config.RetryAttempts) + 1,
		delay:    time.Duration(config.RetryDelaySec) * time.Second,
		logger:   logger,
	}

	r := &Registry{providers: make(map[string]Provider)}

	if config.OpenAIAPIKey != "" {
		r.register(NewOpenAI(config.OpenAIAPIKey, config.OpenAIModel, httpc, logger))
	}
	if config.OpenRouterAPIKey != "" {
		r.register(NewOpenRouter(config.OpenRouterAPIKey, config.OpenRouterModel, httpc, logger))
	}
	if config.AnthropicAPIKey != "" {
		r.register(NewAnthropic(config.AnthropicAPIKey, config.AnthropicModel, httpc, logger))
	}
	if config.GeminiAPIKey != "" {
		r.register(NewGemini(config.GeminiAPIKey, config.GeminiModel, httpc, logger))
	}
	if config.AzureEndpoint != "" && config.AzureAPIKey != "" {
		r.register(NewAzure(config.AzureEndpoint, config.AzureAPIKey, httpc, logger))
	}

	return r
}

func (r *Registry) register(p Provider) {
	r.providers[p.Name()] = p
}

func (r *Registry) Provider(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// httpClient applies the configured retry policy uniformly to every
// provider call. Network errors, 429 and 5xx responses are retried with
// a fixed delay; everything else returns immediately.
type httpClient struct {
	client   *http.Client
	attempts int
	delay    time.Duration
	logger   *logrus.Logger
}

func (c *httpClient) do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, *http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(c.delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.WithError(err).WithField("url", url).Warn("provider request failed")
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
			c.logger.WithFields(logrus.Fields{
				"url":    url,
				"status": resp.StatusCode,
			}).Warn("retryable provider error")
			continue
		}

		return respBody, resp, nil
	}

	return nil, nil, lastErr
}
