package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

const anthropicURL = "https://api.anthropic.com/v1/messages"

type AnthropicProvider struct {
	apiKey string
	model  string
	http   *httpClient
	logger *logrus.Logger
}

func NewAnthropic(apiKey, model string, httpc *httpClient, logger *logrus.Logger) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey: apiKey,
		model:  model,
		http:   httpc,
		logger: logger,
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Analyze(ctx context.Context, input Input) (*types.ParsedReport, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("anthropic provider requires extracted report text")
	}

	reqBody, err := json.Marshal(map[string]any{
		"model":      p.model,
		"max_tokens": 4096,
		"messages": []map[string]string{
			{"role": "user", "content": analysisPrompt + "\n\nCredit report text:\n" + input.Text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type":      "application/json",
		"x-api-key":         p.apiKey,
		"anthropic-version": "2023-06-01",
	}

	body, resp, err := p.http.do(ctx, http.MethodPost, anthropicURL, headers, reqBody)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse anthropic response: %w", err)
	}
	if len(envelope.Content) == 0 {
		return nil, fmt.Errorf("empty response from anthropic")
	}

	p.logger.WithFields(logrus.Fields{
		"provider":        "anthropic",
		"response_length": len(envelope.Content[0].Text),
	}).Debug("provider response received")

	return Normalize(envelope.Content[0].Text)
}
