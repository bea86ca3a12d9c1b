package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	openAIURL     = "https://api.openai.com/v1/chat/completions"
	openRouterURL = "https://openrouter.ai/api/v1/chat/completions"
)

// chatProvider covers every adapter speaking the OpenAI chat
// completions wire format; OpenAI and OpenRouter differ only in URL
// and headers.
type chatProvider struct {
	name    string
	url     string
	model   string
	headers map[string]string
	http    *httpClient
	logger  *logrus.Logger
}

func NewOpenAI(apiKey, model string, httpc *httpClient, logger *logrus.Logger) Provider {
	return &chatProvider{
		name:  "openai",
		url:   openAIURL,
		model: model,
		headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + apiKey,
		},
		http:   httpc,
		logger: logger,
	}
}

func NewOpenRouter(apiKey, model string, httpc *httpClient, logger *logrus.Logger) Provider {
	return &chatProvider{
		name:  "openrouter",
		url:   openRouterURL,
		model: model,
		headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + apiKey,
			"X-Title":       "creditlens",
		},
		http:   httpc,
		logger: logger,
	}
}

func (p *chatProvider) Name() string { return p.name }

func (p *chatProvider) Analyze(ctx context.Context, input Input) (*types.ParsedReport, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("%s provider requires extracted report text", p.name)
	}

	reqBody, err := json.Marshal(map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": analysisPrompt + "\n\nCredit report text:\n" + input.Text},
		},
		"temperature": 0.2,
		"max_tokens":  4096,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, resp, err := p.http.do(ctx, http.MethodPost, p.url, p.headers, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", p.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s API error (status %d): %s", p.name, resp.StatusCode, string(body))
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", p.name, err)
	}
	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("empty response from %s", p.name)
	}

	p.logger.WithFields(logrus.Fields{
		"provider":        p.name,
		"response_length": len(envelope.Choices[0].Message.Content),
	}).Debug("provider response received")

	return Normalize(envelope.Choices[0].Message.Content)
}
