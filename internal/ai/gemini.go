package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

const geminiURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiProvider is the one text provider that also accepts the raw
// file bytes, so scanned reports and images route here.
type GeminiProvider struct {
	apiKey string
	model  string
	http   *httpClient
	logger *logrus.Logger
}

func NewGemini(apiKey, model string, httpc *httpClient, logger *logrus.Logger) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
		http:   httpc,
		logger: logger,
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Analyze(ctx context.Context, input Input) (*types.ParsedReport, error) {
	parts := []map[string]any{}

	switch {
	case input.Text != "":
		parts = append(parts, map[string]any{"text": analysisPrompt + "\n\nCredit report text:\n" + input.Text})
	case len(input.FileData) > 0:
		parts = append(parts,
			map[string]any{"text": analysisPrompt},
			map[string]any{"inline_data": map[string]string{
				"mime_type": input.MimeType,
				"data":      base64.StdEncoding.EncodeToString(input.FileData),
			}},
		)
	default:
		return nil, fmt.Errorf("gemini provider requires report text or file data")
	}

	reqBody, err := json.Marshal(map[string]any{
		"contents": []map[string]any{{"parts": parts}},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"maxOutputTokens": 8192,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiURLFormat, p.model, p.apiKey)
	headers := map[string]string{"Content-Type": "application/json"}

	body, resp, err := p.http.do(ctx, http.MethodPost, url, headers, reqBody)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	text := envelope.Candidates[0].Content.Parts[0].Text

	p.logger.WithFields(logrus.Fields{
		"provider":        "gemini",
		"response_length": len(text),
	}).Debug("provider response received")

	return Normalize(text)
}
