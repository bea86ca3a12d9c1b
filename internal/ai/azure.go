package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"creditlens/internal/extract"
	"creditlens/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	azureAPIVersion   = "2023-07-31"
	azurePollAttempts = 30
	azurePollInterval = time.Second
)

// AzureProvider runs Document Intelligence's prebuilt-read model to get
// OCR text out of the uploaded file, then recovers structure with the
// pattern extractor. It is the document route for scans the PDF reader
// cannot handle.
type AzureProvider struct {
	endpoint string
	apiKey   string
	http     *httpClient
	pattern  *extract.PatternExtractor
	logger   *logrus.Logger
}

func NewAzure(endpoint, apiKey string, httpc *httpClient, logger *logrus.Logger) *AzureProvider {
	return &AzureProvider{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		http:     httpc,
		pattern:  extract.NewPatternExtractor(),
		logger:   logger,
	}
}

func (p *AzureProvider) Name() string { return "azure" }

func (p *AzureProvider) Analyze(ctx context.Context, input Input) (*types.ParsedReport, error) {
	if len(input.FileData) == 0 {
		return nil, fmt.Errorf("azure provider requires the raw report file")
	}

	content, err := p.extractContent(ctx, input.FileData)
	if err != nil {
		return nil, err
	}

	extraction := p.pattern.ExtractFields(content)
	switch extraction.Outcome {
	case extract.OutcomeFound:
		return extraction.Report, nil
	case extract.OutcomeEmpty:
		report := &types.ParsedReport{}
		report.EnsureDefaults()
		return report, nil
	default:
		return nil, fmt.Errorf("pattern extraction over azure OCR text failed: %s", extraction.Reason)
	}
}

func (p *AzureProvider) extractContent(ctx context.Context, fileData []byte) (string, error) {
	url := fmt.Sprintf("%s/formrecognizer/documentModels/prebuilt-read:analyze?api-version=%s",
		p.endpoint, azureAPIVersion)

	reqBody, err := json.Marshal(map[string]string{
		"base64Source": base64.StdEncoding.EncodeToString(fileData),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type":              "application/json",
		"Ocp-Apim-Subscription-Key": p.apiKey,
	}

	body, resp, err := p.http.do(ctx, http.MethodPost, url, headers, reqBody)
	if err != nil {
		return "", fmt.Errorf("azure analyze request failed: %w", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("azure API error (status %d): %s", resp.StatusCode, string(body))
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("azure response missing Operation-Location header")
	}

	return p.pollResult(ctx, operationURL)
}

// pollResult waits on the analyze operation with a bounded number of
// fixed-interval polls.
func (p *AzureProvider) pollResult(ctx context.Context, operationURL string) (string, error) {
	headers := map[string]string{"Ocp-Apim-Subscription-Key": p.apiKey}

	for attempt := 0; attempt < azurePollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(azurePollInterval):
		}

		body, resp, err := p.http.do(ctx, http.MethodGet, operationURL, headers, nil)
		if err != nil {
			return "", fmt.Errorf("azure poll request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("azure poll error (status %d): %s", resp.StatusCode, string(body))
		}

		var result struct {
			Status        string `json:"status"`
			AnalyzeResult struct {
				Content string `json:"content"`
			} `json:"analyzeResult"`
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return "", fmt.Errorf("failed to parse azure poll response: %w", err)
		}

		switch result.Status {
		case "succeeded":
			p.logger.WithFields(logrus.Fields{
				"provider": "azure",
				"attempts": attempt + 1,
				"chars":    len(result.AnalyzeResult.Content),
			}).Debug("azure analyze completed")
			return result.AnalyzeResult.Content, nil
		case "failed":
			return "", fmt.Errorf("azure analyze failed: %s", result.Error.Message)
		}
	}

	return "", fmt.Errorf("azure analyze did not complete within %d polls", azurePollAttempts)
}
