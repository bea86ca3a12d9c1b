package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

const (
	maxTextBytes     = 200 * 1024 // cap for extracted text
	scannedThreshold = 50         // chars per page below which a PDF is considered scanned
)

// TextResult is the raw text pulled out of an uploaded report file.
type TextResult struct {
	Text      string
	Lines     []string
	PageCount int
	Scanned   bool
}

// TextExtractor pulls plain text out of PDF uploads. Image uploads have
// no embedded text and always come back Scanned; those need an AI
// vision provider.
type TextExtractor struct {
	logger *logrus.Logger
}

func NewTextExtractor(logger *logrus.Logger) *TextExtractor {
	return &TextExtractor{logger: logger}
}

// ExtractText reads plain text from a PDF. The pdf library panics on
// some malformed files, so the whole pass is wrapped in recover.
func (e *TextExtractor) ExtractText(data []byte) (result *TextResult, err error) {
	result = &TextResult{PageCount: 1, Scanned: true}

	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", fmt.Sprintf("%v", r)).Warn("recovered during pdf text extraction")
			err = fmt.Errorf("panic during pdf text extraction: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return result, fmt.Errorf("open pdf reader: %w", err)
	}

	result.PageCount = reader.NumPage()
	if result.PageCount < 1 {
		result.PageCount = 1
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return result, fmt.Errorf("extract plain text: %w", err)
	}

	textBytes, err := io.ReadAll(io.LimitReader(plainText, int64(maxTextBytes)))
	if err != nil {
		return result, fmt.Errorf("read plain text: %w", err)
	}

	result.Text = string(textBytes)
	result.Scanned = len(result.Text)/result.PageCount < scannedThreshold

	for _, line := range strings.Split(result.Text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			result.Lines = append(result.Lines, trimmed)
		}
	}

	e.logger.WithFields(logrus.Fields{
		"pages":   result.PageCount,
		"chars":   len(result.Text),
		"scanned": result.Scanned,
	}).Debug("pdf text extracted")

	return result, nil
}
