package analysis

import (
	"strings"
	"time"
)

// dateFormats covers the layouts seen in report text, US order first.
var dateFormats = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01.02.2006",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/06",
	"1/2/06",
	"01/2006",
}

// parseReportDate parses a partially-validated report date string.
// Unparsable input returns ok=false; callers decide what an unknown
// date means for their rule.
func parseReportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, s)
		if err != nil {
			continue
		}
		return t, true
	}

	return time.Time{}, false
}
