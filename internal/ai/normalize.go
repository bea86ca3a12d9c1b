package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"creditlens/pkg/types"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tailscale/hujson"
)

var (
	// ErrNoJSONFound means the response contained no candidate JSON
	// object at all.
	ErrNoJSONFound = errors.New("no JSON object found in provider response")

	// ErrUnparsableResponse means a candidate was located but every
	// parse strategy failed on it.
	ErrUnparsableResponse = errors.New("provider response could not be parsed as JSON")
)

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	numericStringRe = regexp.MustCompile(`^[\d,]+(?:\.\d+)?$`)
)

// Normalize converts a provider's free-form text response into a
// ParsedReport. It locates a JSON substring, runs the parse cascade,
// reconciles key names and collection shapes, and guarantees every
// expected array exists. Feeding its own output back through is a
// no-op.
func Normalize(raw string) (*types.ParsedReport, error) {
	payload, err := locateJSON(raw)
	if err != nil {
		return nil, err
	}

	doc, err := parseLoose(payload)
	if err != nil {
		return nil, err
	}

	doc = normalizeShape(doc)

	buf, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encode normalized document: %w", err)
	}

	var report types.ParsedReport
	if err := json.Unmarshal(buf, &report); err != nil {
		return nil, fmt.Errorf("decode normalized document: %w", err)
	}

	report.EnsureDefaults()
	return &report, nil
}

// locateJSON prefers a fenced code block, else the substring between
// the first '{' and the last '}'.
func locateJSON(raw string) (string, error) {
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONFound
	}

	return raw[start : end+1], nil
}

// parseLoose runs the cascade: strict JSON, comment/trailing-comma
// tolerant parse, manual trailing-comma strip, then structural
// auto-repair. Each step only runs when the previous one failed.
func parseLoose(payload string) (map[string]any, error) {
	var doc map[string]any

	if err := json.Unmarshal([]byte(payload), &doc); err == nil {
		return doc, nil
	}

	if std, err := hujson.Standardize([]byte(payload)); err == nil {
		if err := json.Unmarshal(std, &doc); err == nil {
			return doc, nil
		}
	}

	if err := json.Unmarshal([]byte(stripTrailingCommas(payload)), &doc); err == nil {
		return doc, nil
	}

	if repaired, err := jsonrepair.JSONRepair(payload); err == nil {
		if err := json.Unmarshal([]byte(repaired), &doc); err == nil {
			return doc, nil
		}
	}

	return nil, fmt.Errorf("%w: exhausted all parse strategies", ErrUnparsableResponse)
}

func stripTrailingCommas(payload string) string {
	return trailingCommaRe.ReplaceAllString(payload, "$1")
}

// keyAliases maps lowercased, underscore-stripped field names to the
// canonical schema keys. Providers drift on casing and vocabulary.
var keyAliases = map[string]string{
	"personalinfo":         "personalInfo",
	"consumerinfo":         "personalInfo",
	"personal":             "personalInfo",
	"accounts":             "accounts",
	"tradelines":           "accounts",
	"creditaccounts":       "accounts",
	"negativeitems":        "negativeItems",
	"derogatory":           "negativeItems",
	"derogatories":         "negativeItems",
	"derogatoryitems":      "negativeItems",
	"inquiries":            "inquiries",
	"creditinquiries":      "inquiries",
	"publicrecords":        "publicRecords",
	"violations":           "violations",
	"complianceviolations": "violations",
}

var arrayFields = []string{"accounts", "negativeItems", "inquiries", "publicRecords", "violations"}

// moneyFields are record fields coerced from string to number when a
// provider quotes amounts.
var moneyFields = map[string]struct{}{
	"balance":          {},
	"creditLimit":      {},
	"currentBalance":   {},
	"originalAmount":   {},
	"amount":           {},
	"estimatedDamages": {},
}

func normalizeShape(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))

	for key, value := range doc {
		canonical, ok := keyAliases[strings.ToLower(strings.ReplaceAll(key, "_", ""))]
		if !ok {
			out[key] = value
			continue
		}
		out[canonical] = value
	}

	if _, ok := out["personalInfo"]; !ok {
		out["personalInfo"] = map[string]any{}
	}
	if list, ok := out["personalInfo"].([]any); ok {
		// some providers wrap the identity block in a one-element array
		if len(list) > 0 {
			out["personalInfo"] = list[0]
		} else {
			out["personalInfo"] = map[string]any{}
		}
	}

	for _, field := range arrayFields {
		out[field] = coerceRecords(coerceArray(out[field]))
	}

	return out
}

// coerceArray turns object-shaped collections into arrays: an indexed
// map becomes its values in key order, any other object becomes a
// single-element array.
func coerceArray(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	case map[string]any:
		if len(v) == 0 {
			return []any{}
		}
		keys := make([]string, 0, len(v))
		indexed := true
		for k := range v {
			if _, err := strconv.Atoi(k); err != nil {
				indexed = false
				break
			}
			keys = append(keys, k)
		}
		if !indexed {
			return []any{v}
		}
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, v[k])
		}
		return out
	default:
		return []any{}
	}
}

func coerceRecords(records []any) []any {
	for _, entry := range records {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for field := range moneyFields {
			s, ok := record[field].(string)
			if !ok {
				continue
			}
			cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
			if cleaned == "" || !numericStringRe.MatchString(cleaned) {
				delete(record, field)
				continue
			}
			if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
				record[field] = v
			} else {
				delete(record, field)
			}
		}
		if s, ok := record["bureaus"].(string); ok {
			parts := strings.Split(s, ",")
			bureaus := make([]any, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					bureaus = append(bureaus, p)
				}
			}
			record["bureaus"] = bureaus
		}
	}
	return records
}
