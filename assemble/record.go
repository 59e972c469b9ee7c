package assemble

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is the decoded analysis record. Every field is optional and may
// be a string, a number, an array, or a nested object; the accessors below
// normalize each shape.
type Record map[string]any

// ParseRecord decodes an analysis record from JSON.
func ParseRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding analysis record: %w", err)
	}
	return r, nil
}

// clean normalizes a raw string to NFC and trims it. The AI pipeline mixes
// composed and decomposed accents; measurement and drawing must see the
// same bytes, so normalization happens once, here at the boundary.
func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// asText coerces a value to a single narrative string. Arrays join with
// newlines; numbers format plainly; anything else is empty.
func asText(v any) string {
	switch t := v.(type) {
	case string:
		return clean(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := asList(t)
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// asList coerces a value to a list of item strings. Objects contribute
// their "items" or "roles" array; a plain string splits on newlines.
// Empty and non-string entries are dropped.
func asList(v any) []string {
	var out []string
	add := func(s string) {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case string:
		for _, line := range strings.Split(t, "\n") {
			add(strings.TrimLeft(strings.TrimSpace(line), "•-– "))
		}
	case map[string]any:
		if items, ok := t["items"]; ok {
			return asList(items)
		}
		if roles, ok := t["roles"]; ok {
			return asList(roles)
		}
	}
	return out
}

var percentPattern = regexp.MustCompile(`(\d{1,3})\s*%`)

// asPercent extracts a 0..100 value. Numbers are clamped; strings are
// scanned for the first "NN%" occurrence; anything else yields def.
func asPercent(v any, def float64) float64 {
	switch t := v.(type) {
	case float64:
		return clampRange(t)
	case string:
		if m := percentPattern.FindStringSubmatch(t); m != nil {
			var n float64
			fmt.Sscanf(m[1], "%f", &n)
			return clampRange(n)
		}
	}
	return def
}

// asScore normalizes the analysis score to 0..100. The analyzer has
// historically emitted both 1..10 and 0..100 scales; small values are
// treated as the former.
func asScore(v any, def float64) float64 {
	n, ok := v.(float64)
	if !ok {
		return def
	}
	if n <= 10 {
		n *= 10
	}
	return clampRange(n)
}

// object returns a nested object field, or nil.
func (r Record) object(key string) map[string]any {
	if m, ok := r[key].(map[string]any); ok {
		return m
	}
	return nil
}

func clampRange(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// capItems truncates a list to at most n entries.
func capItems(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
