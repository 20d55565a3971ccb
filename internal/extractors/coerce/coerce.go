// Package coerce converts loosely typed XML tree values into guaranteed
// valid scalars and navigates optional tree paths.
//
// Every leaf read by an extractor goes through Number or String, so
// missing or oddly shaped values always resolve to a default instead of
// failing the extraction.
package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// Number coerces a tree value to a finite float64.
//
// Every character other than a digit, '.' or '-' is dropped before parsing,
// so "₹12,345.67" yields 12345.67. Absent values, values without digits and
// values that do not parse to a finite number yield 0.
func Number(v any) float64 {
	text, ok := scalar(v)
	if !ok {
		return 0
	}

	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, text)

	n, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

// String coerces a tree value to a trimmed string.
// Absent, empty, zero and false values yield "".
func String(v any) string {
	text, ok := scalar(v)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// scalar returns the textual form of a leaf value.
// Mappings contribute their character data; sequences are not scalars.
func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case map[string]any:
		return scalar(val[domain.TextKey])
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	case float64:
		if val == 0 || math.IsNaN(val) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		if val == 0 {
			return "", false
		}
		return strconv.Itoa(val), true
	default:
		return "", false
	}
}
