// Package validation holds request-level validation helpers.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// Currency codes are ISO 4217, 3 letters.
	CurrencyCodeLength = 3
)

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// ValidPassword checks length and character requirements.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLength && len(s) <= MaxPasswordLength && HasSpecialChar(s)
}

// ParseAmount parses a raw amount value into a typed decimal. Requests may
// carry the amount as a JSON number or a string; anything that does not
// parse cleanly is rejected rather than silently cast to zero.
func ParseAmount(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ValidCurrencyCode accepts 1-3 character currency tokens, normalized
// uppercase by the caller.
func ValidCurrencyCode(code string) bool {
	return code != "" && len(code) <= CurrencyCodeLength
}
