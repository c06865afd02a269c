package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		raw   interface{}
		want  float64
		valid bool
	}{
		{"json number", float64(42.5), 42.5, true},
		{"int", 7, 7, true},
		{"numeric string", "100.25", 100.25, true},
		{"string with spaces", "  50 ", 50, true},
		{"empty string", "", 0, false},
		{"non-numeric string", "abc", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"object", map[string]interface{}{"v": 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("longenough!"))
	assert.False(t, ValidPassword("short!"))
	assert.False(t, ValidPassword("nospecialchar"))
}

func TestValidCurrencyCode(t *testing.T) {
	assert.True(t, ValidCurrencyCode("USD"))
	assert.True(t, ValidCurrencyCode("F"))
	assert.False(t, ValidCurrencyCode(""))
	assert.False(t, ValidCurrencyCode("EURO"))
}
