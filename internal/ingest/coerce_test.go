package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected int
	}{
		{"plain integer", "12", 12},
		{"float form", "12.0", 12},
		{"float truncates", "12.9", 12},
		{"negative passes through", "-3", -3},
		{"blank", "", 0},
		{"whitespace", "   ", 0},
		{"garbage", "abc", 0},
		{"trimmed", " 7 ", 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CoerceInt(tc.cell))
		})
	}
}

func TestCoerceDecimal(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected string
	}{
		{"plain", "2.50", "2.5"},
		{"thousands separator", "1,234.56", "1234.56"},
		{"negative", "-19.5", "-19.5"},
		{"blank", "", "0"},
		{"na marker", "N/A", "0"},
		{"nan marker", "NaN", "0"},
		{"dash marker", "-", "0"},
		{"none marker", "None", "0"},
		{"garbage", "abc", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CoerceDecimal(tc.cell).String())
		})
	}
}

func TestCoerceDate(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected string
	}{
		{"already formatted", "01/15/2025", "01/15/2025"},
		{"short month and day", "1/5/2025", "01/05/2025"},
		{"iso", "2025-01-15", "01/15/2025"},
		{"iso with time", "2025-01-15 10:30:00", "01/15/2025"},
		{"long form", "January 15, 2025", "01/15/2025"},
		{"dashed", "01-15-2025", "01/15/2025"},
		{"blank", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CoerceDate(tc.cell))
		})
	}
}

func TestCoerceDateKeepsUnparseableText(t *testing.T) {
	// Unrecognised dates must not be blanked: rendering shows the original.
	assert.Equal(t, "sometime next week", CoerceDate("sometime next week"))
	assert.Equal(t, "15.01.2025", CoerceDate("15.01.2025"))
}
