package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"plain integer", "500", "500", true},
		{"currency prefix and grouping", "Php 1,000.00", "1000", true},
		{"peso sign", "₱2,500.50", "2500.5", true},
		{"decimal only", "0.75", "0.75", true},
		{"whitespace", "  1 234.00 ", "1234", true},
		{"empty", "", "0", false},
		{"free text", "pd cash", "0", false},
		{"multiple dots", "1.2.3", "0", false},
		{"lone dot", ".", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text)
			assert.Equal(t, tt.ok, ok)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s, want %s", got, want)
		})
	}
}

func TestParseOrZero(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1500).Equal(
		ParseOrZero("Php 1,000.00").Add(ParseOrZero("500")).Add(ParseOrZero(""))))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero", "0", "0.00"},
		{"hundreds", "500", "500.00"},
		{"thousands", "1500", "1,500.00"},
		{"millions", "1234567.891", "1,234,567.89"},
		{"exact grouping boundary", "100000", "100,000.00"},
		{"negative", "-200", "-200.00"},
		{"negative thousands", "-123456.5", "-123,456.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(d))
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "1,000.00", FormatDisplay("Php 1,000.00", "—"))
	// no amount renders as the placeholder, never as 0.00
	assert.Equal(t, "—", FormatDisplay("", "—"))
	assert.Equal(t, "—", FormatDisplay("tbd", "—"))
	assert.Equal(t, "0.00", FormatDisplay("0", "—"))
}
