package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// one unit per rune keeps expected break points easy to compute by hand
func runeWidth(s string) float64 { return float64(len([]rune(s))) }

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"blank", "   ", 20, nil},
		{"fits on one line", "supply and install", 20, []string{"supply and install"}},
		{"breaks between words", "supply and install tiles", 20, []string{"supply and install", "tiles"}},
		{
			"long word overflows its own line",
			"fix waterproofing-membrane now",
			10,
			[]string{"fix", "waterproofing-membrane", "now"},
		},
		{"collapses internal whitespace", "a   b \n c", 10, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(runeWidth, tt.text, tt.maxWidth))
		})
	}
}

func TestFitsInline(t *testing.T) {
	// "total" occupies 5 units; line "abc" plus separator is 4
	assert.True(t, fitsInline(runeWidth, "abc", 5, 9))
	assert.False(t, fitsInline(runeWidth, "abc", 5, 8))
}
