package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		number string
		client string
		job    string
		want   string
	}{
		{
			name:   "plain",
			number: "2045",
			client: "ACME Builders",
			job:    "Warehouse Repainting",
			want:   "2045 ACME Builders - Warehouse Repainting (Final Quotation).pdf",
		},
		{
			name:   "path unsafe characters replaced",
			number: "2046",
			client: `A/B <Holdings>`,
			job:    `Roof: "Phase 1" C:\site?*`,
			want:   "2046 A-B -Holdings- - Roof- -Phase 1- C--site-- (Final Quotation).pdf",
		},
		{
			name:   "surrounding whitespace trimmed",
			number: " 2047 ",
			client: "Client ",
			job:    " Job",
			want:   "2047 Client - Job (Final Quotation).pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.number, tt.client, tt.job))
		})
	}
}
