package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

func entryWithNumber(number string) domain.BillingEntry {
	e := domain.BillingEntry{SalesInvoiceNumber: number}
	e.ID = uuid.New()
	return e
}

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		want    string
	}{
		{"empty set", nil, "1"},
		{"sequential", []string{"1", "2", "3"}, "4"},
		{"max wins regardless of order", []string{"7", "104", "22"}, "105"},
		{"prefixed numbers", []string{"SI-2045", "SI-2046"}, "2047"},
		{"fractional part ignored", []string{"12.5"}, "13"},
		{"all unparsable", []string{"draft", "tbd"}, "1"},
		{"unparsable mixed with numeric", []string{"draft", "9"}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]domain.BillingEntry, 0, len(tt.numbers))
			for _, n := range tt.numbers {
				entries = append(entries, entryWithNumber(n))
			}
			assert.Equal(t, tt.want, NextInvoiceNumber(entries))
		})
	}
}

func TestHasDuplicateInvoiceNumber(t *testing.T) {
	existing := entryWithNumber("SI-100")
	entries := []domain.BillingEntry{existing, entryWithNumber("SI-101")}

	assert.True(t, HasDuplicateInvoiceNumber("SI-100", entries, uuid.Nil))
	assert.True(t, HasDuplicateInvoiceNumber("  si-100  ", entries, uuid.Nil), "trimmed, case-insensitive")
	assert.False(t, HasDuplicateInvoiceNumber("SI-102", entries, uuid.Nil))
	assert.False(t, HasDuplicateInvoiceNumber("", entries, uuid.Nil))

	// the entry being edited does not collide with itself
	assert.False(t, HasDuplicateInvoiceNumber("SI-100", entries, existing.ID))
}
