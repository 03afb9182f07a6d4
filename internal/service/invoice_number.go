package service

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/money"
)

// NextInvoiceNumber suggests the next sales invoice number from the
// existing entries: the maximum integer prefix across all invoice numbers,
// plus one. Returns "1" when there are no entries or nothing parses.
//
// This is a suggestion, not a reservation; the database's unique index is
// the authority and collisions surface as ErrDuplicateInvoiceNumber on
// save.
func NextInvoiceNumber(entries []domain.BillingEntry) string {
	numbers := make([]string, 0, len(entries))
	for _, e := range entries {
		numbers = append(numbers, e.SalesInvoiceNumber)
	}
	return NextNumber(numbers)
}

// NextNumber is the underlying suggestion rule, shared with quotation
// numbering: max integer prefix plus one, or "1".
func NextNumber(numbers []string) string {
	max := 0
	found := false
	for _, number := range numbers {
		n, ok := invoiceNumberValue(number)
		if !ok {
			continue
		}
		found = true
		if n > max {
			max = n
		}
	}
	if !found {
		return "1"
	}
	return strconv.Itoa(max + 1)
}

// invoiceNumberValue extracts the integer part of an invoice number after
// stripping everything but digits and dots, mirroring the money parser's
// cleaning rule.
func invoiceNumberValue(number string) (int, bool) {
	d, ok := money.Parse(number)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

// HasDuplicateInvoiceNumber reports whether candidate matches any entry's
// invoice number, trimmed and case-insensitive, skipping the entry being
// edited. Run on field blur for early feedback and again right before
// persisting; the unique index catches whatever slips between the check and
// the write.
func HasDuplicateInvoiceNumber(candidate string, entries []domain.BillingEntry, excludeID uuid.UUID) bool {
	want := strings.ToLower(strings.TrimSpace(candidate))
	if want == "" {
		return false
	}
	for _, e := range entries {
		if e.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(e.SalesInvoiceNumber)) == want {
			return true
		}
	}
	return false
}
