package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestIsPaid(t *testing.T) {
	assert.True(t, IsPaid(domain.BillingEntry{Status: domain.BillingStatusPaid}))
	// legacy records carry only a payment note
	assert.True(t, IsPaid(domain.BillingEntry{Status: domain.BillingStatusNotPaid, Payment: "pd cash"}))
	assert.False(t, IsPaid(domain.BillingEntry{Status: domain.BillingStatusNotPaid, Payment: "   "}))
	assert.False(t, IsPaid(domain.BillingEntry{Status: domain.BillingStatusNotPaid}))
}

func TestPaymentAmount(t *testing.T) {
	e := domain.BillingEntry{Amount: "Php 1,000.00", Payment: "600"}
	assert.True(t, dec(t, "600").Equal(PaymentAmount(e)))

	// free-text note means paid in full: fall back to the entry's amount
	e.Payment = "pd cash"
	assert.True(t, dec(t, "1000").Equal(PaymentAmount(e)))

	e.Payment = ""
	assert.True(t, dec(t, "1000").Equal(PaymentAmount(e)))
}

func TestSummarize(t *testing.T) {
	entries := []domain.BillingEntry{
		{Amount: "Php 1,000.00", Status: domain.BillingStatusPaid, Payment: "600"},
		{Amount: "500", Status: domain.BillingStatusNotPaid},
		{Amount: "250", Status: domain.BillingStatusNotPaid, Payment: "pd check"}, // legacy paid
		{Amount: "not yet billed", Status: domain.BillingStatusNotPaid},
	}

	s := Summarize(entries)

	assert.Equal(t, 4, s.EntryCount)
	assert.True(t, dec(t, "1750").Equal(s.TotalAmount), "got %s", s.TotalAmount)
	// 600 partial + 250 in-full fallback
	assert.True(t, dec(t, "850").Equal(s.TotalPaid), "got %s", s.TotalPaid)
	// only the genuinely unpaid 500 entry; unparsable amount sums as zero
	assert.True(t, dec(t, "500").Equal(s.UnpaidInvoice), "got %s", s.UnpaidInvoice)
	assert.True(t, dec(t, "490").Equal(s.UnpaidInvoiceNet), "got %s", s.UnpaidInvoiceNet)
	// shortfall on the partially paid entry only
	assert.True(t, dec(t, "400").Equal(s.BalanceDue), "got %s", s.BalanceDue)
}

func TestSummarizeOverpaymentStaysNegative(t *testing.T) {
	s := Summarize([]domain.BillingEntry{
		{Amount: "100", Status: domain.BillingStatusPaid, Payment: "150"},
	})
	assert.True(t, dec(t, "-50").Equal(s.BalanceDue), "got %s", s.BalanceDue)
	assert.Equal(t, "-50.00", SummaryDTO(s).BalanceDue)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.EntryCount)
	assert.Equal(t, "0.00", SummaryDTO(s).TotalAmount)
}
