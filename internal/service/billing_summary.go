package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/money"
)

// withholdingFactor is the fixed 2% estimated withholding/processing
// deduction applied to the unpaid total. The net figure is an estimate and
// is labeled as such to the user.
var withholdingFactor = decimal.NewFromFloat(0.98)

// IsPaid reports whether an entry counts as settled for reconciliation:
// either its status says so, or it carries a non-empty payment note, a
// legacy signal from records migrated before the status field existed.
func IsPaid(e domain.BillingEntry) bool {
	return e.Status == domain.BillingStatusPaid || strings.TrimSpace(e.Payment) != ""
}

// PaymentAmount resolves how much an entry actually paid. Free-text payment
// notes like "pd cash" do not parse as numbers and are treated as payment
// in full, falling back to the entry's own amount.
func PaymentAmount(e domain.BillingEntry) decimal.Decimal {
	if d, ok := money.Parse(e.Payment); ok {
		return d
	}
	return money.ParseOrZero(e.Amount)
}

// Summarize reconciles the given (already filtered) entries into the
// summary-bar figures. BalanceDue is the partial-payment shortfall across
// paid entries and can be negative when overpaid; it is reported as-is,
// never clamped.
func Summarize(entries []domain.BillingEntry) domain.BillingSummary {
	s := domain.BillingSummary{EntryCount: len(entries)}
	for _, e := range entries {
		amount := money.ParseOrZero(e.Amount)
		s.TotalAmount = s.TotalAmount.Add(amount)

		if IsPaid(e) {
			paid := PaymentAmount(e)
			s.TotalPaid = s.TotalPaid.Add(paid)
			s.BalanceDue = s.BalanceDue.Add(amount.Sub(paid))
		} else {
			s.UnpaidInvoice = s.UnpaidInvoice.Add(amount)
		}
	}
	s.UnpaidInvoiceNet = s.UnpaidInvoice.Mul(withholdingFactor)
	return s
}

// SummaryDTO formats a summary for the read-only summary bar.
func SummaryDTO(s domain.BillingSummary) domain.BillingSummaryDTO {
	return domain.BillingSummaryDTO{
		TotalAmount:      money.Format(s.TotalAmount),
		TotalPaid:        money.Format(s.TotalPaid),
		UnpaidInvoice:    money.Format(s.UnpaidInvoice),
		UnpaidInvoiceNet: money.Format(s.UnpaidInvoiceNet),
		BalanceDue:       money.Format(s.BalanceDue),
		EntryCount:       s.EntryCount,
	}
}
