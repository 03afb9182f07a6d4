package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

func TestNormalizeEntryNotPaidClearsPaymentFields(t *testing.T) {
	paymentDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	e := &domain.BillingEntry{
		SalesInvoiceNumber: "  101  ",
		Status:             domain.BillingStatusNotPaid,
		Payment:            "5000",
		CheckInfo:          domain.CheckInfoCheck,
		CheckNumber:        "CHK-9",
		PaymentDate:        &paymentDate,
	}

	require.NoError(t, NormalizeEntry(e))

	assert.Equal(t, "101", e.SalesInvoiceNumber)
	assert.Empty(t, e.Payment)
	assert.Equal(t, domain.CheckInfoNone, e.CheckInfo)
	assert.Empty(t, e.CheckNumber)
	assert.Nil(t, e.PaymentDate)
}

func TestNormalizeEntryPaidRequiresSettlement(t *testing.T) {
	e := &domain.BillingEntry{SalesInvoiceNumber: "101", Status: domain.BillingStatusPaid}
	assert.ErrorIs(t, NormalizeEntry(e), ErrCheckInfoRequired)

	e.CheckInfo = domain.CheckInfoCheck
	assert.ErrorIs(t, NormalizeEntry(e), ErrCheckNumberRequired)

	e.CheckNumber = "CHK-42"
	assert.NoError(t, NormalizeEntry(e))
}

func TestNormalizeEntryCashDropsCheckNumber(t *testing.T) {
	e := &domain.BillingEntry{
		SalesInvoiceNumber: "102",
		Status:             domain.BillingStatusPaid,
		CheckInfo:          domain.CheckInfoCash,
		CheckNumber:        "CHK-1",
	}
	require.NoError(t, NormalizeEntry(e))
	assert.Empty(t, e.CheckNumber)
}

func TestNormalizeEntryDefaultsStatus(t *testing.T) {
	e := &domain.BillingEntry{SalesInvoiceNumber: "103"}
	require.NoError(t, NormalizeEntry(e))
	assert.Equal(t, domain.BillingStatusNotPaid, e.Status)
}

func TestNormalizeEntryRejectsUnknownStatus(t *testing.T) {
	e := &domain.BillingEntry{SalesInvoiceNumber: "104", Status: domain.BillingStatus("maybe")}
	assert.ErrorIs(t, NormalizeEntry(e), ErrInvalidInput)
}
