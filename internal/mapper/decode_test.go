package mapper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuotationRequestLegacyShape(t *testing.T) {
	body := `{
		"quoteNo": "2045",
		"client": "ACME Builders",
		"jobDesc": "Warehouse Repainting",
		"contactNo": "0917 000 1111",
		"attn": "Ms. Cruz",
		"rows": [
			{"desc": "Repainting works", "amount": "Php 150,000.00"},
			{"description": "Scaffolding", "price": "25000"}
		]
	}`

	req, err := DecodeQuotationRequest(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "2045", req.QuoteNumber)
	assert.Equal(t, "ACME Builders", req.ClientName)
	assert.Equal(t, "Warehouse Repainting", req.JobDescription)
	assert.Equal(t, "0917 000 1111", req.ContactNumber)
	assert.Equal(t, "Ms. Cruz", req.Attention)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "Repainting works", req.Items[0].Description)
	assert.Equal(t, "Php 150,000.00", req.Items[0].Price)
	assert.Equal(t, "Scaffolding", req.Items[1].Description)
}

func TestDecodeQuotationRequestCanonicalKeyWins(t *testing.T) {
	body := `{"clientName": "Canonical Co", "client": "Legacy Co", "items": []}`

	req, err := DecodeQuotationRequest(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "Canonical Co", req.ClientName)
}

func TestDecodeBillingEntryRequestLegacyShape(t *testing.T) {
	body := `{
		"siNumber": "101",
		"bsNumber": "BS-7",
		"particulars": "Progress billing",
		"checkNo": "CHK-9",
		"datePaid": "2026-02-01"
	}`

	req, err := DecodeBillingEntryRequest(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "101", req.SalesInvoiceNumber)
	assert.Equal(t, "BS-7", req.BillingStatementNumber)
	assert.Equal(t, "Progress billing", req.Description)
	assert.Equal(t, "CHK-9", req.CheckNumber)
	assert.Equal(t, "2026-02-01", req.PaymentDate)
}

func TestDecodeBillingEntryRequestMalformed(t *testing.T) {
	_, err := DecodeBillingEntryRequest(strings.NewReader("not json"))
	assert.Error(t, err)
}
