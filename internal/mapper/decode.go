package mapper

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

// Records migrated from the spreadsheet-era store arrive in either naming
// convention: the canonical camelCase fields or the legacy shorthand the old
// sheets used. Aliases are resolved here, once per entity; nothing past the
// decode boundary ever sees a legacy field name. A canonical key present in
// the payload always wins over its alias.

var quotationAliases = map[string]string{
	"quoteNo":      "quoteNumber",
	"quotation_no": "quoteNumber",
	"client":       "clientName",
	"customer":     "clientName",
	"jobDesc":      "jobDescription",
	"job":          "jobDescription",
	"contactNo":    "contactNumber",
	"contact":      "contactNumber",
	"attn":         "attention",
	"date":         "quoteDate",
	"template":     "termsTemplate",
	"lineItems":    "items",
	"rows":         "items",
}

var lineItemAliases = map[string]string{
	"desc":   "description",
	"item":   "description",
	"amount": "price",
	"cost":   "price",
}

var billingAliases = map[string]string{
	"siNumber":       "salesInvoiceNumber",
	"invoiceNo":      "salesInvoiceNumber",
	"salesInvoiceNo": "salesInvoiceNumber",
	"bsNumber":       "billingStatementNumber",
	"statementNo":    "billingStatementNumber",
	"quoteNo":        "quoteNumber",
	"particulars":    "description",
	"checkNo":        "checkNumber",
	"datePaid":       "paymentDate",
	"pdDate":         "paymentDate",
}

// applyAliases renames legacy keys in place. Canonical keys already present
// are never overwritten.
func applyAliases(record map[string]json.RawMessage, aliases map[string]string) {
	for legacy, canonical := range aliases {
		value, ok := record[legacy]
		if !ok {
			continue
		}
		delete(record, legacy)
		if _, exists := record[canonical]; !exists {
			record[canonical] = value
		}
	}
}

func decodeNormalized(r io.Reader, aliases map[string]string, out any) error {
	var record map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	applyAliases(record, aliases)

	normalized, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to normalize request body: %w", err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// DecodeQuotationRequest is the normalization boundary for quotation
// payloads, including per-item aliases.
func DecodeQuotationRequest(r io.Reader) (*domain.CreateQuotationRequest, error) {
	var record map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	applyAliases(record, quotationAliases)

	if raw, ok := record["items"]; ok {
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
		for _, item := range items {
			applyAliases(item, lineItemAliases)
		}
		normalized, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize request body: %w", err)
		}
		record["items"] = normalized
	}

	normalized, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize request body: %w", err)
	}

	var req domain.CreateQuotationRequest
	if err := json.Unmarshal(normalized, &req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return &req, nil
}

// DecodeBillingEntryRequest is the normalization boundary for billing entry
// payloads.
func DecodeBillingEntryRequest(r io.Reader) (*domain.BillingEntryRequest, error) {
	var req domain.BillingEntryRequest
	if err := decodeNormalized(r, billingAliases, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
