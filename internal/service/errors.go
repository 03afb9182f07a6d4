package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrDuplicateInvoiceNumber is returned when a billing entry's sales
	// invoice number matches an existing entry's (trimmed, case-insensitive)
	ErrDuplicateInvoiceNumber = errors.New("sales invoice number already in use")

	// ErrDuplicateQuoteNumber is returned when a quotation number collides
	// with an existing quotation's
	ErrDuplicateQuoteNumber = errors.New("quotation number already in use")

	// ErrItemLimitReached is returned when a quotation would exceed the
	// line-item cap
	ErrItemLimitReached = errors.New("quotation line item limit reached")

	// ErrCheckInfoRequired is returned when an entry is marked paid without
	// a settlement method
	ErrCheckInfoRequired = errors.New("paid entries require a settlement method")

	// ErrCheckNumberRequired is returned when a check settlement is missing
	// its check number
	ErrCheckNumberRequired = errors.New("check settlements require a check number")

	// ErrAlreadyConverted is returned when converting a quote request that
	// was already converted to a quotation
	ErrAlreadyConverted = errors.New("quote request already converted")

	// ErrAlreadyBilled is returned when handing off a quotation that
	// already has a billing entry
	ErrAlreadyBilled = errors.New("quotation already billed")

	// ErrInvalidTemplate is returned when an unknown terms template id is
	// supplied
	ErrInvalidTemplate = errors.New("unknown terms template")
)
