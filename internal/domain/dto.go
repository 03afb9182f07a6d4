package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaginatedResponse wraps a list payload with pagination metadata
type PaginatedResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type LineItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	// PriceDisplay is the normalized two-decimal rendering, or the
	// placeholder when the price text is not parsable.
	PriceDisplay string `json:"priceDisplay"`
	Position     int    `json:"position"`
}

type QuotationDTO struct {
	ID             uuid.UUID       `json:"id"`
	QuoteNumber    string          `json:"quoteNumber"`
	QuoteDate      string          `json:"quoteDate"` // ISO 8601 date
	ValidUntil     string          `json:"validUntil,omitempty"`
	ClientName     string          `json:"clientName"`
	JobDescription string          `json:"jobDescription,omitempty"`
	ContactNumber  string          `json:"contactNumber,omitempty"`
	Address        string          `json:"address,omitempty"`
	Attention      string          `json:"attention,omitempty"`
	Status         QuotationStatus `json:"status"`
	TermsTemplate  TermsTemplateID `json:"termsTemplate"`
	Terms          []string        `json:"terms"`
	ProposalText   string          `json:"proposalText,omitempty"`
	TotalDue       string          `json:"totalDue"`
	Items          []LineItemDTO   `json:"items"`
	ProjectID      *uuid.UUID      `json:"projectId,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

type BillingEntryDTO struct {
	ID                     uuid.UUID     `json:"id"`
	SalesInvoiceNumber     string        `json:"salesInvoiceNumber"`
	BillingStatementNumber string        `json:"billingStatementNumber,omitempty"`
	QuoteNumber            string        `json:"quoteNumber,omitempty"`
	Description            string        `json:"description,omitempty"`
	Address                string        `json:"address,omitempty"`
	Amount                 string        `json:"amount"`
	AmountDisplay          string        `json:"amountDisplay"`
	Status                 BillingStatus `json:"status"`
	Payment                string        `json:"payment,omitempty"`
	CheckInfo              CheckInfo     `json:"checkInfo,omitempty"`
	CheckNumber            string        `json:"checkNumber,omitempty"`
	PaymentDate            string        `json:"paymentDate,omitempty"`
	LedgerRef              string        `json:"ledgerRef,omitempty"`
	CreatedAt              string        `json:"createdAt"`
	UpdatedAt              string        `json:"updatedAt"`
}

// BillingSummary holds reconciliation figures over a set of billing entries.
// All figures are decimals; formatting happens at the DTO boundary.
type BillingSummary struct {
	TotalAmount      decimal.Decimal
	TotalPaid        decimal.Decimal
	UnpaidInvoice    decimal.Decimal
	UnpaidInvoiceNet decimal.Decimal
	BalanceDue       decimal.Decimal
	EntryCount       int
}

// BillingSummaryDTO is the read-only summary bar payload. UnpaidInvoiceNet
// is an estimate (fixed 2% withholding deduction), not an authoritative
// figure, and is labeled as such to the user.
type BillingSummaryDTO struct {
	TotalAmount      string `json:"totalAmount"`
	TotalPaid        string `json:"totalPaid"`
	UnpaidInvoice    string `json:"unpaidInvoice"`
	UnpaidInvoiceNet string `json:"unpaidInvoiceNet"`
	BalanceDue       string `json:"balanceDue"`
	EntryCount       int    `json:"entryCount"`
}

type ProjectTaskDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	Position    int       `json:"position"`
}

type ProjectDTO struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	ClientName string           `json:"clientName,omitempty"`
	Location   string           `json:"location,omitempty"`
	Status     ProjectStatus    `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	StartDate  string           `json:"startDate,omitempty"`
	EndDate    string           `json:"endDate,omitempty"`
	Tasks      []ProjectTaskDTO `json:"tasks"`
	CreatedAt  string           `json:"createdAt"`
	UpdatedAt  string           `json:"updatedAt"`
}

type ReminderDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	DueDate   string    `json:"dueDate,omitempty"`
	Done      bool      `json:"done"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type QuoteRequestDTO struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Details   string             `json:"details,omitempty"`
	Status    QuoteRequestStatus `json:"status"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}

// Request payloads. Money and date fields travel as display strings and are
// normalized only at computation points (see the mapper package for the
// legacy field-name aliases accepted on decode).

type LineItemRequest struct {
	Description string `json:"description" validate:"max=2000"`
	Price       string `json:"price" validate:"max=100"`
}

type CreateQuotationRequest struct {
	QuoteNumber    string            `json:"quoteNumber" validate:"max=50"`
	QuoteDate      string            `json:"quoteDate" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil     string            `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	ClientName     string            `json:"clientName" validate:"required,max=200"`
	JobDescription string            `json:"jobDescription" validate:"max=500"`
	ContactNumber  string            `json:"contactNumber" validate:"max=50"`
	Address        string            `json:"address" validate:"max=500"`
	Attention      string            `json:"attention" validate:"max=200"`
	Status         QuotationStatus   `json:"status" validate:"omitempty,oneof=draft sent approved billed"`
	TermsTemplate  TermsTemplateID   `json:"termsTemplate" validate:"omitempty,oneof=template1 template2"`
	Items          []LineItemRequest `json:"items" validate:"min=1,max=6,dive"`
	ProjectID      *uuid.UUID        `json:"projectId"`
}

// UpdateQuotationRequest carries the full edited form state; terms and
// total are regenerated server-side before persisting.
type UpdateQuotationRequest = CreateQuotationRequest

type BillingEntryRequest struct {
	SalesInvoiceNumber     string        `json:"salesInvoiceNumber" validate:"required,max=50"`
	BillingStatementNumber string        `json:"billingStatementNumber" validate:"max=50"`
	QuoteNumber            string        `json:"quoteNumber" validate:"max=50"`
	Description            string        `json:"description" validate:"max=2000"`
	Address                string        `json:"address" validate:"max=500"`
	Amount                 string        `json:"amount" validate:"max=100"`
	Status                 BillingStatus `json:"status" validate:"omitempty,oneof=paid not_paid"`
	Payment                string        `json:"payment" validate:"max=100"`
	CheckInfo              CheckInfo     `json:"checkInfo" validate:"omitempty,oneof=check cash"`
	CheckNumber            string        `json:"checkNumber" validate:"max=50"`
	PaymentDate            string        `json:"paymentDate" validate:"omitempty,datetime=2006-01-02"`
	LedgerRef              string        `json:"ledgerRef" validate:"max=100"`
}

type ProjectTaskRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Done        bool   `json:"done"`
}

type CreateProjectRequest struct {
	Name       string               `json:"name" validate:"required,max=200"`
	ClientName string               `json:"clientName" validate:"max=200"`
	Location   string               `json:"location" validate:"max=500"`
	Status     ProjectStatus        `json:"status" validate:"omitempty,oneof=planning ongoing completed cancelled"`
	Notes      string               `json:"notes"`
	StartDate  string               `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string               `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Tasks      []ProjectTaskRequest `json:"tasks" validate:"dive"`
}

type ReminderRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Notes   string `json:"notes"`
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Done    bool   `json:"done"`
}

type CreateQuoteRequestRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Details string `json:"details" validate:"max=5000"`
}

type UpdateQuoteRequestStatusRequest struct {
	Status QuoteRequestStatus `json:"status" validate:"required,oneof=new reviewed converted"`
}
