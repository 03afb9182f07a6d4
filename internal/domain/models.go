package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. The schema tags stay portable across
// PostgreSQL and the SQLite fallback cache; the postgres-side
// gen_random_uuid() default lives in the goose migration only.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the ID client-side so inserts work on both dialects
// without relying on a database-side default.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// MaxLineItems is the hard cap on quotation line items. The quotation form
// renders at most six rows and the document layout assumes the same bound.
const MaxLineItems = 6

// AmountPlaceholder is rendered wherever a money field has no parsable
// value. Display contexts must never show a missing amount as "0.00".
const AmountPlaceholder = "—"

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusApproved QuotationStatus = "approved"
	QuotationStatusBilled   QuotationStatus = "billed"
)

// IsValid checks if the QuotationStatus is a valid enum value
func (qs QuotationStatus) IsValid() bool {
	switch qs {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusApproved, QuotationStatusBilled:
		return true
	}
	return false
}

// TermsTemplateID identifies one of the fixed terms templates.
// Only the identifier is authoritative; realized clause text is always
// regenerated from (template, total) at save/load boundaries.
type TermsTemplateID string

const (
	TermsTemplate1 TermsTemplateID = "template1"
	TermsTemplate2 TermsTemplateID = "template2"
)

// IsValid checks if the TermsTemplateID is a known template
func (t TermsTemplateID) IsValid() bool {
	return t == TermsTemplate1 || t == TermsTemplate2
}

// Quotation represents a price quotation issued to a client.
// All money fields are stored as free-form display strings and normalized
// only at computation points; TotalDue is always the recomputed sum of the
// item prices, never independently editable.
type Quotation struct {
	BaseModel
	QuoteNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex;column:quote_number"`
	QuoteDate      time.Time       `gorm:"type:date;not null;column:quote_date"`
	ValidUntil     *time.Time      `gorm:"type:date;column:valid_until"`
	ClientName     string          `gorm:"type:varchar(200);not null;index;column:client_name"`
	JobDescription string          `gorm:"type:varchar(500);column:job_description"`
	ContactNumber  string          `gorm:"type:varchar(50);column:contact_number"`
	Address        string          `gorm:"type:varchar(500)"`
	Attention      string          `gorm:"type:varchar(200)"`
	Status         QuotationStatus `gorm:"type:varchar(50);not null;default:'draft';index"`
	TermsTemplate  TermsTemplateID `gorm:"type:varchar(50);not null;default:'template1';column:terms_template"`
	Terms          []string        `gorm:"type:text;serializer:json"`
	ProposalText   string          `gorm:"type:text;column:proposal_text"`
	TotalDue       string          `gorm:"type:varchar(50);column:total_due"`
	Items          []LineItem      `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	ProjectID      *uuid.UUID      `gorm:"type:uuid;index;column:project_id"`
	Project        *Project        `gorm:"foreignKey:ProjectID"`
}

// LineItem represents one description+price row in a quotation.
// Price is free-form currency text ("Php 1,000.00", "500", "") and is
// parsed permissively when totals are computed.
type LineItem struct {
	BaseModel
	QuotationID uuid.UUID `gorm:"type:uuid;not null;index;column:quotation_id"`
	Description string    `gorm:"type:text"`
	Price       string    `gorm:"type:varchar(100)"`
	Position    int       `gorm:"not null;default:0"`
}

// BillingStatus represents the payment status of a billing entry
type BillingStatus string

const (
	BillingStatusPaid    BillingStatus = "paid"
	BillingStatusNotPaid BillingStatus = "not_paid"
)

// IsValid checks if the BillingStatus is a valid enum value
func (bs BillingStatus) IsValid() bool {
	return bs == BillingStatusPaid || bs == BillingStatusNotPaid
}

// CheckInfo represents how a paid entry was settled
type CheckInfo string

const (
	CheckInfoCheck CheckInfo = "check"
	CheckInfoCash  CheckInfo = "cash"
	CheckInfoNone  CheckInfo = ""
)

// IsValid checks if the CheckInfo is a valid enum value
func (ci CheckInfo) IsValid() bool {
	return ci == CheckInfoCheck || ci == CheckInfoCash || ci == CheckInfoNone
}

// BillingEntry represents an invoice record tracking amount due, payment
// status and payment detail fields.
//
// Invariants enforced on every save (not merely UI defaults):
//   - SalesInvoiceNumber is unique (trimmed, case-insensitive) across all
//     non-deleted entries; the migration backs this with a unique index on
//     LOWER(TRIM(sales_invoice_number)).
//   - status=paid requires CheckInfo, and CheckNumber when CheckInfo=check.
//   - status=not_paid clears Payment, CheckInfo, CheckNumber, PaymentDate.
type BillingEntry struct {
	BaseModel
	SalesInvoiceNumber     string        `gorm:"type:varchar(50);not null;column:sales_invoice_number"`
	BillingStatementNumber string        `gorm:"type:varchar(50);column:billing_statement_number"`
	QuoteNumber            string        `gorm:"type:varchar(50);index;column:quote_number"`
	Description            string        `gorm:"type:text"`
	Address                string        `gorm:"type:varchar(500)"`
	Amount                 string        `gorm:"type:varchar(100)"`
	Status                 BillingStatus `gorm:"type:varchar(50);not null;default:'not_paid';index"`
	Payment                string        `gorm:"type:varchar(100)"`
	CheckInfo              CheckInfo     `gorm:"type:varchar(20);column:check_info"`
	CheckNumber            string        `gorm:"type:varchar(50);column:check_number"`
	PaymentDate            *time.Time    `gorm:"type:date;column:payment_date"`
	LedgerRef              string        `gorm:"type:varchar(100);index;column:ledger_ref"`
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Project represents a job being performed for a client
type Project struct {
	BaseModel
	Name       string        `gorm:"type:varchar(200);not null;index"`
	ClientName string        `gorm:"type:varchar(200);column:client_name"`
	Location   string        `gorm:"type:varchar(500)"`
	Status     ProjectStatus `gorm:"type:varchar(50);not null;default:'planning';index"`
	Notes      string        `gorm:"type:text"`
	StartDate  *time.Time    `gorm:"type:date;column:start_date"`
	EndDate    *time.Time    `gorm:"type:date;column:end_date"`
	Tasks      []ProjectTask `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectTask represents one checklist row within a project
type ProjectTask struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index;column:project_id"`
	Description string    `gorm:"type:varchar(500);not null"`
	Done        bool      `gorm:"not null;default:false"`
	Position    int       `gorm:"not null;default:0"`
}

// Reminder represents a staff reminder
type Reminder struct {
	BaseModel
	Title   string     `gorm:"type:varchar(200);not null"`
	Notes   string     `gorm:"type:text"`
	DueDate *time.Time `gorm:"type:date;column:due_date;index"`
	Done    bool       `gorm:"not null;default:false;index"`
}

// QuoteRequestStatus represents the triage state of an inbound quote request
type QuoteRequestStatus string

const (
	QuoteRequestStatusNew       QuoteRequestStatus = "new"
	QuoteRequestStatusReviewed  QuoteRequestStatus = "reviewed"
	QuoteRequestStatusConverted QuoteRequestStatus = "converted"
)

// IsValid checks if the QuoteRequestStatus is a valid enum value
func (s QuoteRequestStatus) IsValid() bool {
	switch s {
	case QuoteRequestStatusNew, QuoteRequestStatusReviewed, QuoteRequestStatusConverted:
		return true
	}
	return false
}

// QuoteRequest represents an inbound request for a quotation
type QuoteRequest struct {
	BaseModel
	Name    string             `gorm:"type:varchar(200);not null"`
	Email   string             `gorm:"type:varchar(255)"`
	Phone   string             `gorm:"type:varchar(50)"`
	Details string             `gorm:"type:text"`
	Status  QuoteRequestStatus `gorm:"type:varchar(50);not null;default:'new';index"`
}
