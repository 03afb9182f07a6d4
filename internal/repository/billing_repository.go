package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) Create(ctx context.Context, entry *domain.BillingEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *BillingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BillingEntry, error) {
	var entry domain.BillingEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *BillingRepository) Update(ctx context.Context, entry *domain.BillingEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *BillingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.BillingEntry{}, "id = ?", id).Error
}

// List returns entries matching the filter. The reconciliation summary is
// computed over exactly this filtered set, so filtering lives here rather
// than in the handler.
func (r *BillingRepository) List(ctx context.Context, page, pageSize int, status *domain.BillingStatus, search string) ([]domain.BillingEntry, int64, error) {
	var entries []domain.BillingEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.BillingEntry{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(sales_invoice_number) LIKE ? OR LOWER(description) LIKE ? OR LOWER(quote_number) LIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&entries).Error

	return entries, total, err
}

// ListFiltered returns every entry matching the filter, without pagination.
// The reconciliation summary runs over this set.
func (r *BillingRepository) ListFiltered(ctx context.Context, status *domain.BillingStatus, search string) ([]domain.BillingEntry, error) {
	var entries []domain.BillingEntry

	query := r.db.WithContext(ctx).Model(&domain.BillingEntry{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(sales_invoice_number) LIKE ? OR LOWER(description) LIKE ? OR LOWER(quote_number) LIKE ?",
			pattern, pattern, pattern)
	}

	err := query.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// ListAll returns every entry without pagination, for numbering suggestions
// and duplicate checks.
func (r *BillingRepository) ListAll(ctx context.Context) ([]domain.BillingEntry, error) {
	var entries []domain.BillingEntry
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

// ExistsInvoiceNumber mirrors the unique index expression: trimmed,
// case-insensitive match against every other entry.
func (r *BillingRepository) ExistsInvoiceNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.BillingEntry{}).
		Where("LOWER(TRIM(sales_invoice_number)) = LOWER(TRIM(?))", number)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// GetByQuoteNumber finds the entry created from a quotation, if any.
// Returns nil without error when no entry exists.
func (r *BillingRepository) GetByQuoteNumber(ctx context.Context, quoteNumber string) (*domain.BillingEntry, error) {
	var entry domain.BillingEntry
	err := r.db.WithContext(ctx).Where("quote_number = ?", quoteNumber).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByLedgerRef finds the entry bound to a legacy accounting ledger
// reference, used by the payment sync job.
func (r *BillingRepository) GetByLedgerRef(ctx context.Context, ref string) (*domain.BillingEntry, error) {
	var entry domain.BillingEntry
	err := r.db.WithContext(ctx).Where("ledger_ref = ?", ref).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
