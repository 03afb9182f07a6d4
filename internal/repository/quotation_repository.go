package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Project").
		Where("id = ?", id).
		First(&quotation).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// Update replaces the quotation and its item rows. Items are rewritten
// wholesale inside a transaction so removed rows do not linger.
func (r *QuotationRepository) Update(ctx context.Context, quotation *domain.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&domain.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(quotation).Error
	})
}

func (r *QuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Items").Delete(&domain.Quotation{BaseModel: domain.BaseModel{ID: id}}).Error
}

func (r *QuotationRepository) List(ctx context.Context, page, pageSize int, status *domain.QuotationStatus, projectID *uuid.UUID) ([]domain.Quotation, int64, error) {
	var quotations []domain.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&quotations).Error

	return quotations, total, err
}

func (r *QuotationRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Quotation, error) {
	var quotations []domain.Quotation
	searchPattern := "%" + strings.ToLower(searchQuery) + "%"
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("LOWER(client_name) LIKE ? OR LOWER(job_description) LIKE ? OR LOWER(quote_number) LIKE ?",
			searchPattern, searchPattern, searchPattern).
		Limit(limit).
		Find(&quotations).Error
	return quotations, err
}

// ExistsQuoteNumber reports whether another quotation already uses the
// number, trimmed and case-insensitive.
func (r *QuotationRepository) ExistsQuoteNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Where("LOWER(TRIM(quote_number)) = LOWER(TRIM(?))", number)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// ListNumbers returns all quotation numbers; the numbering service
// extracts the integer prefixes.
func (r *QuotationRepository) ListNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Pluck("quote_number", &numbers).Error
	return numbers, err
}
