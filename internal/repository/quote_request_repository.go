package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

type QuoteRequestRepository struct {
	db *gorm.DB
}

func NewQuoteRequestRepository(db *gorm.DB) *QuoteRequestRepository {
	return &QuoteRequestRepository{db: db}
}

func (r *QuoteRequestRepository) Create(ctx context.Context, request *domain.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *QuoteRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	var request domain.QuoteRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *QuoteRequestRepository) Update(ctx context.Context, request *domain.QuoteRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *QuoteRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.QuoteRequest{}, "id = ?", id).Error
}

func (r *QuoteRequestRepository) List(ctx context.Context, page, pageSize int, status *domain.QuoteRequestStatus) ([]domain.QuoteRequest, int64, error) {
	var requests []domain.QuoteRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.QuoteRequest{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&requests).Error

	return requests, total, err
}
