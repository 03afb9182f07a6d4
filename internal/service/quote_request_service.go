package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
)

// QuoteRequestService triages inbound quote requests and converts accepted
// ones into draft quotations.
type QuoteRequestService struct {
	repo       *repository.QuoteRequestRepository
	quotations *QuotationService
	logger     *zap.Logger
}

func NewQuoteRequestService(
	repo *repository.QuoteRequestRepository,
	quotations *QuotationService,
	logger *zap.Logger,
) *QuoteRequestService {
	return &QuoteRequestService{repo: repo, quotations: quotations, logger: logger}
}

func (s *QuoteRequestService) Create(ctx context.Context, request *domain.QuoteRequest) error {
	if request.Status == "" {
		request.Status = domain.QuoteRequestStatusNew
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return fmt.Errorf("failed to create quote request: %w", err)
	}
	s.logger.Info("quote request received",
		zap.String("id", request.ID.String()),
		zap.String("name", request.Name))
	return nil
}

func (s *QuoteRequestService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}
	return request, nil
}

func (s *QuoteRequestService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuoteRequestStatus) (*domain.QuoteRequest, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid quote request status %q", ErrInvalidInput, status)
	}

	request, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = status
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update quote request: %w", err)
	}
	return request, nil
}

func (s *QuoteRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quote request: %w", err)
	}
	return nil
}

func (s *QuoteRequestService) List(ctx context.Context, page, pageSize int, status *domain.QuoteRequestStatus) ([]domain.QuoteRequest, int64, error) {
	return s.repo.List(ctx, page, pageSize, status)
}

// Convert turns a quote request into a draft quotation pre-filled from the
// request and marks the request converted. Converting twice is an error.
func (s *QuoteRequestService) Convert(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	request, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status == domain.QuoteRequestStatusConverted {
		return nil, ErrAlreadyConverted
	}

	quotation := &domain.Quotation{
		QuoteDate:      time.Now(),
		ClientName:     request.Name,
		JobDescription: request.Details,
		ContactNumber:  request.Phone,
		Status:         domain.QuotationStatusDraft,
		TermsTemplate:  domain.TermsTemplate1,
		Items:          []domain.LineItem{{}},
	}

	if err := s.quotations.Create(ctx, quotation); err != nil {
		return nil, err
	}

	request.Status = domain.QuoteRequestStatusConverted
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to mark quote request converted: %w", err)
	}

	s.logger.Info("quote request converted",
		zap.String("requestID", request.ID.String()),
		zap.String("quotationID", quotation.ID.String()))
	return quotation, nil
}
