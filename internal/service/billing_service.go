package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
)

// BillingService owns billing entries and their reconciliation.
type BillingService struct {
	repo   *repository.BillingRepository
	logger *zap.Logger
}

func NewBillingService(repo *repository.BillingRepository, logger *zap.Logger) *BillingService {
	return &BillingService{repo: repo, logger: logger}
}

// NormalizeEntry enforces the billing invariants on every save, not merely
// as UI defaults:
//   - not_paid entries carry no payment detail; whatever the client sent is
//     cleared so a reverted entry cannot keep stale payment fields.
//   - paid entries must name a settlement method, and check settlements a
//     check number.
func NormalizeEntry(e *domain.BillingEntry) error {
	e.SalesInvoiceNumber = strings.TrimSpace(e.SalesInvoiceNumber)
	if e.Status == "" {
		e.Status = domain.BillingStatusNotPaid
	}

	switch e.Status {
	case domain.BillingStatusNotPaid:
		e.Payment = ""
		e.CheckInfo = domain.CheckInfoNone
		e.CheckNumber = ""
		e.PaymentDate = nil
	case domain.BillingStatusPaid:
		if e.CheckInfo == domain.CheckInfoNone {
			return ErrCheckInfoRequired
		}
		if e.CheckInfo == domain.CheckInfoCheck && strings.TrimSpace(e.CheckNumber) == "" {
			return ErrCheckNumberRequired
		}
		if e.CheckInfo != domain.CheckInfoCheck {
			e.CheckNumber = ""
		}
	default:
		return fmt.Errorf("%w: invalid billing status %q", ErrInvalidInput, e.Status)
	}
	return nil
}

// isUniqueViolation detects the invoice-number unique index firing under a
// concurrent insert that the pre-save check could not see.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *BillingService) Create(ctx context.Context, entry *domain.BillingEntry) error {
	if err := NormalizeEntry(entry); err != nil {
		return err
	}

	exists, err := s.repo.ExistsInvoiceNumber(ctx, entry.SalesInvoiceNumber, uuid.Nil)
	if err != nil {
		return fmt.Errorf("failed to check invoice number: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateInvoiceNumber, entry.SalesInvoiceNumber)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateInvoiceNumber, entry.SalesInvoiceNumber)
		}
		return fmt.Errorf("failed to create billing entry: %w", err)
	}

	s.logger.Info("billing entry created",
		zap.String("id", entry.ID.String()),
		zap.String("salesInvoiceNumber", entry.SalesInvoiceNumber),
		zap.String("status", string(entry.Status)))
	return nil
}

func (s *BillingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BillingEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get billing entry: %w", err)
	}
	return entry, nil
}

func (s *BillingService) Update(ctx context.Context, id uuid.UUID, updated *domain.BillingEntry) (*domain.BillingEntry, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.SalesInvoiceNumber = updated.SalesInvoiceNumber
	existing.BillingStatementNumber = updated.BillingStatementNumber
	existing.QuoteNumber = updated.QuoteNumber
	existing.Description = updated.Description
	existing.Address = updated.Address
	existing.Amount = updated.Amount
	existing.Status = updated.Status
	existing.Payment = updated.Payment
	existing.CheckInfo = updated.CheckInfo
	existing.CheckNumber = updated.CheckNumber
	existing.PaymentDate = updated.PaymentDate
	existing.LedgerRef = updated.LedgerRef

	if err := NormalizeEntry(existing); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsInvoiceNumber(ctx, existing.SalesInvoiceNumber, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateInvoiceNumber, existing.SalesInvoiceNumber)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateInvoiceNumber, existing.SalesInvoiceNumber)
		}
		return nil, fmt.Errorf("failed to update billing entry: %w", err)
	}

	s.logger.Info("billing entry updated",
		zap.String("id", existing.ID.String()),
		zap.String("status", string(existing.Status)))
	return existing, nil
}

func (s *BillingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete billing entry: %w", err)
	}
	s.logger.Info("billing entry deleted", zap.String("id", id.String()))
	return nil
}

func (s *BillingService) List(ctx context.Context, page, pageSize int, status *domain.BillingStatus, search string) ([]domain.BillingEntry, int64, error) {
	return s.repo.List(ctx, page, pageSize, status, search)
}

// Summary reconciles the full filtered set, ignoring pagination: the
// summary bar always describes everything the filter matches, not just the
// visible page.
func (s *BillingService) Summary(ctx context.Context, status *domain.BillingStatus, search string) (domain.BillingSummary, error) {
	entries, err := s.repo.ListFiltered(ctx, status, search)
	if err != nil {
		return domain.BillingSummary{}, fmt.Errorf("failed to load billing entries: %w", err)
	}
	return Summarize(entries), nil
}

// NextNumber suggests the next sales invoice number.
func (s *BillingService) NextNumber(ctx context.Context) (string, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list billing entries: %w", err)
	}
	return NextInvoiceNumber(entries), nil
}

// CheckDuplicate backs the on-blur duplicate probe from the entry form.
func (s *BillingService) CheckDuplicate(ctx context.Context, candidate string, excludeID uuid.UUID) (bool, error) {
	if strings.TrimSpace(candidate) == "" {
		return false, nil
	}
	return s.repo.ExistsInvoiceNumber(ctx, candidate, excludeID)
}
