package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/document"
	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/money"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
	"github.com/fcm-construction/opsdesk-api/internal/terms"
)

// QuotationService owns the quotation lifecycle: the item ledger, total
// recomputation, terms regeneration, document generation and the hand-off
// into billing.
type QuotationService struct {
	repo        *repository.QuotationRepository
	billingRepo *repository.BillingRepository
	generator   *document.Generator
	archive     DocumentArchive
	logger      *zap.Logger
}

// DocumentArchive stores a copy of every generated document. Archiving is
// best-effort; failures never block the download.
type DocumentArchive interface {
	Upload(ctx context.Context, filename string, contentType string, data io.Reader) (string, int64, error)
}

func NewQuotationService(
	repo *repository.QuotationRepository,
	billingRepo *repository.BillingRepository,
	generator *document.Generator,
	archive DocumentArchive,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		repo:        repo,
		billingRepo: billingRepo,
		generator:   generator,
		archive:     archive,
		logger:      logger,
	}
}

// ComputeTotal sums the parsed item prices, treating unparsable prices as
// zero. Summation is permissive; display formatting stays strict.
func ComputeTotal(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(money.ParseOrZero(item.Price))
	}
	return total
}

// NormalizeItems enforces the item ledger invariants: positions are
// reassigned sequentially, the list never exceeds the cap and never goes
// empty (an empty list gets a single blank row back).
func NormalizeItems(items []domain.LineItem) ([]domain.LineItem, error) {
	if len(items) > domain.MaxLineItems {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrItemLimitReached, len(items), domain.MaxLineItems)
	}
	if len(items) == 0 {
		items = []domain.LineItem{{}}
	}
	for i := range items {
		items[i].Position = i
	}
	return items, nil
}

// refresh recomputes every derived field from the current items and
// template. Stale terms text from a previous template or total is a defect,
// so this runs on every save.
func (s *QuotationService) refresh(q *domain.Quotation) error {
	if q.TermsTemplate == "" {
		q.TermsTemplate = domain.TermsTemplate1
	}
	if !q.TermsTemplate.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, q.TermsTemplate)
	}
	if q.Status == "" {
		q.Status = domain.QuotationStatusDraft
	}

	items, err := NormalizeItems(q.Items)
	if err != nil {
		return err
	}
	q.Items = items

	total := ComputeTotal(q.Items)
	resolved, err := terms.Resolve(q.TermsTemplate, total)
	if err != nil {
		return err
	}

	q.TotalDue = money.Format(total)
	q.Terms = resolved.Clauses
	q.ProposalText = resolved.ProposalText()
	return nil
}

func (s *QuotationService) Create(ctx context.Context, q *domain.Quotation) error {
	if strings.TrimSpace(q.QuoteNumber) == "" {
		number, err := s.NextQuoteNumber(ctx)
		if err != nil {
			return err
		}
		q.QuoteNumber = number
	}

	exists, err := s.repo.ExistsQuoteNumber(ctx, q.QuoteNumber, uuid.Nil)
	if err != nil {
		return fmt.Errorf("failed to check quote number: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateQuoteNumber, q.QuoteNumber)
	}

	if err := s.refresh(q); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	s.logger.Info("quotation created",
		zap.String("id", q.ID.String()),
		zap.String("quoteNumber", q.QuoteNumber),
		zap.String("totalDue", q.TotalDue))
	return nil
}

func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}
	return q, nil
}

// Update applies the edited form state. Derived fields (terms, proposal,
// total) are regenerated server-side; client-sent values for them are
// ignored.
func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, updated *domain.Quotation) (*domain.Quotation, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsQuoteNumber(ctx, updated.QuoteNumber, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check quote number: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateQuoteNumber, updated.QuoteNumber)
	}

	existing.QuoteNumber = updated.QuoteNumber
	existing.QuoteDate = updated.QuoteDate
	existing.ValidUntil = updated.ValidUntil
	existing.ClientName = updated.ClientName
	existing.JobDescription = updated.JobDescription
	existing.ContactNumber = updated.ContactNumber
	existing.Address = updated.Address
	existing.Attention = updated.Attention
	existing.Status = updated.Status
	existing.TermsTemplate = updated.TermsTemplate
	existing.ProjectID = updated.ProjectID

	items := make([]domain.LineItem, len(updated.Items))
	copy(items, updated.Items)
	for i := range items {
		items[i].QuotationID = existing.ID
	}
	existing.Items = items

	if err := s.refresh(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}

	s.logger.Info("quotation updated",
		zap.String("id", existing.ID.String()),
		zap.String("totalDue", existing.TotalDue))
	return existing, nil
}

func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	s.logger.Info("quotation deleted", zap.String("id", id.String()))
	return nil
}

func (s *QuotationService) List(ctx context.Context, page, pageSize int, status *domain.QuotationStatus, projectID *uuid.UUID) ([]domain.Quotation, int64, error) {
	return s.repo.List(ctx, page, pageSize, status, projectID)
}

func (s *QuotationService) Search(ctx context.Context, query string, limit int) ([]domain.Quotation, error) {
	return s.repo.Search(ctx, query, limit)
}

// NextQuoteNumber suggests max(integer prefixes)+1 over existing quotation
// numbers, "1" when there are none.
func (s *QuotationService) NextQuoteNumber(ctx context.Context) (string, error) {
	numbers, err := s.repo.ListNumbers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list quote numbers: %w", err)
	}
	return NextNumber(numbers), nil
}

// GeneratePDF renders the quotation document to w and returns the download
// filename. A copy is archived to document storage; archive failures are
// logged, never surfaced.
func (s *QuotationService) GeneratePDF(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	tee := io.MultiWriter(w, &buf)
	if err := s.generator.Generate(ctx, q, tee); err != nil {
		return "", fmt.Errorf("failed to generate document: %w", err)
	}

	filename := document.DownloadName(q)

	if s.archive != nil {
		if _, _, err := s.archive.Upload(ctx, filename, "application/pdf", bytes.NewReader(buf.Bytes())); err != nil {
			s.logger.Warn("document archive failed",
				zap.String("filename", filename),
				zap.Error(err))
		}
	}

	s.logger.Info("quotation document generated",
		zap.String("id", q.ID.String()),
		zap.String("filename", filename))
	return filename, nil
}

// CreateBillingEntry hands an approved quotation off to billing: a new
// entry pre-filled from the quotation, with a suggested invoice number, and
// the quotation marked billed.
func (s *QuotationService) CreateBillingEntry(ctx context.Context, id uuid.UUID) (*domain.BillingEntry, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// One billing entry per quotation. The status flip below makes repeat
	// hand-offs visible; the lookup catches entries created out of band.
	if q.Status == domain.QuotationStatusBilled {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBilled, q.QuoteNumber)
	}
	if existing, err := s.billingRepo.GetByQuoteNumber(ctx, q.QuoteNumber); err != nil {
		return nil, fmt.Errorf("failed to check existing billing entry: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBilled, q.QuoteNumber)
	}

	all, err := s.billingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing entries: %w", err)
	}

	entry := &domain.BillingEntry{
		SalesInvoiceNumber: NextInvoiceNumber(all),
		QuoteNumber:        q.QuoteNumber,
		Description:        q.JobDescription,
		Address:            q.Address,
		Amount:             q.TotalDue,
		Status:             domain.BillingStatusNotPaid,
	}

	if err := s.billingRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create billing entry: %w", err)
	}

	q.Status = domain.QuotationStatusBilled
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to mark quotation billed: %w", err)
	}

	s.logger.Info("quotation billed",
		zap.String("quotationID", q.ID.String()),
		zap.String("salesInvoiceNumber", entry.SalesInvoiceNumber))
	return entry, nil
}
