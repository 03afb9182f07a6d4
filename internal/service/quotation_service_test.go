package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fcm-construction/opsdesk-api/internal/database"
	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
)

func TestComputeTotal(t *testing.T) {
	items := []domain.LineItem{
		{Price: "Php 1,000.00"},
		{Price: "500"},
		{Price: ""},          // blank row
		{Price: "follow-up"}, // free text
	}
	assert.True(t, dec(t, "1500").Equal(ComputeTotal(items)))
	assert.True(t, ComputeTotal(nil).IsZero())
}

func TestNormalizeItems(t *testing.T) {
	t.Run("reassigns positions", func(t *testing.T) {
		items, err := NormalizeItems([]domain.LineItem{
			{Description: "a", Position: 5},
			{Description: "b", Position: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, items[0].Position)
		assert.Equal(t, 1, items[1].Position)
	})

	t.Run("empty list gets one blank row back", func(t *testing.T) {
		items, err := NormalizeItems(nil)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Empty(t, items[0].Description)
	})

	t.Run("cap enforced", func(t *testing.T) {
		over := make([]domain.LineItem, domain.MaxLineItems+1)
		_, err := NormalizeItems(over)
		assert.ErrorIs(t, err, ErrItemLimitReached)

		atCap := make([]domain.LineItem, domain.MaxLineItems)
		_, err = NormalizeItems(atCap)
		assert.NoError(t, err)
	})
}

func newHandoffFixture(t *testing.T) (*QuotationService, *repository.BillingRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	billingRepo := repository.NewBillingRepository(db)
	svc := NewQuotationService(repository.NewQuotationRepository(db), billingRepo, nil, nil, zap.NewNop())
	return svc, billingRepo
}

func newHandoffQuotation(number string) *domain.Quotation {
	return &domain.Quotation{
		QuoteNumber:    number,
		QuoteDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ClientName:     "San Mateo Homeowners Assn.",
		JobDescription: "Repainting of perimeter fence",
		Items: []domain.LineItem{
			{Description: "Repainting of perimeter fence", Price: "Php 15,000.00"},
		},
	}
}

func TestCreateBillingEntryOncePerQuotation(t *testing.T) {
	svc, billingRepo := newHandoffFixture(t)
	ctx := context.Background()

	q := newHandoffQuotation("201")
	require.NoError(t, svc.Create(ctx, q))

	entry, err := svc.CreateBillingEntry(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "201", entry.QuoteNumber)

	// Second hand-off must not mint a second entry.
	_, err = svc.CreateBillingEntry(ctx, q.ID)
	assert.ErrorIs(t, err, ErrAlreadyBilled)

	all, err := billingRepo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := svc.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusBilled, got.Status)
}

func TestCreateBillingEntryRejectsExistingEntryForQuote(t *testing.T) {
	svc, billingRepo := newHandoffFixture(t)
	ctx := context.Background()

	q := newHandoffQuotation("202")
	require.NoError(t, svc.Create(ctx, q))

	// An entry created out of band still blocks the hand-off even though
	// the quotation was never marked billed.
	require.NoError(t, billingRepo.Create(ctx, &domain.BillingEntry{
		SalesInvoiceNumber: "9",
		QuoteNumber:        "202",
		Status:             domain.BillingStatusNotPaid,
	}))

	_, err := svc.CreateBillingEntry(ctx, q.ID)
	assert.ErrorIs(t, err, ErrAlreadyBilled)
}
