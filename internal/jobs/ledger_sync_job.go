package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/ledger"
	"github.com/fcm-construction/opsdesk-api/internal/repository"
	"github.com/fcm-construction/opsdesk-api/internal/service"
)

// ledgerSyncWindow bounds how far back each sync looks. Payments older than
// the window were picked up by earlier runs.
const ledgerSyncWindow = 7 * 24 * time.Hour

// LedgerSyncJob pulls recorded payments from the accounting ledger and
// marks the matching billing entries paid. Entries already marked paid in
// the office are left alone; the ledger never overrides manual settlement
// detail.
type LedgerSyncJob struct {
	client  *ledger.Client
	billing *repository.BillingRepository
	logger  *zap.Logger
}

func NewLedgerSyncJob(client *ledger.Client, billing *repository.BillingRepository, logger *zap.Logger) *LedgerSyncJob {
	return &LedgerSyncJob{client: client, billing: billing, logger: logger}
}

// Run applies recent ledger payments to unpaid billing entries.
func (j *LedgerSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	payments, err := j.client.PaymentsSince(ctx, time.Now().Add(-ledgerSyncWindow))
	if err != nil {
		j.logger.Error("ledger payment query failed", zap.Error(err))
		return
	}

	applied := 0
	for _, p := range payments {
		if err := j.apply(ctx, p); err != nil {
			j.logger.Warn("failed to apply ledger payment",
				zap.String("reference", p.Reference),
				zap.Error(err))
			continue
		}
		applied++
	}

	j.logger.Info("ledger sync finished",
		zap.Int("payments", len(payments)),
		zap.Int("applied", applied))
}

func (j *LedgerSyncJob) apply(ctx context.Context, p ledger.Payment) error {
	entry, err := j.billing.GetByLedgerRef(ctx, p.Reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no billing entry tracks this invoice; nothing to update
			return nil
		}
		return err
	}

	if service.IsPaid(*entry) {
		return nil
	}

	entry.Status = domain.BillingStatusPaid
	entry.Payment = p.Amount
	entry.PaymentDate = &p.PaidAt
	if strings.EqualFold(p.Method, "check") {
		entry.CheckInfo = domain.CheckInfoCheck
		entry.CheckNumber = p.CheckNumber
	} else {
		entry.CheckInfo = domain.CheckInfoCash
	}

	if err := service.NormalizeEntry(entry); err != nil {
		return err
	}
	if err := j.billing.Update(ctx, entry); err != nil {
		return err
	}

	j.logger.Info("billing entry settled from ledger",
		zap.String("id", entry.ID.String()),
		zap.String("salesInvoiceNumber", entry.SalesInvoiceNumber),
		zap.String("reference", p.Reference))
	return nil
}
