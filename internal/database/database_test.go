package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

func openTestCache(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db
}

func TestAutoMigrateOnFallbackCache(t *testing.T) {
	db := openTestCache(t)

	// The fallback cache only works if every model's schema is expressible
	// in SQLite DDL.
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{
		"quotations", "line_items", "billing_entries",
		"projects", "project_tasks", "reminders", "quote_requests",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestFallbackCacheQuotationRoundTrip(t *testing.T) {
	db := openTestCache(t)
	require.NoError(t, AutoMigrate(db))

	q := &domain.Quotation{
		QuoteNumber: "101",
		QuoteDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ClientName:  "San Mateo Homeowners Assn.",
		Terms:       []string{"Billing thirty (30) days after completion of work."},
		Items: []domain.LineItem{
			{Description: "Repainting of perimeter fence", Price: "Php 15,000.00"},
		},
	}
	require.NoError(t, db.Create(q).Error)
	assert.NotEqual(t, uuid.Nil, q.ID, "BeforeCreate should assign the ID client-side")

	var loaded domain.Quotation
	require.NoError(t, db.Preload("Items").First(&loaded, "id = ?", q.ID).Error)
	assert.Equal(t, q.Terms, loaded.Terms)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Php 15,000.00", loaded.Items[0].Price)
}
