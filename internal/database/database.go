package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fcm-construction/opsdesk-api/internal/config"
	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

// NewDatabase connects to the primary PostgreSQL database. When the primary
// is unreachable or misconfigured and the fallback cache is enabled, it
// degrades to a local SQLite database so list screens keep working offline.
// Fallback writes are last-writer-wins; nothing merges back automatically.
func NewDatabase(cfg *config.DatabaseConfig, cacheCfg *config.CacheConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := openPostgres(cfg)
	if err == nil {
		return db, nil
	}

	if cacheCfg == nil || !cacheCfg.Enabled {
		return nil, err
	}

	log.Warn("primary database unavailable, falling back to local cache",
		zap.String("cachePath", cacheCfg.Path),
		zap.Error(err))

	fallback, fbErr := openFallback(cacheCfg.Path)
	if fbErr != nil {
		return nil, fmt.Errorf("primary database failed (%v) and fallback cache failed: %w", err, fbErr)
	}
	return fallback, nil
}

func openPostgres(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.ConnectionString()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func openFallback(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open fallback cache: %w", err)
	}

	// SQLite has no expression indexes from our migrations; AutoMigrate
	// keeps the cache schema current.
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate fallback cache: %w", err)
	}
	return db, nil
}

// HealthCheck pings the database
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// HealthCheckWithStats pings the database and returns connection pool stats
func HealthCheckWithStats(db *gorm.DB) (sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return sql.DBStats{}, fmt.Errorf("database ping failed: %w", err)
	}
	return sqlDB.Stats(), nil
}

// AutoMigrate runs automatic migrations (for development and the fallback
// cache; production schema is managed by goose migrations)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Quotation{},
		&domain.LineItem{},
		&domain.BillingEntry{},
		&domain.Project{},
		&domain.ProjectTask{},
		&domain.Reminder{},
		&domain.QuoteRequest{},
	)
}
