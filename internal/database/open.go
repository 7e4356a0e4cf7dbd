package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/credential-vault-backend/internal/config"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

var ErrNoDatabase = errors.New("store driver does not use a database")

// Open connects to the relational store selected by STORE_DRIVER. The memory
// driver has no database and returns ErrNoDatabase.
func Open(cfg *config.Config) (*gorm.DB, error) {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "connect", time.Since(start))
	}()

	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.StoreDriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.StoreDriverMemory:
		return nil, ErrNoDatabase
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "connect", "error")
		return nil, fmt.Errorf("open %s: %w", cfg.StoreDriver, err)
	}
	observability.RecordDatabaseStartupEvent(ctx, "connect", "success")
	return db, nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
