package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

func Migrate(db *gorm.DB) error {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "migrate", time.Since(start))
	}()
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Certificate{},
		&domain.VerificationRequest{},
	)
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "migrate", "error")
		return err
	}
	observability.RecordDatabaseStartupEvent(ctx, "migrate", "success")
	return nil
}
