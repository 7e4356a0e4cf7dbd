package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Certificate{},
		&domain.VerificationRequest{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func certificateForTest(id, learnerID, title, issuer string, level int, createdAt time.Time) *domain.Certificate {
	return &domain.Certificate{
		ID:                 id,
		LearnerID:          learnerID,
		Title:              title,
		Issuer:             issuer,
		DateIssued:         day(2024, time.January, 15),
		NSQFLevel:          level,
		VerificationStatus: domain.StatusPending,
		Source:             domain.FileSource("evidence/" + id + ".pdf"),
		Metadata: domain.CertificateMetadata{
			FileType:   domain.FileTypePDF,
			UploadDate: createdAt,
		},
		CreatedAt: createdAt,
	}
}

type certificateRepoFactory struct {
	name string
	new  func(t *testing.T) CertificateRepository
}

func certificateRepoFactories() []certificateRepoFactory {
	return []certificateRepoFactory{
		{name: "gorm", new: func(t *testing.T) CertificateRepository {
			return NewCertificateRepository(newRepositoryDBForTest(t))
		}},
		{name: "memory", new: func(*testing.T) CertificateRepository {
			return NewMemoryCertificateRepository(0)
		}},
	}
}
