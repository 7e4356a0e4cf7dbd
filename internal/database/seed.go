package database

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
)

type SeedReport struct {
	CreatedUsers        int  `json:"created_users"`
	CreatedCertificates int  `json:"created_certificates"`
	Noop                bool `json:"noop"`
}

func intPtr(v int) *int { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DemoUsers are the learners and employers used for local demos.
func DemoUsers() []domain.User {
	return []domain.User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Role: domain.RoleLearner},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: domain.RoleLearner},
		{ID: "3", Name: "Mike Johnson", Email: "mike@example.com", Role: domain.RoleLearner},
		{ID: "4", Name: "Tech Corp HR", Email: "hr@techcorp.com", Role: domain.RoleEmployer},
		{ID: "5", Name: "Durvesh Patil", Email: "durveshpatil2005@example.com", Role: domain.RoleLearner},
		{ID: "6", Name: "Jay Kolate", Email: "jaykolate2005@example.com", Role: domain.RoleLearner},
	}
}

// DemoCertificates are already classified; their statuses agree with their
// verification steps and scores.
func DemoCertificates() []domain.Certificate {
	return []domain.Certificate{
		{
			ID:                 "demo-cert-1",
			LearnerID:          "1",
			Title:              "Full Stack Development Certification",
			Issuer:             "TechEd Institute",
			DateIssued:         date(2024, time.August, 15),
			Source:             domain.FileSource("/certificates/cert1.pdf"),
			VerificationStatus: domain.StatusVerified,
			AIScore:            intPtr(95),
			NSQFLevel:          6,
			HasQRCode:          true,
			BlockchainHash:     "0x1234567890abcdef",
			Metadata: domain.CertificateMetadata{
				FileType:   domain.FileTypePDF,
				UploadDate: date(2024, time.September, 1),
				VerificationSteps: domain.VerificationSteps{
					QRCheck: true, BlockchainVerification: true, APIVerification: true, AIScoring: true,
				},
			},
		},
		{
			ID:                 "demo-cert-2",
			LearnerID:          "1",
			Title:              "React.js Professional Certificate",
			Issuer:             "Meta",
			DateIssued:         date(2024, time.July, 20),
			Source:             domain.LinkSource("https://coursera.org/verify/cert123"),
			VerificationStatus: domain.StatusAIScored,
			AIScore:            intPtr(87),
			NSQFLevel:          5,
			Metadata: domain.CertificateMetadata{
				UploadDate: date(2024, time.September, 5),
				VerificationSteps: domain.VerificationSteps{
					APIVerification: true, AIScoring: true,
				},
			},
		},
		{
			ID:                 "demo-cert-3",
			LearnerID:          "2",
			Title:              "Data Science Fundamentals",
			Issuer:             "DataCamp",
			DateIssued:         date(2024, time.June, 10),
			Source:             domain.FileSource("/certificates/cert3.pdf"),
			VerificationStatus: domain.StatusNeedsReview,
			AIScore:            intPtr(68),
			NSQFLevel:          4,
			Metadata: domain.CertificateMetadata{
				FileType:   domain.FileTypePDF,
				UploadDate: date(2024, time.September, 10),
				VerificationSteps: domain.VerificationSteps{
					AIScoring: true,
				},
			},
		},
	}
}

// SeedDemoData inserts the demo records that are missing. Running it again is a no-op.
func SeedDemoData(ctx context.Context, users repository.UserRepository, certs repository.CertificateRepository) (*SeedReport, error) {
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "seed", time.Since(start))
	}()

	report := &SeedReport{}
	for _, u := range DemoUsers() {
		_, err := users.FindByID(ctx, u.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, err
		}
		if err := users.Create(ctx, &u); err != nil {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, err
		}
		report.CreatedUsers++
	}
	for _, c := range DemoCertificates() {
		_, err := certs.FindByID(ctx, c.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrCertificateNotFound) {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, err
		}
		if err := certs.Create(ctx, &c); err != nil {
			observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
			return nil, err
		}
		report.CreatedCertificates++
	}
	report.Noop = report.CreatedUsers == 0 && report.CreatedCertificates == 0
	observability.RecordDatabaseStartupEvent(ctx, "seed", "success")
	return report, nil
}
