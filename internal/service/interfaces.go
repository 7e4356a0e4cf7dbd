package service

import (
	"context"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

//go:generate mockgen -source=interfaces.go -destination=gomock/interfaces_mock.go -package=gomock

type CertificateService interface {
	Create(ctx context.Context, input CreateCertificateInput) (*domain.Certificate, error)
	GetByID(ctx context.Context, id string) (*domain.Certificate, error)
	ListByLearner(ctx context.Context, learnerID string, filter repository.CertificateFilter) ([]domain.Certificate, error)
	ListAll(ctx context.Context, filter repository.CertificateFilter) ([]domain.Certificate, error)
	Update(ctx context.Context, id string, input UpdateCertificateInput) (*domain.Certificate, error)
	DeleteByID(ctx context.Context, id string) error
	StatsForLearner(ctx context.Context, learnerID string) (domain.CertificateStats, error)
}

type VerificationService interface {
	RequestManualVerification(ctx context.Context, input RequestVerificationInput) (*domain.VerificationRequest, error)
	ListRequests(ctx context.Context, certificateID string) ([]domain.VerificationRequest, error)
	Classify(ctx context.Context, signals verification.Signals) (ClassificationResult, error)
}

type LearnerSearchService interface {
	Search(ctx context.Context, query string) ([]domain.User, error)
}
