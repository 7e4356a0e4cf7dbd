package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

type VerificationRequestRepository interface {
	Create(ctx context.Context, req *domain.VerificationRequest) error
	ListByCertificate(ctx context.Context, certificateID string) ([]domain.VerificationRequest, error)
}

type GormVerificationRequestRepository struct{ db *gorm.DB }

func NewVerificationRequestRepository(db *gorm.DB) VerificationRequestRepository {
	return &GormVerificationRequestRepository{db: db}
}

func (r *GormVerificationRequestRepository) Create(ctx context.Context, req *domain.VerificationRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "verification_request", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "verification_request", "create", "success")
	return nil
}

func (r *GormVerificationRequestRepository) ListByCertificate(ctx context.Context, certificateID string) ([]domain.VerificationRequest, error) {
	reqs := []domain.VerificationRequest{}
	err := r.db.WithContext(ctx).
		Where("certificate_id = ?", certificateID).
		Order("request_date asc, id asc").
		Find(&reqs).Error
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "verification_request", "list_by_certificate", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "verification_request", "list_by_certificate", "success")
	return reqs, nil
}

type MemoryVerificationRequestRepository struct {
	mu      sync.RWMutex
	items   []domain.VerificationRequest
	latency latency
}

func NewMemoryVerificationRequestRepository(simulatedLatency time.Duration) *MemoryVerificationRequestRepository {
	return &MemoryVerificationRequestRepository{latency: latency(simulatedLatency)}
}

func (r *MemoryVerificationRequestRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

func (r *MemoryVerificationRequestRepository) Create(ctx context.Context, req *domain.VerificationRequest) error {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "verification_request", "create", "error")
		return err
	}
	r.mu.Lock()
	r.items = append(r.items, *req)
	r.mu.Unlock()
	observability.RecordRepositoryOperation(ctx, "verification_request", "create", "success")
	return nil
}

func (r *MemoryVerificationRequestRepository) ListByCertificate(ctx context.Context, certificateID string) ([]domain.VerificationRequest, error) {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "verification_request", "list_by_certificate", "error")
		return nil, err
	}
	r.mu.RLock()
	out := []domain.VerificationRequest{}
	for _, req := range r.items {
		if req.CertificateID == certificateID {
			out = append(out, req)
		}
	}
	r.mu.RUnlock()
	observability.RecordRepositoryOperation(ctx, "verification_request", "list_by_certificate", "success")
	return out, nil
}
