package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

// MemoryCertificateRepository keeps certificates in process memory, ordered by
// insertion. It is safe for concurrent use.
type MemoryCertificateRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Certificate
	order   []string
	latency latency
}

func NewMemoryCertificateRepository(simulatedLatency time.Duration) *MemoryCertificateRepository {
	return &MemoryCertificateRepository{
		byID:    map[string]domain.Certificate{},
		latency: latency(simulatedLatency),
	}
}

// Reset drops every stored certificate.
func (r *MemoryCertificateRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = map[string]domain.Certificate{}
	r.order = nil
}

func (r *MemoryCertificateRepository) Create(ctx context.Context, cert *domain.Certificate) error {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "create", "error")
		return err
	}
	now := time.Now().UTC()
	if cert.CreatedAt.IsZero() {
		cert.CreatedAt = now
	}
	cert.UpdatedAt = now

	r.mu.Lock()
	if _, exists := r.byID[cert.ID]; !exists {
		r.order = append(r.order, cert.ID)
	}
	r.byID[cert.ID] = cloneCertificate(*cert)
	r.mu.Unlock()

	observability.RecordRepositoryOperation(ctx, "certificate", "create", "success")
	return nil
}

func (r *MemoryCertificateRepository) FindByID(ctx context.Context, id string) (*domain.Certificate, error) {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "find_by_id", "error")
		return nil, err
	}
	r.mu.RLock()
	cert, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		observability.RecordRepositoryOperation(ctx, "certificate", "find_by_id", "not_found")
		return nil, ErrCertificateNotFound
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "find_by_id", "success")
	out := cloneCertificate(cert)
	return &out, nil
}

func (r *MemoryCertificateRepository) ListByLearner(ctx context.Context, learnerID string, filter CertificateFilter) ([]domain.Certificate, error) {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "list_by_learner", "error")
		return nil, err
	}
	certs := r.collect(func(c domain.Certificate) bool {
		return c.LearnerID == learnerID && filter.Matches(c)
	})
	observability.RecordRepositoryOperation(ctx, "certificate", "list_by_learner", "success")
	return certs, nil
}

func (r *MemoryCertificateRepository) ListAll(ctx context.Context, filter CertificateFilter) ([]domain.Certificate, error) {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "list_all", "error")
		return nil, err
	}
	certs := r.collect(filter.Matches)
	observability.RecordRepositoryOperation(ctx, "certificate", "list_all", "success")
	return certs, nil
}

func (r *MemoryCertificateRepository) collect(keep func(domain.Certificate) bool) []domain.Certificate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Certificate{}
	for _, id := range r.order {
		cert := r.byID[id]
		if keep(cert) {
			out = append(out, cloneCertificate(cert))
		}
	}
	return out
}

func (r *MemoryCertificateRepository) Update(ctx context.Context, id string, update CertificateUpdate) error {
	return r.mutate(ctx, "update", id, update.apply)
}

func (r *MemoryCertificateRepository) ApplyVerification(ctx context.Context, id string, result domain.VerificationResult) error {
	return r.mutate(ctx, "apply_verification", id, result.Apply)
}

func (r *MemoryCertificateRepository) mutate(ctx context.Context, op, id string, fn func(*domain.Certificate)) error {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", op, "error")
		return err
	}
	r.mu.Lock()
	cert, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		observability.RecordRepositoryOperation(ctx, "certificate", op, "not_found")
		return ErrCertificateNotFound
	}
	fn(&cert)
	cert.UpdatedAt = time.Now().UTC()
	r.byID[id] = cert
	r.mu.Unlock()
	observability.RecordRepositoryOperation(ctx, "certificate", op, "success")
	return nil
}

func (r *MemoryCertificateRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "delete_by_id", "error")
		return err
	}
	r.mu.Lock()
	_, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
		for i, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()
	if !ok {
		observability.RecordRepositoryOperation(ctx, "certificate", "delete_by_id", "not_found")
		return nil
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "delete_by_id", "success")
	return nil
}

// cloneCertificate copies the pointer fields so callers never share state with
// the store.
func cloneCertificate(c domain.Certificate) domain.Certificate {
	if c.ExpiryDate != nil {
		expiry := *c.ExpiryDate
		c.ExpiryDate = &expiry
	}
	if c.AIScore != nil {
		score := *c.AIScore
		c.AIScore = &score
	}
	return c
}
