package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

var ErrCertificateNotFound = errors.New("certificate not found")

type CertificateRepository interface {
	Create(ctx context.Context, cert *domain.Certificate) error
	FindByID(ctx context.Context, id string) (*domain.Certificate, error)
	ListByLearner(ctx context.Context, learnerID string, filter CertificateFilter) ([]domain.Certificate, error)
	ListAll(ctx context.Context, filter CertificateFilter) ([]domain.Certificate, error)
	Update(ctx context.Context, id string, update CertificateUpdate) error
	ApplyVerification(ctx context.Context, id string, result domain.VerificationResult) error
	// DeleteByID succeeds when the certificate is already gone.
	DeleteByID(ctx context.Context, id string) error
}

type GormCertificateRepository struct{ db *gorm.DB }

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &GormCertificateRepository{db: db}
}

func (r *GormCertificateRepository) Create(ctx context.Context, cert *domain.Certificate) error {
	if err := r.db.WithContext(ctx).Create(cert).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "create", "success")
	return nil
}

func (r *GormCertificateRepository) FindByID(ctx context.Context, id string) (*domain.Certificate, error) {
	var cert domain.Certificate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "certificate", "find_by_id", "not_found")
			return nil, ErrCertificateNotFound
		}
		observability.RecordRepositoryOperation(ctx, "certificate", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "find_by_id", "success")
	return &cert, nil
}

func (r *GormCertificateRepository) ListByLearner(ctx context.Context, learnerID string, filter CertificateFilter) ([]domain.Certificate, error) {
	certs, err := r.list(ctx, r.db.WithContext(ctx).Where("learner_id = ?", learnerID), filter)
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "list_by_learner", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "list_by_learner", "success")
	return certs, nil
}

func (r *GormCertificateRepository) ListAll(ctx context.Context, filter CertificateFilter) ([]domain.Certificate, error) {
	certs, err := r.list(ctx, r.db.WithContext(ctx), filter)
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "list_all", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "list_all", "success")
	return certs, nil
}

func (r *GormCertificateRepository) list(_ context.Context, q *gorm.DB, filter CertificateFilter) ([]domain.Certificate, error) {
	q = q.Model(&domain.Certificate{})
	if filter.Status != "" {
		q = q.Where("verification_status = ?", filter.Status)
	}
	if filter.NSQFLevel != 0 {
		q = q.Where("nsqf_level = ?", filter.NSQFLevel)
	}
	if filter.Query != "" {
		pattern := containsPattern(filter.Query)
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(issuer) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	certs := []domain.Certificate{}
	if err := q.Order("created_at asc, id asc").Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *GormCertificateRepository) Update(ctx context.Context, id string, update CertificateUpdate) error {
	res := r.db.WithContext(ctx).Model(&domain.Certificate{}).Where("id = ?", id).Updates(update.columns())
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "certificate", "update", "not_found")
		return ErrCertificateNotFound
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "update", "success")
	return nil
}

func (r *GormCertificateRepository) ApplyVerification(ctx context.Context, id string, result domain.VerificationResult) error {
	res := r.db.WithContext(ctx).Model(&domain.Certificate{}).Where("id = ?", id).Updates(verificationColumns(result))
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "apply_verification", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "certificate", "apply_verification", "not_found")
		return ErrCertificateNotFound
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "apply_verification", "success")
	return nil
}

func (r *GormCertificateRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Certificate{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "certificate", "delete_by_id", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "certificate", "delete_by_id", "not_found")
		return nil
	}
	observability.RecordRepositoryOperation(ctx, "certificate", "delete_by_id", "success")
	return nil
}
