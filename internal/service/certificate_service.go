package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
)

type CreateCertificateInput struct {
	LearnerID  string    `validate:"required,max=64"`
	Title      string    `validate:"required,max=255"`
	Issuer     string    `validate:"required,max=255"`
	DateIssued time.Time `validate:"required"`
	ExpiryDate *time.Time
	FileURL    string `validate:"max=1024"`
	LinkURL    string `validate:"max=1024"`
	NSQFLevel  int    `validate:"min=1,max=10"`
}

type UpdateCertificateInput struct {
	Title           *string    `validate:"omitnil,min=1,max=255"`
	Issuer          *string    `validate:"omitnil,min=1,max=255"`
	DateIssued      *time.Time `validate:"omitnil"`
	ExpiryDate      *time.Time `validate:"omitnil"`
	ClearExpiryDate bool
	NSQFLevel       *int `validate:"omitnil,min=1,max=10"`
}

// CertificateClassifier assigns a terminal verification outcome to a freshly
// stored certificate.
type CertificateClassifier interface {
	Classify(ctx context.Context, cert domain.Certificate) (domain.VerificationResult, error)
}

type CertificateServiceImpl struct {
	repo       repository.CertificateRepository
	classifier CertificateClassifier
	cache      CertificateListCacheStore
	evidence   EvidenceStorage
	cacheTTL   time.Duration
	fills      singleflight.Group
	now        func() time.Time
	logger     *slog.Logger
}

func NewCertificateService(
	repo repository.CertificateRepository,
	classifier CertificateClassifier,
	cache CertificateListCacheStore,
	evidence EvidenceStorage,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *CertificateServiceImpl {
	if cache == nil {
		cache = NewNoopCertificateListCacheStore()
	}
	if evidence == nil {
		evidence = DisabledEvidenceStorage{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CertificateServiceImpl{
		repo:       repo,
		classifier: classifier,
		cache:      cache,
		evidence:   evidence,
		cacheTTL:   cacheTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// Create stores a pending certificate, classifies it and returns the settled
// record. A certificate whose classification fails is removed again.
func (s *CertificateServiceImpl) Create(ctx context.Context, input CreateCertificateInput) (*domain.Certificate, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "create", outcome, time.Since(start)) }()

	input.LearnerID = strings.TrimSpace(input.LearnerID)
	input.Title = strings.TrimSpace(input.Title)
	input.Issuer = strings.TrimSpace(input.Issuer)
	input.FileURL = strings.TrimSpace(input.FileURL)
	input.LinkURL = strings.TrimSpace(input.LinkURL)
	if err := validate.Struct(input); err != nil {
		outcome = "bad_request"
		return nil, validationError(ErrInvalidCertificateInput, err)
	}
	if input.FileURL != "" && input.LinkURL != "" {
		outcome = "bad_request"
		return nil, ErrCertificateSourceConflict
	}

	now := s.now().UTC()
	cert := &domain.Certificate{
		ID:                 uuid.NewString(),
		LearnerID:          input.LearnerID,
		Title:              input.Title,
		Issuer:             input.Issuer,
		DateIssued:         domain.CalendarDate(input.DateIssued),
		VerificationStatus: domain.StatusPending,
		NSQFLevel:          input.NSQFLevel,
		Metadata:           domain.CertificateMetadata{UploadDate: now},
		CreatedAt:          now,
	}
	if input.ExpiryDate != nil {
		expiry := domain.CalendarDate(*input.ExpiryDate)
		cert.ExpiryDate = &expiry
	}
	switch {
	case input.FileURL != "":
		cert.Source = domain.FileSource(input.FileURL)
		cert.Metadata.FileType = domain.FileTypePDF
	case input.LinkURL != "":
		cert.Source = domain.LinkSource(input.LinkURL)
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		outcome = "error"
		return nil, err
	}

	classifyCtx, span := observability.StartSpan(ctx, "certificate.classify", attribute.String("certificate.id", cert.ID))
	result, err := s.classifier.Classify(classifyCtx, *cert)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
	} else {
		span.SetAttributes(attribute.String("verification.status", string(result.Status)))
	}
	span.End()
	if err != nil {
		outcome = "error"
		s.rollbackCreate(ctx, cert)
		return nil, fmt.Errorf("classify certificate: %w", err)
	}
	if err := s.repo.ApplyVerification(ctx, cert.ID, result); err != nil {
		outcome = "error"
		s.rollbackCreate(ctx, cert)
		return nil, fmt.Errorf("store verification result: %w", err)
	}
	observability.RecordVerificationOutcome(ctx, string(result.Status))
	s.invalidateLearner(ctx, cert.LearnerID)

	stored, err := s.repo.FindByID(ctx, cert.ID)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return stored, nil
}

// rollbackCreate removes a certificate that never settled. Listings read while
// it was pending are dropped with it.
func (s *CertificateServiceImpl) rollbackCreate(ctx context.Context, cert *domain.Certificate) {
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.DeleteByID(ctx, cert.ID); err != nil {
		s.logger.ErrorContext(ctx, "certificate create rollback failed",
			"component", "certificate_service",
			"certificate_id", cert.ID,
			"error", err,
		)
	}
	s.invalidateLearner(ctx, cert.LearnerID)
}

func (s *CertificateServiceImpl) GetByID(ctx context.Context, id string) (*domain.Certificate, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "get", outcome, time.Since(start)) }()

	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}
	return cert, nil
}

// ListByLearner returns the learner's certificates in insertion order. Results
// are served from the list cache when one is configured.
func (s *CertificateServiceImpl) ListByLearner(ctx context.Context, learnerID string, filter repository.CertificateFilter) ([]domain.Certificate, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "list_by_learner", outcome, time.Since(start)) }()

	namespace := learnerCacheNamespace(learnerID)
	key := filterCacheKey(filter)
	if payload, ok, err := s.cache.Get(ctx, namespace, key); err != nil {
		observability.RecordCertificateListCacheEvent(ctx, "error")
		s.logger.WarnContext(ctx, "certificate list cache read failed", "component", "certificate_service", "error", err)
	} else if ok {
		var certs []domain.Certificate
		if err := json.Unmarshal(payload, &certs); err == nil {
			observability.RecordCertificateListCacheEvent(ctx, "hit")
			return certs, nil
		}
		observability.RecordCertificateListCacheEvent(ctx, "decode_error")
	} else {
		observability.RecordCertificateListCacheEvent(ctx, "miss")
	}

	// The generation is read before the store so a write landing during the
	// fill makes the cache refuse it. Fills are only shared within a generation.
	generation, genErr := s.cache.Generation(ctx, namespace)
	if genErr != nil {
		s.logger.WarnContext(ctx, "certificate list cache generation read failed", "component", "certificate_service", "error", genErr)
	}
	fillKey := namespace + "|" + key + "|" + strconv.FormatUint(generation, 10)
	v, err, _ := s.fills.Do(fillKey, func() (any, error) {
		certs, err := s.repo.ListByLearner(ctx, learnerID, filter)
		if err != nil {
			return nil, err
		}
		if genErr != nil {
			return certs, nil
		}
		if payload, err := json.Marshal(certs); err == nil {
			if err := s.cache.Set(ctx, namespace, key, generation, payload, s.cacheTTL); err != nil {
				s.logger.WarnContext(ctx, "certificate list cache write failed", "component", "certificate_service", "error", err)
			}
		}
		return certs, nil
	})
	if err != nil {
		outcome = "error"
		return nil, err
	}
	shared := v.([]domain.Certificate)
	return append([]domain.Certificate(nil), shared...), nil
}

func (s *CertificateServiceImpl) ListAll(ctx context.Context, filter repository.CertificateFilter) ([]domain.Certificate, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "list_all", outcome, time.Since(start)) }()

	certs, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return certs, nil
}

// Update changes the user-editable fields only. Verification fields are never
// touched and the certificate is not re-classified.
func (s *CertificateServiceImpl) Update(ctx context.Context, id string, input UpdateCertificateInput) (*domain.Certificate, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "update", outcome, time.Since(start)) }()

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		input.Title = &title
	}
	if input.Issuer != nil {
		issuer := strings.TrimSpace(*input.Issuer)
		input.Issuer = &issuer
	}
	if err := validate.Struct(input); err != nil {
		outcome = "bad_request"
		return nil, validationError(ErrInvalidCertificateInput, err)
	}

	update := repository.CertificateUpdate{
		Title:           input.Title,
		Issuer:          input.Issuer,
		ClearExpiryDate: input.ClearExpiryDate,
		NSQFLevel:       input.NSQFLevel,
	}
	if input.DateIssued != nil {
		issued := domain.CalendarDate(*input.DateIssued)
		update.DateIssued = &issued
	}
	if input.ExpiryDate != nil && !input.ClearExpiryDate {
		expiry := domain.CalendarDate(*input.ExpiryDate)
		update.ExpiryDate = &expiry
	}
	if update.IsEmpty() {
		outcome = "bad_request"
		return nil, ErrNoCertificateUpdates
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	s.invalidateLearner(ctx, cert.LearnerID)
	return cert, nil
}

// DeleteByID removes the certificate. Deleting an unknown id succeeds.
func (s *CertificateServiceImpl) DeleteByID(ctx context.Context, id string) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "delete", outcome, time.Since(start)) }()

	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			outcome = "noop"
			return nil
		}
		outcome = "error"
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		outcome = "error"
		return err
	}
	s.invalidateLearner(ctx, cert.LearnerID)
	s.removeEvidence(ctx, cert)
	return nil
}

// removeEvidence deletes the uploaded file behind a file-sourced certificate.
// Failures are logged only; the certificate is already gone.
func (s *CertificateServiceImpl) removeEvidence(ctx context.Context, cert *domain.Certificate) {
	if cert.Source.Kind != domain.SourceFile || !IsEvidenceObjectKey(cert.Source.URL) {
		return
	}
	err := s.evidence.DeleteEvidence(ctx, cert.LearnerID, cert.Source.URL)
	if err == nil || errors.Is(err, ErrStorageDisabled) {
		return
	}
	s.logger.WarnContext(ctx, "certificate evidence delete failed",
		"component", "certificate_service",
		"certificate_id", cert.ID,
		"object_key", cert.Source.URL,
		"error", err,
	)
}

func (s *CertificateServiceImpl) StatsForLearner(ctx context.Context, learnerID string) (domain.CertificateStats, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordCertificateOperation(ctx, "stats", outcome, time.Since(start)) }()

	certs, err := s.repo.ListByLearner(ctx, learnerID, repository.CertificateFilter{})
	if err != nil {
		outcome = "error"
		return domain.CertificateStats{}, err
	}
	return domain.SummarizeCertificates(certs, s.now()), nil
}

func (s *CertificateServiceImpl) invalidateLearner(ctx context.Context, learnerID string) {
	if err := s.cache.InvalidateNamespace(ctx, learnerCacheNamespace(learnerID)); err != nil {
		observability.RecordCertificateListCacheEvent(ctx, "invalidate_error")
		s.logger.WarnContext(ctx, "certificate list cache invalidation failed",
			"component", "certificate_service",
			"learner_id", learnerID,
			"error", err,
		)
		return
	}
	observability.RecordCertificateListCacheEvent(ctx, "invalidate")
}

func learnerCacheNamespace(learnerID string) string {
	return "learner:" + learnerID
}

func filterCacheKey(f repository.CertificateFilter) string {
	return strings.Join([]string{
		"status=" + string(f.Status),
		"level=" + strconv.Itoa(f.NSQFLevel),
		"q=" + strings.ToLower(strings.TrimSpace(f.Query)),
	}, "&")
}
