package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

var ErrInvalidSignals = errors.New("invalid verification signals")

type RequestVerificationInput struct {
	CertificateID string `validate:"required"`
	EmployerID    string `validate:"required,max=64"`
}

// ClassificationResult is the outcome of evaluating caller-supplied signals.
// Nothing is persisted.
type ClassificationResult struct {
	Status  domain.VerificationStatus `json:"status"`
	Signals verification.Signals      `json:"signals"`
}

type VerificationServiceImpl struct {
	certificates repository.CertificateRepository
	requests     repository.VerificationRequestRepository
	now          func() time.Time
}

func NewVerificationService(certificates repository.CertificateRepository, requests repository.VerificationRequestRepository) *VerificationServiceImpl {
	return &VerificationServiceImpl{certificates: certificates, requests: requests, now: time.Now}
}

// RequestManualVerification records an employer's request for a manual check.
// The request stays pending; nothing in this service resolves it.
func (s *VerificationServiceImpl) RequestManualVerification(ctx context.Context, input RequestVerificationInput) (*domain.VerificationRequest, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		observability.RecordCertificateOperation(ctx, "request_verification", outcome, time.Since(start))
	}()

	input.CertificateID = strings.TrimSpace(input.CertificateID)
	input.EmployerID = strings.TrimSpace(input.EmployerID)
	if err := validate.Struct(input); err != nil {
		outcome = "bad_request"
		return nil, validationError(ErrInvalidVerificationInput, err)
	}
	if _, err := s.certificates.FindByID(ctx, input.CertificateID); err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}

	req := &domain.VerificationRequest{
		ID:            uuid.NewString(),
		CertificateID: input.CertificateID,
		EmployerID:    input.EmployerID,
		Status:        domain.RequestPending,
		RequestDate:   s.now().UTC(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		outcome = "error"
		return nil, err
	}
	return req, nil
}

func (s *VerificationServiceImpl) ListRequests(ctx context.Context, certificateID string) ([]domain.VerificationRequest, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		observability.RecordCertificateOperation(ctx, "list_verification_requests", outcome, time.Since(start))
	}()

	if _, err := s.certificates.FindByID(ctx, certificateID); err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}
	reqs, err := s.requests.ListByCertificate(ctx, certificateID)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return reqs, nil
}

// Classify evaluates the decision rule for the given signals.
// Nothing is persisted, so the outcome is recorded as a "classify" operation
// and stays out of the stored verification outcome counts.
func (s *VerificationServiceImpl) Classify(ctx context.Context, signals verification.Signals) (ClassificationResult, error) {
	start := time.Now()
	if err := signals.Validate(); err != nil {
		observability.RecordCertificateOperation(ctx, "classify", "bad_request", time.Since(start))
		return ClassificationResult{}, errors.Join(ErrInvalidSignals, err)
	}
	normalized := signals.Normalize()
	status := verification.Decide(normalized)
	observability.RecordCertificateOperation(ctx, "classify", "success", time.Since(start))
	return ClassificationResult{Status: status, Signals: normalized}, nil
}
