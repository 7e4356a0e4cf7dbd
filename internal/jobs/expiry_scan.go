package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
)

type ExpiryScanReport struct {
	Scanned   int       `json:"scanned"`
	Expiring  int       `json:"expiring"`
	Expired   int       `json:"expired"`
	ScannedAt time.Time `json:"scanned_at"`
}

// ExpiryScanner counts certificates that are expired or inside the expiry
// warning window. It reads only; certificates are never modified.
type ExpiryScanner struct {
	certificates repository.CertificateRepository
	logger       *slog.Logger
	now          func() time.Time
}

func NewExpiryScanner(certificates repository.CertificateRepository, logger *slog.Logger) *ExpiryScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpiryScanner{certificates: certificates, logger: logger, now: time.Now}
}

func (s *ExpiryScanner) Run(ctx context.Context) (ExpiryScanReport, error) {
	report := ExpiryScanReport{ScannedAt: s.now().UTC()}
	certs, err := s.certificates.ListAll(ctx, repository.CertificateFilter{})
	if err != nil {
		observability.RecordExpiryScan(ctx, "error", 0, 0)
		return report, fmt.Errorf("list certificates: %w", err)
	}
	report.Scanned = len(certs)
	for _, c := range certs {
		switch domain.ExpiryStatusAt(c, report.ScannedAt).Status {
		case domain.ExpiryExpiring:
			report.Expiring++
		case domain.ExpiryExpired:
			report.Expired++
		}
	}
	observability.RecordExpiryScan(ctx, "success", report.Expiring, report.Expired)
	s.logger.InfoContext(ctx, "expiry scan completed",
		"scanned", report.Scanned,
		"expiring", report.Expiring,
		"expired", report.Expired,
	)
	return report, nil
}
