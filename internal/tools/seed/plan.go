package seed

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sandeepkv93/credential-vault-backend/internal/database"
	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

// planSeed lists the demo records SeedDemoData would insert without writing.
func planSeed(ctx context.Context, users repository.UserRepository, certs repository.CertificateRepository) ([]string, error) {
	var details []string
	for _, u := range database.DemoUsers() {
		_, err := users.FindByID(ctx, u.ID)
		switch {
		case err == nil:
			details = append(details, fmt.Sprintf("user %s (%s) exists", u.ID, u.Email))
		case errors.Is(err, repository.ErrUserNotFound):
			details = append(details, fmt.Sprintf("would create %s user %s (%s)", u.Role, u.ID, u.Email))
		default:
			return nil, err
		}
	}
	for _, c := range database.DemoCertificates() {
		_, err := certs.FindByID(ctx, c.ID)
		switch {
		case err == nil:
			details = append(details, fmt.Sprintf("certificate %s exists", c.ID))
		case errors.Is(err, repository.ErrCertificateNotFound):
			details = append(details, fmt.Sprintf("would create certificate %s %q [%s]", c.ID, c.Title, c.VerificationStatus))
		default:
			return nil, err
		}
	}
	return details, nil
}

type simulationReport struct {
	Runs     int
	ByStatus map[domain.VerificationStatus]int
	Hashed   int
}

func (r simulationReport) lines() []string {
	statuses := make([]string, 0, len(r.ByStatus))
	for s := range r.ByStatus {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	out := []string{fmt.Sprintf("runs: %d", r.Runs)}
	for _, s := range statuses {
		n := r.ByStatus[domain.VerificationStatus(s)]
		out = append(out, fmt.Sprintf("%s: %d (%.1f%%)", s, n, 100*float64(n)/float64(r.Runs)))
	}
	out = append(out, fmt.Sprintf("with blockchain hash: %d", r.Hashed))
	return out
}

// simulate classifies runs synthetic certificates with a seeded evidence
// provider so the same seeds give the same distribution.
func simulate(ctx context.Context, probs verification.Probabilities, runs int, seed1, seed2 uint64) (simulationReport, error) {
	if runs <= 0 {
		return simulationReport{}, errors.New("runs must be > 0")
	}
	provider, err := verification.NewSeededEvidenceProvider(probs, seed1, seed2)
	if err != nil {
		return simulationReport{}, err
	}
	classifier := verification.NewClassifier(provider)
	report := simulationReport{Runs: runs, ByStatus: map[domain.VerificationStatus]int{}}
	for i := 0; i < runs; i++ {
		res, err := classifier.Classify(ctx, domain.Certificate{ID: fmt.Sprintf("sim-%d", i)})
		if err != nil {
			return simulationReport{}, err
		}
		report.ByStatus[res.Status]++
		if res.BlockchainHash != "" {
			report.Hashed++
		}
	}
	return report, nil
}
