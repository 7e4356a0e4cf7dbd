package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/sandeepkv93/credential-vault-backend/internal/database"
	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

func TestPlanSeedReportsMissingThenExisting(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository(0)
	certs := repository.NewMemoryCertificateRepository(0)

	details, err := planSeed(ctx, users, certs)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := len(database.DemoUsers()) + len(database.DemoCertificates())
	if len(details) != want {
		t.Fatalf("expected %d plan lines, got %d", want, len(details))
	}
	for _, d := range details {
		if !strings.HasPrefix(d, "would create") {
			t.Fatalf("expected only creations on empty store, got %q", d)
		}
	}

	if _, err := database.SeedDemoData(ctx, users, certs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	details, err = planSeed(ctx, users, certs)
	if err != nil {
		t.Fatalf("plan after seed: %v", err)
	}
	for _, d := range details {
		if strings.HasPrefix(d, "would create") {
			t.Fatalf("expected nothing to create after seed, got %q", d)
		}
	}
}

func TestSimulateIsReproducibleAndNeverPending(t *testing.T) {
	ctx := context.Background()
	probs := verification.DefaultProbabilities()

	a, err := simulate(ctx, probs, 500, 7, 11)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := simulate(ctx, probs, 500, 7, 11)
	if err != nil {
		t.Fatalf("simulate again: %v", err)
	}
	total := 0
	for status, n := range a.ByStatus {
		if status == domain.StatusPending {
			t.Fatal("classification must never settle on pending")
		}
		if b.ByStatus[status] != n {
			t.Fatalf("status %s differs between seeded runs: %d vs %d", status, n, b.ByStatus[status])
		}
		total += n
	}
	if total != 500 {
		t.Fatalf("expected 500 classifications, got %d", total)
	}
	if a.Hashed == 0 || a.Hashed != b.Hashed {
		t.Fatalf("unexpected hash counts: %d vs %d", a.Hashed, b.Hashed)
	}
	if lines := a.lines(); len(lines) < 3 || lines[0] != "runs: 500" {
		t.Fatalf("unexpected report lines: %v", lines)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	if _, err := simulate(context.Background(), verification.DefaultProbabilities(), 0, 1, 2); err == nil {
		t.Fatal("expected error for zero runs")
	}
	if _, err := simulate(context.Background(), verification.Probabilities{QRCode: 2}, 10, 1, 2); err == nil {
		t.Fatal("expected error for invalid probability")
	}
}
