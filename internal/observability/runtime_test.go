package observability

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sandeepkv93/credential-vault-backend/internal/config"
)

func TestRuntimeShutdownNilAndEmpty(t *testing.T) {
	var r *Runtime
	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil runtime shutdown: %v", err)
	}
	if err := (&Runtime{}).Shutdown(context.Background()); err != nil {
		t.Fatalf("empty runtime shutdown: %v", err)
	}
}

func TestInitRuntimeAllDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := InitRuntime(context.Background(), &config.Config{}, logger)
	if err != nil {
		t.Fatalf("init runtime disabled: %v", err)
	}
	if r.LoggerProvider != nil {
		t.Fatal("expected no logger provider when otel logs are disabled")
	}
	if r.MeterProvider == nil || r.TracerProvider == nil {
		t.Fatalf("expected meter and tracer providers, got %+v", r)
	}
	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("runtime shutdown: %v", err)
	}
}

func TestInitTracingDisabledStillProvidesSpans(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tp, err := InitTracing(context.Background(), &config.Config{}, logger)
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "certificate.classify")
	defer span.End()
	if ctx == nil || span == nil {
		t.Fatal("expected span and context")
	}
}

func TestRuntimeExportersFollowConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{OTELServiceName: "credential-vault-test"}
	r, err := InitRuntime(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("init runtime: %v", err)
	}
	defer func() { _ = r.Shutdown(context.Background()) }()

	if r.ServiceName != "credential-vault-test" {
		t.Fatalf("expected service name to be carried, got %q", r.ServiceName)
	}
	if got := r.Exporters(cfg); len(got) != 0 {
		t.Fatalf("expected no exporters, got %v", got)
	}
	enabled := &config.Config{OTELTracingEnabled: true, OTELMetricsEnabled: true, OTELLogsEnabled: true}
	if got := r.Exporters(enabled); len(got) != 2 || got[0] != "traces" || got[1] != "metrics" {
		t.Fatalf("expected logs omitted without a logger provider, got %v", got)
	}
}
