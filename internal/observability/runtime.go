package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/credential-vault-backend/internal/config"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Runtime owns the OTel providers for one process. The meter and tracer
// providers are always set; the logger provider only when OTLP log export is on.
type Runtime struct {
	ServiceName    string
	LoggerProvider *sdklog.LoggerProvider
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
}

// Exporters reports which signals leave the process over OTLP.
func (r *Runtime) Exporters(cfg *config.Config) []string {
	var out []string
	if cfg.OTELTracingEnabled {
		out = append(out, "traces")
	}
	if cfg.OTELMetricsEnabled {
		out = append(out, "metrics")
	}
	if cfg.OTELLogsEnabled && r.LoggerProvider != nil {
		out = append(out, "logs")
	}
	return out
}

func InitRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	r := &Runtime{ServiceName: cfg.OTELServiceName}

	lp, err := InitLogs(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init otel logs: %w", err)
	}
	r.LoggerProvider = lp

	if r.MeterProvider, err = InitMetrics(ctx, cfg, logger); err != nil {
		_ = r.Shutdown(ctx)
		return nil, fmt.Errorf("init otel metrics: %w", err)
	}
	if r.TracerProvider, err = InitTracing(ctx, cfg, logger); err != nil {
		_ = r.Shutdown(ctx)
		return nil, fmt.Errorf("init otel tracing: %w", err)
	}

	exporters := r.Exporters(cfg)
	if len(exporters) == 0 {
		logger.Info("otel export disabled", "service", r.ServiceName)
	} else {
		logger.Info("otel export enabled", "service", r.ServiceName, "signals", exporters, "endpoint", cfg.OTELExporterOTLPEndpoint)
	}
	return r, nil
}

// Shutdown flushes spans first and logs last, so log records emitted while
// the other providers drain still get exported.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.TracerProvider != nil {
		if err := r.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if r.MeterProvider != nil {
		if err := r.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	if r.LoggerProvider != nil {
		if err := r.LoggerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("logger provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
