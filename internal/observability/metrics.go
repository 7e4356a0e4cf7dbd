package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/credential-vault-backend/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/exemplar"
)

const meterName = "credential-vault-backend"

type AppMetrics struct {
	certificateOperationCounter  metric.Int64Counter
	certificateOperationDuration metric.Float64Histogram
	verificationOutcomeCounter   metric.Int64Counter
	learnerSearchCounter         metric.Int64Counter
	learnerSearchResults         metric.Float64Histogram
	learnerSearchDuration        metric.Float64Histogram
	certificateListCacheCounter  metric.Int64Counter
	repositoryOpsCounter         metric.Int64Counter
	evidenceUploadCounter        metric.Int64Counter
	evidenceUploadSize           metric.Float64Histogram
	expiryScanCounter            metric.Int64Counter
	expiryScanCertificates       metric.Float64Histogram
	healthCheckResultCounter     metric.Int64Counter
	healthCheckDuration          metric.Float64Histogram
	databaseStartupCounter       metric.Int64Counter
	databaseStartupDuration      metric.Float64Histogram
	toolCommandRuns              metric.Int64Counter
	toolCommandDuration          metric.Float64Histogram
	middlewareValidationCounter  metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := serviceResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		sdkmetric.WithExemplarFilter(exemplar.TraceBasedFilter),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "certificate.operation.duration"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
				},
			},
		)),
	)
	otel.SetMeterProvider(mp)

	if err := UseMeter(mp.Meter(meterName)); err != nil {
		return nil, err
	}

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

// UseMeter installs the application instruments on meter, replacing any set
// installed before. A nil meter turns every Record helper back into a no-op.
func UseMeter(meter metric.Meter) error {
	var m *AppMetrics
	if meter != nil {
		var err error
		if m, err = newAppMetrics(meter); err != nil {
			return err
		}
	}
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()
	return nil
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var firstErr error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return c
	}
	hist := func(name, unit, desc string) metric.Float64Histogram {
		opts := []metric.Float64HistogramOption{metric.WithDescription(desc)}
		if unit != "" {
			opts = append(opts, metric.WithUnit(unit))
		}
		h, err := meter.Float64Histogram(name, opts...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return h
	}

	m := &AppMetrics{
		certificateOperationCounter:  counter("certificate.operation.events", "Certificate service operations by outcome"),
		certificateOperationDuration: hist("certificate.operation.duration", "s", "Duration of certificate service operations in seconds"),
		verificationOutcomeCounter:   counter("verification.outcomes", "Classification outcomes by status"),
		learnerSearchCounter:         counter("learner.search.events", "Learner search requests by outcome"),
		learnerSearchResults:         hist("learner.search.results", "", "Number of learners returned per search"),
		learnerSearchDuration:        hist("learner.search.duration", "s", "Duration of learner searches in seconds"),
		certificateListCacheCounter:  counter("certificate.list.cache.events", "Learner certificate list cache events"),
		repositoryOpsCounter:         counter("repository.operations", "Repository operations by entity and outcome"),
		evidenceUploadCounter:        counter("evidence.upload.events", "Evidence file uploads by outcome"),
		evidenceUploadSize:           hist("evidence.upload.size", "By", "Declared size of uploaded evidence files"),
		expiryScanCounter:            counter("expiry.scan.runs", "Scheduled expiry scan runs by outcome"),
		expiryScanCertificates:       hist("expiry.scan.certificates", "", "Certificates found per expiry state in a scan"),
		healthCheckResultCounter:     counter("health.check.results", "Health dependency check results"),
		healthCheckDuration:          hist("health.check.duration", "s", "Duration of health dependency checks in seconds"),
		databaseStartupCounter:       counter("database.startup.events", "Database startup phase results"),
		databaseStartupDuration:      hist("database.startup.duration", "s", "Duration of database startup phases in seconds"),
		toolCommandRuns:              counter("tool.command.runs", "CLI tool command runs by outcome"),
		toolCommandDuration:          hist("tool.command.duration", "s", "Duration of CLI tool commands in seconds"),
		middlewareValidationCounter:  counter("middleware.validation.events", "Request rejections and decisions made by HTTP middleware"),
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return m, nil
}

func currentMetrics() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

func RecordCertificateOperation(ctx context.Context, operation, outcome string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.certificateOperationCounter.Add(ctx, 1, attrs)
	m.certificateOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

func RecordVerificationOutcome(ctx context.Context, status string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.verificationOutcomeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func RecordLearnerSearch(ctx context.Context, outcome string, results int, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.learnerSearchCounter.Add(ctx, 1, attrs)
	m.learnerSearchResults.Record(ctx, float64(results), attrs)
	m.learnerSearchDuration.Record(ctx, duration.Seconds(), attrs)
}

func RecordCertificateListCacheEvent(ctx context.Context, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.certificateListCacheCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.repositoryOpsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordEvidenceUpload(ctx context.Context, outcome string, size int64) {
	m := currentMetrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.evidenceUploadCounter.Add(ctx, 1, attrs)
	if size > 0 {
		m.evidenceUploadSize.Record(ctx, float64(size), attrs)
	}
}

func RecordExpiryScan(ctx context.Context, outcome string, expiring, expired int) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.expiryScanCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if outcome != "success" {
		return
	}
	m.expiryScanCertificates.Record(ctx, float64(expiring), metric.WithAttributes(attribute.String("state", "expiring")))
	m.expiryScanCertificates.Record(ctx, float64(expired), metric.WithAttributes(attribute.String("state", "expired")))
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.healthCheckResultCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckDuration(ctx context.Context, check string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.healthCheckDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("check", check),
	))
}

func RecordDatabaseStartupEvent(ctx context.Context, phase, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.databaseStartupCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("phase", phase),
		attribute.String("outcome", outcome),
	))
}

func RecordDatabaseStartupDuration(ctx context.Context, phase string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.databaseStartupDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("phase", phase),
	))
}

func RecordToolCommandRun(ctx context.Context, tool, command, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.toolCommandRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
}

func RecordToolCommandDuration(ctx context.Context, tool, command, outcome string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.toolCommandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
}

func RecordMiddlewareValidationEvent(ctx context.Context, middleware, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.middlewareValidationCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("middleware", middleware),
		attribute.String("outcome", outcome),
	))
}
