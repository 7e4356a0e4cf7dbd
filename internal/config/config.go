package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env      string
	HTTPPort string

	StoreDriver           string
	DatabaseURL           string
	SQLitePath            string
	StoreSimulatedLatency time.Duration
	StoreSeedDemoData     bool

	CORSAllowedOrigins  []string
	MaxRequestBodyBytes int64

	RateLimitEnabled         bool
	RateLimitWritesPerMinute int
	RateLimitFailOpen        bool

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CertListCacheEnabled bool
	CertListCacheTTL     time.Duration
	CertListCachePrefix  string

	StorageEnabled  bool
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIOUseSSL     bool
	MaxEvidenceSize int64

	VerificationQRProbability         float64
	VerificationBlockchainProbability float64
	VerificationAPIProbability        float64

	ExpiryScanEnabled  bool
	ExpiryScanSchedule string

	ReadinessProbeTimeout        time.Duration
	ShutdownTimeout              time.Duration
	ShutdownHTTPDrainTimeout     time.Duration
	ShutdownObservabilityTimeout time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsExportInterval time.Duration
	OTELTraceSamplingRatio    float64
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	OTELLogLevel              string
}

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	cfg := &Config{
		Env:               env,
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getEnv("SQLITE_PATH", "credential-vault.db"),
		StoreSeedDemoData: getEnvBool("STORE_SEED_DEMO_DATA", isLocalLikeEnv(env)),

		CORSAllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		MaxRequestBodyBytes: int64(getEnvInt("HTTP_MAX_BODY_BYTES", 1<<20)),

		RateLimitEnabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWritesPerMinute: getEnvInt("RATE_LIMIT_WRITES_PER_MIN", 60),
		RateLimitFailOpen:        getEnvBool("RATE_LIMIT_FAIL_OPEN", true),

		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CertListCacheEnabled: getEnvBool("CERT_LIST_CACHE_ENABLED", false),
		CertListCachePrefix:  getEnv("CERT_LIST_CACHE_PREFIX", "cert_list_cache"),

		StorageEnabled:  getEnvBool("STORAGE_ENABLED", false),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:     getEnv("MINIO_BUCKET", "certificates"),
		MinIOUseSSL:     getEnvBool("MINIO_USE_SSL", false),
		MaxEvidenceSize: int64(getEnvInt("MAX_EVIDENCE_SIZE_BYTES", 10<<20)),

		VerificationQRProbability:         getEnvFloat("VERIFICATION_QR_PROBABILITY", 0.5),
		VerificationBlockchainProbability: getEnvFloat("VERIFICATION_BLOCKCHAIN_PROBABILITY", 0.7),
		VerificationAPIProbability:        getEnvFloat("VERIFICATION_API_PROBABILITY", 0.6),

		ExpiryScanEnabled:  getEnvBool("EXPIRY_SCAN_ENABLED", true),
		ExpiryScanSchedule: getEnv("EXPIRY_SCAN_SCHEDULE", "@daily"),

		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "credential-vault-backend"),
		OTELEnvironment:          getEnv("OTEL_ENVIRONMENT", env),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELTraceSamplingRatio:   getEnvFloat("OTEL_TRACE_SAMPLING_RATIO", 1.0),
		OTELMetricsEnabled:       getEnvBool("OTEL_METRICS_ENABLED", false),
		OTELTracingEnabled:       getEnvBool("OTEL_TRACING_ENABLED", false),
		OTELLogsEnabled:          getEnvBool("OTEL_LOGS_ENABLED", false),
		OTELLogLevel:             strings.ToLower(getEnv("OTEL_LOG_LEVEL", "info")),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"STORE_SIMULATED_LATENCY", "0s", &cfg.StoreSimulatedLatency},
		{"CERT_LIST_CACHE_TTL", "30s", &cfg.CertListCacheTTL},
		{"READINESS_PROBE_TIMEOUT", "1s", &cfg.ReadinessProbeTimeout},
		{"SHUTDOWN_TIMEOUT", "20s", &cfg.ShutdownTimeout},
		{"SHUTDOWN_HTTP_DRAIN_TIMEOUT", "10s", &cfg.ShutdownHTTPDrainTimeout},
		{"SHUTDOWN_OBSERVABILITY_TIMEOUT", "8s", &cfg.ShutdownObservabilityTimeout},
		{"OTEL_METRICS_EXPORT_INTERVAL", "10s", &cfg.OTELMetricsExportInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	switch c.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, "SQLITE_PATH is required when STORE_DRIVER=sqlite")
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		errs = append(errs, "STORE_DRIVER must be one of memory, sqlite, postgres")
	}
	if c.StoreSimulatedLatency < 0 {
		errs = append(errs, "STORE_SIMULATED_LATENCY must be >= 0")
	}
	if c.MaxRequestBodyBytes <= 0 {
		errs = append(errs, "HTTP_MAX_BODY_BYTES must be > 0")
	}
	if c.RateLimitEnabled && c.RateLimitWritesPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_WRITES_PER_MIN must be > 0 when RATE_LIMIT_ENABLED=true")
	}
	if c.RedisEnabled && c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required when REDIS_ENABLED=true")
	}
	if c.CertListCacheEnabled && c.CertListCacheTTL <= 0 {
		errs = append(errs, "CERT_LIST_CACHE_TTL must be > 0 when CERT_LIST_CACHE_ENABLED=true")
	}
	if c.StorageEnabled {
		if c.MinIOEndpoint == "" || c.MinIOBucket == "" {
			errs = append(errs, "MINIO_ENDPOINT and MINIO_BUCKET are required when STORAGE_ENABLED=true")
		}
		if c.MinIOAccessKey == "" || c.MinIOSecretKey == "" {
			errs = append(errs, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when STORAGE_ENABLED=true")
		}
	}
	if c.MaxEvidenceSize <= 0 {
		errs = append(errs, "MAX_EVIDENCE_SIZE_BYTES must be > 0")
	}
	for name, p := range map[string]float64{
		"VERIFICATION_QR_PROBABILITY":         c.VerificationQRProbability,
		"VERIFICATION_BLOCKCHAIN_PROBABILITY": c.VerificationBlockchainProbability,
		"VERIFICATION_API_PROBABILITY":        c.VerificationAPIProbability,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, name+" must be between 0 and 1")
		}
	}
	if c.ExpiryScanEnabled && strings.TrimSpace(c.ExpiryScanSchedule) == "" {
		errs = append(errs, "EXPIRY_SCAN_SCHEDULE is required when EXPIRY_SCAN_ENABLED=true")
	}
	if c.ReadinessProbeTimeout <= 0 {
		errs = append(errs, "READINESS_PROBE_TIMEOUT must be > 0")
	}
	if c.ShutdownTimeout <= 0 || c.ShutdownHTTPDrainTimeout <= 0 || c.ShutdownObservabilityTimeout <= 0 {
		errs = append(errs, "shutdown timeouts must be > 0")
	}
	if c.ShutdownHTTPDrainTimeout > c.ShutdownTimeout {
		errs = append(errs, "SHUTDOWN_HTTP_DRAIN_TIMEOUT must be <= SHUTDOWN_TIMEOUT")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.OTELLogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if !isLocalLikeEnv(c.Env) {
		if c.StoreSeedDemoData {
			errs = append(errs, "STORE_SEED_DEMO_DATA must be false outside local environments")
		}
		if c.StoreSimulatedLatency > 0 {
			errs = append(errs, "STORE_SIMULATED_LATENCY must be 0 outside local environments")
		}
		for _, o := range c.CORSAllowedOrigins {
			if o == "*" {
				errs = append(errs, "CORS_ALLOWED_ORIGINS must not contain * outside local environments")
				break
			}
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isLocalLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "dev", "local", "test":
		return true
	default:
		return false
	}
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
