package config

import (
	"strings"
	"testing"
	"time"
)

func validConfigForTest() *Config {
	return &Config{
		Env:                               "development",
		HTTPPort:                          "8080",
		StoreDriver:                       StoreDriverMemory,
		SQLitePath:                        "credential-vault.db",
		StoreSeedDemoData:                 true,
		CORSAllowedOrigins:                []string{"http://localhost:5173"},
		MaxRequestBodyBytes:               1 << 20,
		RateLimitEnabled:                  true,
		RateLimitWritesPerMinute:          60,
		CertListCacheTTL:                  30 * time.Second,
		MaxEvidenceSize:                   10 << 20,
		VerificationQRProbability:         0.5,
		VerificationBlockchainProbability: 0.7,
		VerificationAPIProbability:        0.6,
		ExpiryScanEnabled:                 true,
		ExpiryScanSchedule:                "@daily",
		ReadinessProbeTimeout:             time.Second,
		ShutdownTimeout:                   20 * time.Second,
		ShutdownHTTPDrainTimeout:          10 * time.Second,
		ShutdownObservabilityTimeout:      8 * time.Second,
		OTELExporterOTLPEndpoint:          "localhost:4317",
		OTELTraceSamplingRatio:            1.0,
		OTELMetricsExportInterval:         10 * time.Second,
		OTELLogLevel:                      "info",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	if err := validConfigForTest().Validate(); err != nil {
		t.Fatalf("expected dev config to validate: %v", err)
	}
}

func TestValidateProductionRejectsDemoSettings(t *testing.T) {
	cfg := validConfigForTest()
	cfg.Env = "production"
	cfg.StoreSimulatedLatency = 500 * time.Millisecond
	cfg.CORSAllowedOrigins = []string{"*"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected production validation errors")
	}
	for _, want := range []string{"STORE_SEED_DEMO_DATA", "STORE_SIMULATED_LATENCY", "CORS_ALLOWED_ORIGINS"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestValidateStoreDriverRequirements(t *testing.T) {
	cfg := validConfigForTest()
	cfg.StoreDriver = StoreDriverPostgres
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}

	cfg.StoreDriver = "mongo"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}
}

func TestValidateVerificationProbabilities(t *testing.T) {
	cfg := validConfigForTest()
	cfg.VerificationAPIProbability = 1.5
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "VERIFICATION_API_PROBABILITY") {
		t.Fatalf("expected probability error, got %v", err)
	}
}

func TestValidateStorageRequiresCredentials(t *testing.T) {
	cfg := validConfigForTest()
	cfg.StorageEnabled = true
	cfg.MinIOEndpoint = "localhost:9000"
	cfg.MinIOBucket = "certificates"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "MINIO_ACCESS_KEY") {
		t.Fatalf("expected minio credential error, got %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "file::memory:")
	t.Setenv("STORE_SIMULATED_LATENCY", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("VERIFICATION_QR_PROBABILITY", "0.9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StoreDriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.StoreDriver)
	}
	if cfg.StoreSimulatedLatency != 250*time.Millisecond {
		t.Fatalf("unexpected latency %v", cfg.StoreSimulatedLatency)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.VerificationQRProbability != 0.9 {
		t.Fatalf("unexpected qr probability %v", cfg.VerificationQRProbability)
	}
	if !cfg.StoreSeedDemoData {
		t.Fatal("expected demo data seeding to default on in test env")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CERT_LIST_CACHE_TTL", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CERT_LIST_CACHE_TTL") {
		t.Fatalf("expected duration parse error, got %v", err)
	}
}

func TestValidateRateLimitRequiresPositiveBudget(t *testing.T) {
	cfg := validConfigForTest()
	cfg.RateLimitWritesPerMinute = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "RATE_LIMIT_WRITES_PER_MIN") {
		t.Fatalf("expected rate limit validation error, got %v", err)
	}

	cfg.RateLimitEnabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled rate limit to skip budget check: %v", err)
	}
}
