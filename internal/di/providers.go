package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/app"
	"github.com/sandeepkv93/credential-vault-backend/internal/config"
	"github.com/sandeepkv93/credential-vault-backend/internal/database"
	"github.com/sandeepkv93/credential-vault-backend/internal/health"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/handler"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/middleware"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/router"
	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
	"github.com/sandeepkv93/credential-vault-backend/internal/jobs"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/service"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideEvidenceStorage,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	provideCertificateRepository,
	provideUserRepository,
	provideVerificationRequestRepository,
	provideDemoSeed,
)

var ServiceSet = wire.NewSet(
	provideClassifier,
	wire.Bind(new(service.CertificateClassifier), new(*verification.Classifier)),
	provideCertificateListCache,
	provideCertificateService,
	service.NewVerificationService,
	service.NewLearnerSearchService,
	wire.Bind(new(service.CertificateService), new(*service.CertificateServiceImpl)),
	wire.Bind(new(service.VerificationService), new(*service.VerificationServiceImpl)),
	wire.Bind(new(service.LearnerSearchService), new(*service.LearnerSearchServiceImpl)),
)

var JobsSet = wire.NewSet(
	jobs.NewExpiryScanner,
	provideExpiryScheduler,
)

var HTTPSet = wire.NewSet(
	i18n.NewTranslator,
	handler.NewCertificateHandler,
	provideEvidenceHandler,
	handler.NewLearnerHandler,
	handler.NewVerificationHandler,
	handler.NewTranslationHandler,
	provideWriteRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(provideApp)

// SeedReport is the outcome of demo seeding at startup. Wire needs a distinct
// type so the seed step runs before the app is assembled.
type SeedReport database.SeedReport

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

// provideRuntimeDB opens and migrates the relational store. The memory driver
// yields a nil *gorm.DB and the repositories fall back to in-process maps.
func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if errors.Is(err, database.ErrNoDatabase) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config, logger *slog.Logger) redis.UniversalClient {
	if !cfg.RedisEnabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	observability.InstrumentRedisClient(client, logger,
		observability.RedisKeyFamily{Prefix: cfg.CertListCachePrefix, Name: "certificate_list"},
		observability.RedisKeyFamily{Prefix: middleware.DefaultRedisRateLimitPrefix, Name: "write_rate_limit"},
	)
	return client
}

func provideEvidenceStorage(cfg *config.Config) (service.EvidenceStorage, error) {
	if !cfg.StorageEnabled {
		return service.DisabledEvidenceStorage{}, nil
	}
	storage, err := service.NewMinIOEvidenceStorage(
		cfg.MinIOEndpoint,
		cfg.MinIOAccessKey,
		cfg.MinIOSecretKey,
		cfg.MinIOBucket,
		cfg.MinIOUseSSL,
		cfg.MaxEvidenceSize,
	)
	if err != nil {
		return nil, fmt.Errorf("init evidence storage: %w", err)
	}
	return storage, nil
}

func provideCertificateRepository(cfg *config.Config, db *gorm.DB) repository.CertificateRepository {
	if db == nil {
		return repository.NewMemoryCertificateRepository(cfg.StoreSimulatedLatency)
	}
	return repository.NewCertificateRepository(db)
}

func provideUserRepository(cfg *config.Config, db *gorm.DB) repository.UserRepository {
	if db == nil {
		return repository.NewMemoryUserRepository(cfg.StoreSimulatedLatency)
	}
	return repository.NewUserRepository(db)
}

func provideVerificationRequestRepository(cfg *config.Config, db *gorm.DB) repository.VerificationRequestRepository {
	if db == nil {
		return repository.NewMemoryVerificationRequestRepository(cfg.StoreSimulatedLatency)
	}
	return repository.NewVerificationRequestRepository(db)
}

func provideDemoSeed(
	cfg *config.Config,
	users repository.UserRepository,
	certs repository.CertificateRepository,
	logger *slog.Logger,
) (SeedReport, error) {
	if !cfg.StoreSeedDemoData {
		return SeedReport{Noop: true}, nil
	}
	report, err := database.SeedDemoData(context.Background(), users, certs)
	if err != nil {
		return SeedReport{}, fmt.Errorf("seed demo data: %w", err)
	}
	logger.Info("demo data seeded",
		"created_users", report.CreatedUsers,
		"created_certificates", report.CreatedCertificates,
	)
	return SeedReport(*report), nil
}

func provideClassifier(cfg *config.Config) (*verification.Classifier, error) {
	provider, err := verification.NewRandomEvidenceProvider(verification.Probabilities{
		QRCode:     cfg.VerificationQRProbability,
		Blockchain: cfg.VerificationBlockchainProbability,
		API:        cfg.VerificationAPIProbability,
	})
	if err != nil {
		return nil, fmt.Errorf("init evidence provider: %w", err)
	}
	return verification.NewClassifier(provider), nil
}

func provideCertificateListCache(cfg *config.Config, redisClient redis.UniversalClient) service.CertificateListCacheStore {
	if !cfg.CertListCacheEnabled {
		return service.NewNoopCertificateListCacheStore()
	}
	if redisClient != nil {
		return service.NewRedisCertificateListCacheStore(redisClient, cfg.CertListCachePrefix)
	}
	return service.NewInMemoryCertificateListCacheStore()
}

func provideCertificateService(
	cfg *config.Config,
	repo repository.CertificateRepository,
	classifier service.CertificateClassifier,
	cache service.CertificateListCacheStore,
	evidence service.EvidenceStorage,
	logger *slog.Logger,
) *service.CertificateServiceImpl {
	return service.NewCertificateService(repo, classifier, cache, evidence, cfg.CertListCacheTTL, logger)
}

func provideExpiryScheduler(cfg *config.Config, scanner *jobs.ExpiryScanner, logger *slog.Logger) (*jobs.Scheduler, error) {
	if !cfg.ExpiryScanEnabled {
		return nil, nil
	}
	return jobs.NewScheduler(cfg.ExpiryScanSchedule, scanner, logger)
}

func provideEvidenceHandler(cfg *config.Config, storage service.EvidenceStorage) *handler.EvidenceHandler {
	return handler.NewEvidenceHandler(storage, cfg.MaxEvidenceSize)
}

func provideWriteRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.WriteRateLimiterFunc {
	if !cfg.RateLimitEnabled {
		return func(next http.Handler) http.Handler { return next }
	}
	if redisClient != nil {
		mode := middleware.FailClosed
		if cfg.RateLimitFailOpen {
			mode = middleware.FailOpen
		}
		return middleware.NewDistributedRateLimiter(
			middleware.NewRedisFixedWindowLimiter(redisClient, ""),
			cfg.RateLimitWritesPerMinute,
			time.Minute,
			mode,
			"writes",
		).Middleware()
	}
	return middleware.NewRateLimiter(cfg.RateLimitWritesPerMinute, time.Minute).Middleware()
}

func provideRouterDependencies(
	certificateHandler *handler.CertificateHandler,
	evidenceHandler *handler.EvidenceHandler,
	learnerHandler *handler.LearnerHandler,
	verificationHandler *handler.VerificationHandler,
	translationHandler *handler.TranslationHandler,
	translator *i18n.Translator,
	writeRateLimiter router.WriteRateLimiterFunc,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		CertificateHandler:  certificateHandler,
		EvidenceHandler:     evidenceHandler,
		LearnerHandler:      learnerHandler,
		VerificationHandler: verificationHandler,
		TranslationHandler:  translationHandler,
		Translator:          translator,
		CORSOrigins:         cfg.CORSAllowedOrigins,
		MaxBodyBytes:        cfg.MaxRequestBodyBytes,
		WriteRateLimiter:    writeRateLimiter,
		Readiness:           readiness,
		EnableOTelHTTP:      cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, storage service.EvidenceStorage) *health.ProbeRunner {
	checkers := []health.Checker{
		health.NewDBChecker(db),
		health.NewRedisChecker(redisClient),
	}
	if pinger, ok := storage.(health.Pinger); ok {
		checkers = append(checkers, health.NewPingChecker("evidence_storage", pinger))
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, 0, checkers...)
}

func provideApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
	scheduler *jobs.Scheduler,
	seed SeedReport,
) *app.App {
	if !seed.Noop {
		logger.Debug("startup seed applied", "created_certificates", seed.CreatedCertificates)
	}
	return app.New(cfg, logger, server, runtime, db, redisClient, readiness, scheduler)
}
