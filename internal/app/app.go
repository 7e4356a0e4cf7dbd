package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/config"
	"github.com/sandeepkv93/credential-vault-backend/internal/database"
	"github.com/sandeepkv93/credential-vault-backend/internal/health"
	"github.com/sandeepkv93/credential-vault-backend/internal/jobs"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	DB            *gorm.DB
	Redis         redis.UniversalClient
	Readiness     *health.ProbeRunner
	Scheduler     *jobs.Scheduler

	ShutdownTimeout              time.Duration
	ShutdownHTTPDrainTimeout     time.Duration
	ShutdownObservabilityTimeout time.Duration
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
	scheduler *jobs.Scheduler,
) *App {
	return &App{
		Config:                       cfg,
		Logger:                       logger,
		Server:                       server,
		Observability:                runtime,
		DB:                           db,
		Redis:                        redisClient,
		Readiness:                    readiness,
		Scheduler:                    scheduler,
		ShutdownTimeout:              cfg.ShutdownTimeout,
		ShutdownHTTPDrainTimeout:     cfg.ShutdownHTTPDrainTimeout,
		ShutdownObservabilityTimeout: cfg.ShutdownObservabilityTimeout,
	}
}

// Start launches background jobs and the HTTP listener. Listener failures
// other than a clean shutdown are sent on the returned channel.
func (a *App) Start() <-chan error {
	errCh := make(chan error, 1)
	a.Scheduler.Start()
	go func() {
		a.Logger.Info("server starting",
			"addr", a.Server.Addr,
			"store_driver", a.Config.StoreDriver,
			"env", a.Config.Env,
		)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown drains HTTP first, then stops the scheduler, flushes telemetry and
// closes the stores. Every step runs even if an earlier one fails.
func (a *App) Shutdown(ctx context.Context) error {
	totalTimeout := a.ShutdownTimeout
	if totalTimeout <= 0 {
		totalTimeout = 20 * time.Second
	}
	totalCtx, totalCancel := context.WithTimeout(ctx, totalTimeout)
	defer totalCancel()

	var errs []error

	httpTimeout := a.ShutdownHTTPDrainTimeout
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	httpCtx, httpCancel := context.WithTimeout(totalCtx, httpTimeout)
	if err := a.Server.Shutdown(httpCtx); err != nil {
		a.Logger.Error("failed to shutdown http server", "error", err)
		errs = append(errs, err)
	}
	httpCancel()

	if err := a.Scheduler.Stop(totalCtx); err != nil {
		a.Logger.Error("failed to stop scheduler", "error", err)
		errs = append(errs, err)
	}

	if a.Observability != nil {
		obsTimeout := a.ShutdownObservabilityTimeout
		if obsTimeout <= 0 {
			obsTimeout = 8 * time.Second
		}
		obsCtx, obsCancel := context.WithTimeout(totalCtx, obsTimeout)
		if err := a.Observability.Shutdown(obsCtx); err != nil {
			a.Logger.Error("failed to shutdown observability", "error", err)
			errs = append(errs, err)
		}
		obsCancel()
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("failed to close redis client", "error", err)
			errs = append(errs, err)
		}
	}
	if err := database.Close(a.DB); err != nil {
		a.Logger.Error("failed to close database connection", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
