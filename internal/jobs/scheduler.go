package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const expiryScanTimeout = 2 * time.Minute

type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler registers the expiry scan under schedule, which accepts standard
// five-field cron specs and descriptors such as "@daily" or "@every 1h".
func NewScheduler(schedule string, scanner *ExpiryScanner, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), expiryScanTimeout)
		defer cancel()
		if _, err := scanner.Run(ctx); err != nil {
			logger.Error("expiry scan failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("register expiry scan %q: %w", schedule, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("job scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
