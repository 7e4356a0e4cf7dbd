package repository

import (
	"context"
	"time"
)

// latency simulates a slow backing store for the in-memory repositories.
type latency time.Duration

func (l latency) wait(ctx context.Context) error {
	if l <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(l))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
