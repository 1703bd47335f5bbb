package session

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is the cleanup operation the Cleaner drives. Implemented by Service.
type Sweeper interface {
	Cleanup(ctx context.Context) (int64, error)
}

// Cleaner runs the periodic hard-delete sweep independently of request
// traffic. A failed sweep is logged and retried on the next tick; it is
// never fatal to the process.
type Cleaner struct {
	sweeper  Sweeper
	interval time.Duration
	log      *slog.Logger
}

// NewCleaner returns a Cleaner that sweeps at the given interval.
// A nil logger falls back to slog.Default().
func NewCleaner(sweeper Sweeper, interval time.Duration, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	return &Cleaner{sweeper: sweeper, interval: interval, log: log}
}

// Start blocks, sweeping immediately and then on every tick until the
// context is canceled. It returns the context's error.
func (c *Cleaner) Start(ctx context.Context) error {
	if c.interval <= 0 {
		c.log.WarnContext(ctx, "session cleanup disabled: non-positive interval")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			c.log.InfoContext(ctx, "session cleaner shutting down")
			return ctx.Err()
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Cleaner) sweep(ctx context.Context) {
	deleted, err := c.sweeper.Cleanup(ctx)
	if err != nil {
		cleanupSweeps.WithLabelValues("error").Inc()
		c.log.ErrorContext(ctx, "session cleanup sweep failed",
			slog.String("error", err.Error()))
		return
	}

	cleanupSweeps.WithLabelValues("ok").Inc()
	cleanupDeleted.Add(float64(deleted))

	if deleted > 0 {
		c.log.InfoContext(ctx, "session cleanup sweep completed",
			slog.Int64("deleted", deleted))
	}
}
