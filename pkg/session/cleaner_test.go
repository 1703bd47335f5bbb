package session_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BryanPMX/CAF-sub004/pkg/session"
)

// countingSweeper fails its first sweeps and succeeds afterwards.
type countingSweeper struct {
	calls    atomic.Int64
	failings int64
}

func (s *countingSweeper) Cleanup(ctx context.Context) (int64, error) {
	n := s.calls.Add(1)
	if n <= s.failings {
		return 0, errors.New("store unavailable")
	}
	return 1, nil
}

func TestCleaner_Start(t *testing.T) {
	t.Parallel()

	t.Run("sweeps immediately and on every tick", func(t *testing.T) {
		t.Parallel()
		sweeper := &countingSweeper{}
		cleaner := session.NewCleaner(sweeper, 20*time.Millisecond, slog.New(slog.DiscardHandler))

		ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
		defer cancel()

		err := cleaner.Start(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.GreaterOrEqual(t, sweeper.calls.Load(), int64(3))
	})

	t.Run("a failed sweep is retried on the next tick", func(t *testing.T) {
		t.Parallel()
		sweeper := &countingSweeper{failings: 2}
		cleaner := session.NewCleaner(sweeper, 20*time.Millisecond, slog.New(slog.DiscardHandler))

		ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
		defer cancel()

		err := cleaner.Start(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		// The failures did not stop the loop; later sweeps ran.
		assert.Greater(t, sweeper.calls.Load(), sweeper.failings)
	})

	t.Run("non-positive interval blocks without sweeping", func(t *testing.T) {
		t.Parallel()
		sweeper := &countingSweeper{}
		cleaner := session.NewCleaner(sweeper, 0, slog.New(slog.DiscardHandler))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := cleaner.Start(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Zero(t, sweeper.calls.Load())
	})
}
