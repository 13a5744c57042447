package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"filecrate/internal/domain/services"
)

type stubCleanup struct {
	calls int
	err   error
}

func (s *stubCleanup) PurgeExpired(ctx context.Context) (*services.PurgeReport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &services.PurgeReport{}, nil
}

func newTestSweeper(cleanup services.CleanupService, hour int) *Sweeper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSweeper(cleanup, hour, logger)
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return parsed
}

func TestRunDue(t *testing.T) {
	ctx := context.Background()

	t.Run("does not run before the configured hour", func(t *testing.T) {
		cleanup := &stubCleanup{}
		sweeper := newTestSweeper(cleanup, 1)

		assert.False(t, sweeper.RunDue(ctx, at(t, "2026-08-28T00:30:00Z")))
		assert.Zero(t, cleanup.calls)
	})

	t.Run("runs once the hour is reached", func(t *testing.T) {
		cleanup := &stubCleanup{}
		sweeper := newTestSweeper(cleanup, 1)

		assert.True(t, sweeper.RunDue(ctx, at(t, "2026-08-28T01:00:00Z")))
		assert.Equal(t, 1, cleanup.calls)
	})

	t.Run("runs at most once per day", func(t *testing.T) {
		cleanup := &stubCleanup{}
		sweeper := newTestSweeper(cleanup, 1)

		assert.True(t, sweeper.RunDue(ctx, at(t, "2026-08-28T01:00:00Z")))
		assert.False(t, sweeper.RunDue(ctx, at(t, "2026-08-28T02:00:00Z")))
		assert.False(t, sweeper.RunDue(ctx, at(t, "2026-08-28T23:00:00Z")))
		assert.Equal(t, 1, cleanup.calls)

		assert.True(t, sweeper.RunDue(ctx, at(t, "2026-08-29T01:00:00Z")))
		assert.Equal(t, 2, cleanup.calls)
	})

	t.Run("a wakeup past the hour still runs that day", func(t *testing.T) {
		cleanup := &stubCleanup{}
		sweeper := newTestSweeper(cleanup, 1)

		assert.True(t, sweeper.RunDue(ctx, at(t, "2026-08-28T17:45:00Z")))
		assert.Equal(t, 1, cleanup.calls)
	})

	t.Run("a failed sweep is retried on the next tick", func(t *testing.T) {
		cleanup := &stubCleanup{err: errors.New("pool exhausted")}
		sweeper := newTestSweeper(cleanup, 1)

		assert.False(t, sweeper.RunDue(ctx, at(t, "2026-08-28T01:00:00Z")))
		assert.Equal(t, 1, cleanup.calls)

		cleanup.err = nil
		assert.True(t, sweeper.RunDue(ctx, at(t, "2026-08-28T02:00:00Z")))
		assert.Equal(t, 2, cleanup.calls)

		assert.False(t, sweeper.RunDue(ctx, at(t, "2026-08-28T03:00:00Z")))
		assert.Equal(t, 2, cleanup.calls)
	})

	t.Run("hour zero runs on every day's first tick", func(t *testing.T) {
		cleanup := &stubCleanup{}
		sweeper := newTestSweeper(cleanup, 0)

		assert.True(t, sweeper.RunDue(ctx, at(t, "2026-08-28T00:00:00Z")))
		assert.Equal(t, 1, cleanup.calls)
	})
}

func TestStartStop(t *testing.T) {
	cleanup := &stubCleanup{}
	sweeper := newTestSweeper(cleanup, 1)

	sweeper.Start(context.Background())
	sweeper.Stop()

	// Stop without a prior Start is a no-op.
	newTestSweeper(cleanup, 1).Stop()
}
