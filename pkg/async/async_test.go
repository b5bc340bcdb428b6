package async_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenkit/ovenkit/pkg/async"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("await returns the result", func(t *testing.T) {
		t.Parallel()

		f := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			return 42, nil
		})

		got, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.True(t, f.Done())
	})

	t.Run("await surfaces the error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		f := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			return 0, boom
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context short-circuits", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		f := async.Run(ctx, func(ctx context.Context) (int, error) {
			ran = true
			return 0, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran)
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		blocked := make(chan struct{})
		f := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			<-blocked
			return 1, nil
		})

		_, err := f.AwaitWithTimeout(20 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		close(blocked)
	})
}

func TestFire(t *testing.T) {
	t.Parallel()

	t.Run("runs detached from the caller", func(t *testing.T) {
		t.Parallel()

		ran := make(chan struct{})
		async.Fire(slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second, func(ctx context.Context) error {
			close(ran)
			return nil
		})

		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("background task never ran")
		}
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		async.Fire(slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second, func(ctx context.Context) error {
			defer close(done)
			return errors.New("ignored")
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("background task never ran")
		}
	})
}
