package async

import (
	"context"
	"log/slog"
	"time"
)

// Future is the pending result of a computation started with Run.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Await blocks until the computation finishes.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout blocks until the computation finishes or the timeout
// elapses, whichever comes first.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// Done reports completion without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Run executes fn in a new goroutine and returns a Future for its result.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Fire runs fn in the background detached from the caller's lifetime: the
// work keeps its own deadline and outlives the request that triggered it.
// Failures are logged and otherwise dropped; Fire is for side work whose
// outcome must never influence the response, like last-activity bookkeeping.
func Fire(logger *slog.Logger, timeout time.Duration, fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := fn(ctx); err != nil && logger != nil {
			logger.DebugContext(ctx, "background task failed", slog.Any("error", err))
		}
	}()
}
