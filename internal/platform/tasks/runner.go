package tasks

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Runner executes fire-and-forget work on background goroutines. Panics are
// recovered and logged so a misbehaving task never takes the process down,
// and Wait lets the server drain in-flight tasks during shutdown.
type Runner struct {
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRunner creates a Runner. Each task gets its own context with the given
// timeout, detached from the submitting request's lifetime.
func NewRunner(logger *slog.Logger, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{logger: logger, timeout: timeout}
}

// Submit schedules fn on a new goroutine. The context handed to fn is not the
// caller's: submitted work must survive the originating HTTP request.
func (r *Runner) Submit(name string, fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("background task panicked",
					slog.String("task", name),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		fn(ctx)
	}()
}

// Wait blocks until all submitted tasks have finished or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
