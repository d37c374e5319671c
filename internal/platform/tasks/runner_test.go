package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanewise/freight_tms_app/internal/platform/tasks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_RunsSubmittedTask(t *testing.T) {
	runner := tasks.NewRunner(discardLogger(), time.Second)

	var ran atomic.Bool
	runner.Submit("job", func(ctx context.Context) {
		ran.Store(true)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Wait(ctx))
	assert.True(t, ran.Load())
}

func TestRunner_RecoversPanics(t *testing.T) {
	runner := tasks.NewRunner(discardLogger(), time.Second)

	var after atomic.Bool
	runner.Submit("panicking", func(ctx context.Context) {
		panic("boom")
	})
	runner.Submit("surviving", func(ctx context.Context) {
		after.Store(true)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Wait(ctx))
	assert.True(t, after.Load(), "a panicking task must not affect other tasks")
}

func TestRunner_TaskContextIsDetached(t *testing.T) {
	runner := tasks.NewRunner(discardLogger(), time.Second)

	done := make(chan error, 1)
	runner.Submit("detached", func(ctx context.Context) {
		done <- ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Wait(ctx))
	assert.NoError(t, <-done, "task context must be live regardless of the submitting request")
}

func TestRunner_WaitHonorsContext(t *testing.T) {
	runner := tasks.NewRunner(discardLogger(), 5*time.Second)

	release := make(chan struct{})
	runner.Submit("slow", func(ctx context.Context) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := runner.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunner_WaitWithNothingSubmitted(t *testing.T) {
	runner := tasks.NewRunner(discardLogger(), time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
}
