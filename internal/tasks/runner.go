package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Runner executes fire-and-forget tasks on detached goroutines. Tasks inherit
// the values of the scheduling context but not its cancellation, so work keeps
// running after the triggering request has been answered. Failures and panics
// are logged and otherwise discarded; nothing in the response path waits on a
// task.
type Runner struct {
	logger interfaces.Logger
	id     func() string
	wg     sync.WaitGroup
}

// Option customizes runner behaviour.
type Option func(*Runner)

// WithLogger injects the logger used for task outcomes. Defaults to no-op.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithIDGenerator overrides the task ID generator, used mainly for tests.
func WithIDGenerator(generator func() string) Option {
	return func(r *Runner) {
		if generator != nil {
			r.id = generator
		}
	}
}

// NewRunner constructs a goroutine-backed task runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger: logging.NoOp(),
		id:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ interfaces.TaskRunner = (*Runner)(nil)
var _ interfaces.TaskWaiter = (*Runner)(nil)

// Go schedules fn on its own goroutine. The task context carries the values
// of ctx but survives its cancellation.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	taskID := r.id()
	logger := logging.WithFields(logging.WithTaskContext(r.logger, name), map[string]any{
		"task_id": taskID,
	})

	detached := context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("task.panic", "panic", fmt.Sprintf("%v", recovered))
			}
		}()

		logger.Debug("task.start")
		if err := fn(detached); err != nil {
			logger.Error("task.failed", "error", err)
			return
		}
		logger.Debug("task.done")
	}()
}

// Wait blocks until all in-flight tasks finish or ctx expires. Used during
// graceful shutdown so scheduled notifications can drain.
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
