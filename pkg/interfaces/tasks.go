package interfaces

import "context"

// TaskRunner schedules best-effort background work that is allowed to finish
// after the triggering request has already been answered. Outcomes can never
// affect the response that scheduled them: failures are logged by the
// implementation and otherwise discarded.
type TaskRunner interface {
	// Go schedules fn for execution on a detached context. The name is used
	// for log correlation only.
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// TaskWaiter is an optional extension implemented by runners that can drain
// in-flight tasks, typically during graceful shutdown.
type TaskWaiter interface {
	// Wait blocks until every scheduled task has finished or ctx expires.
	Wait(ctx context.Context) error
}
