package port

import (
	"context"
	"time"
)

// Task is a background job with a stable type identifier and opaque
// payload bytes. Payload encoding is up to callers.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error signals retry per the
// adapter's policy, so handlers must be idempotent.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Zero values mean
// "unspecified"; adapters map supported fields to the backend
// best-effort.
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	ProcessAt time.Time     // absolute schedule time (wins over ProcessIn)
	MaxRetry  int           // max retries for the task
	UniqueTTL time.Duration // enforce uniqueness within the TTL window
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs background workers. Run blocks until the context is
// canceled or Stop is called.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
