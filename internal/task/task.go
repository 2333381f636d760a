package task

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/diskview/internal/stats"
)

// State is the lifecycle state of a scan task.
type State int32

const (
	StateRunning State = iota
	StateCompleted
	StateAborted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task wraps one cancellable scan run: identity, root path, depth limit,
// and the aggregator the engine writes into. Abort requests only flip the
// cancellation flag; they never touch the aggregator.
type Task struct {
	ID        string
	Root      string
	MaxDepth  int
	StartedAt time.Time
	Stats     *stats.Aggregator

	cancel atomic.Bool
	state  atomic.Int32
}

// New creates a running task with a process-unique identifier.
func New(root string, maxDepth int) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Root:      root,
		MaxDepth:  maxDepth,
		StartedAt: time.Now(),
		Stats:     stats.NewAggregator(),
	}
}

// RequestCancel flips the cooperative cancellation flag. The engine
// observes it at its next checkpoint.
func (t *Task) RequestCancel() {
	t.cancel.Store(true)
}

// CancelRequested reports whether an abort has been requested.
func (t *Task) CancelRequested() bool {
	return t.cancel.Load()
}

// SetState records a state transition.
func (t *Task) SetState(s State) {
	t.state.Store(int32(s))
}

// State returns the task's current state.
func (t *Task) State() State {
	return State(t.state.Load())
}

// Duration returns the elapsed time since the task started.
func (t *Task) Duration() time.Duration {
	return time.Since(t.StartedAt)
}
