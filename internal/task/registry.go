package task

import "sync"

// Registry is the process-wide store of in-flight tasks. It is shared
// across all connections; insert, abort, and remove serialize on one
// mutex. A task is present here iff it is running.
type Registry struct {
	mu    sync.Mutex
	tasks map[string]*Task
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// Create makes a new running task and registers it.
func (r *Registry) Create(root string, maxDepth int) *Task {
	t := New(root, maxDepth)
	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()
	return t
}

// RequestAbort flips the cancellation flag of the task with the given id.
// Aborting a task that no longer exists is a no-op, not an error: the
// task may have already finished.
func (r *Registry) RequestAbort(id string) bool {
	r.mu.Lock()
	t, ok := r.tasks[id]
	r.mu.Unlock()
	if !ok {
		return false
	}
	t.RequestCancel()
	return true
}

// Remove deletes a task from the registry. Called exactly once per task,
// on its terminal transition.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
}

// Exists reports whether a task with the given id is still running.
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	_, ok := r.tasks[id]
	r.mu.Unlock()
	return ok
}
