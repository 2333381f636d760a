package task

import (
	"sync"
	"testing"
)

func TestNewTaskDefaults(t *testing.T) {
	tk := New("/data", 3)
	if tk.ID == "" {
		t.Fatal("task has no ID")
	}
	if tk.Root != "/data" || tk.MaxDepth != 3 {
		t.Fatalf("task = %+v", tk)
	}
	if tk.State() != StateRunning {
		t.Fatalf("initial state = %v, want running", tk.State())
	}
	if tk.CancelRequested() {
		t.Fatal("new task already cancelled")
	}
	if tk.Stats == nil {
		t.Fatal("task has no aggregator")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateRunning, "running"},
		{StateCompleted, "completed"},
		{StateAborted, "aborted"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestRegistryCreateAssignsUniqueIDs(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tk := r.Create("/data", 2)
		if seen[tk.ID] {
			t.Fatalf("duplicate task ID %s", tk.ID)
		}
		seen[tk.ID] = true
		if !r.Exists(tk.ID) {
			t.Fatalf("created task %s not registered", tk.ID)
		}
	}
}

func TestRegistryRequestAbort(t *testing.T) {
	r := NewRegistry()
	tk := r.Create("/data", 2)

	if !r.RequestAbort(tk.ID) {
		t.Fatal("RequestAbort on a registered task returned false")
	}
	if !tk.CancelRequested() {
		t.Fatal("abort request did not reach the task")
	}

	// Unknown and already-removed IDs are no-ops.
	if r.RequestAbort("nope") {
		t.Fatal("RequestAbort on unknown ID returned true")
	}
	r.Remove(tk.ID)
	if r.RequestAbort(tk.ID) {
		t.Fatal("RequestAbort on removed task returned true")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	tk := r.Create("/data", 2)
	r.Remove(tk.ID)
	if r.Exists(tk.ID) {
		t.Fatal("removed task still registered")
	}
	// Removing twice is harmless.
	r.Remove(tk.ID)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tk := r.Create("/data", 1)
				r.RequestAbort(tk.ID)
				r.Remove(tk.ID)
			}
		}()
	}
	wg.Wait()
}
