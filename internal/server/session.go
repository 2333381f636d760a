package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sadopc/diskview/internal/config"
	"github.com/sadopc/diskview/internal/drives"
	"github.com/sadopc/diskview/internal/protocol"
	"github.com/sadopc/diskview/internal/remote"
	"github.com/sadopc/diskview/internal/scan"
	"github.com/sadopc/diskview/internal/stats"
	"github.com/sadopc/diskview/internal/task"
)

// session is the per-connection state: the publisher and the set of tasks
// this connection started. When the connection goes away, every owned
// task is aborted so no background walk outlives its client.
type session struct {
	srv *Server
	pub *Publisher

	mu    sync.Mutex
	owned map[string]struct{}
}

func newSession(srv *Server, pub *Publisher) *session {
	return &session{srv: srv, pub: pub, owned: make(map[string]struct{})}
}

// handle dispatches one inbound frame.
func (s *session) handle(data []byte) {
	req, err := protocol.DecodeInbound(data)
	if err != nil {
		s.pub.Send(protocol.TypeScanError, &protocol.ScanError{Error: err.Error()})
		return
	}

	switch r := req.(type) {
	case *protocol.StartScanRequest:
		s.startScan(r)
	case *protocol.StopScanRequest:
		s.stopScan(r)
	case *protocol.ListDrivesRequest:
		s.pub.Send(protocol.TypeDrives, &protocol.DrivesPayload{Drives: drives.List()})
	}
}

func (s *session) startScan(req *protocol.StartScanRequest) {
	if strings.TrimSpace(req.DrivePath) == "" {
		s.pub.Send(protocol.TypeScanError, &protocol.ScanError{Error: "drivePath is required"})
		return
	}

	depth := req.ScanDepth
	if depth < 1 {
		depth = s.srv.cfg.DefaultDepth
	}
	if depth > s.srv.cfg.MaxDepth {
		depth = s.srv.cfg.MaxDepth
	}

	fsys, root, cleanup, err := ResolveProvider(s.srv.cfg, req.DrivePath)
	if err != nil {
		s.pub.Send(protocol.TypeScanError, &protocol.ScanError{Error: err.Error()})
		return
	}

	// Precondition: the root must exist and be a readable directory at
	// call time. A failing root never registers a task.
	if info, err := fsys.Stat(root); err != nil || !info.IsDir() {
		if cleanup != nil {
			cleanup()
		}
		s.pub.Send(protocol.TypeScanError, &protocol.ScanError{Error: fmt.Sprintf("invalid scan path: %s", root)})
		return
	}

	t := s.srv.registry.Create(root, depth)
	s.track(t.ID)
	s.pub.Send(protocol.TypeScanStarted, &protocol.ScanStarted{TaskID: t.ID})
	s.srv.logger.Printf("[scan] task %s started root=%s depth=%d", t.ID, root, depth)

	go s.runScan(t, fsys, cleanup)
}

// runScan drives one engine invocation to its single terminal outcome.
// The task is unregistered exactly once here, whatever the outcome.
func (s *session) runScan(t *task.Task, fsys scan.FS, cleanup func()) {
	if cleanup != nil {
		defer cleanup()
	}
	defer func() {
		// A panic escaping the walk fails this task only; the process
		// keeps serving other connections.
		if r := recover(); r != nil {
			t.SetState(task.StateFailed)
			s.finish(t.ID)
			s.pub.Send(protocol.TypeScanError, &protocol.ScanError{TaskID: t.ID, Error: fmt.Sprintf("unexpected failure: %v", r)})
			s.srv.logger.Printf("[scan] task %s panicked: %v", t.ID, r)
		}
	}()

	engine := scan.NewEngine(fsys)
	err := engine.Walk(t, func(p scan.Progress) {
		// An abort may have been acknowledged since the engine's own
		// checkpoint; nothing for this task may follow that ack.
		if t.CancelRequested() {
			return
		}
		s.pub.Send(protocol.TypeScanProgress, &protocol.ScanProgress{
			TaskID:       t.ID,
			ScannedCount: p.ScannedCount,
			TotalSize:    p.TotalSize,
			ErrorCount:   p.ErrorCount,
			CurrentPath:  p.CurrentPath,
			Percentage:   p.Percentage,
		})
	})

	// A stop request can land after the engine's last checkpoint but
	// before Walk returns. The ack has already been sent, so the walk
	// counts as aborted and its results are discarded.
	if err == nil && t.CancelRequested() {
		err = scan.ErrAborted
	}

	s.finish(t.ID)

	switch {
	case err == nil:
		t.SetState(task.StateCompleted)
		s.pub.Send(protocol.TypeScanComplete, &protocol.ScanComplete{
			TaskID:   t.ID,
			Stats:    stats.Format(t.Stats),
			Duration: int64(t.Duration().Seconds()),
		})
		s.srv.logger.Printf("[scan] task %s completed: %d files, %d bytes, %d errors",
			t.ID, t.Stats.TotalFiles, t.Stats.TotalSize, t.Stats.ErrorCount)
	case errors.Is(err, scan.ErrAborted):
		// scan_stopped was already sent when the abort was requested;
		// partial results are discarded.
		t.SetState(task.StateAborted)
		s.srv.logger.Printf("[scan] task %s aborted", t.ID)
	default:
		t.SetState(task.StateFailed)
		s.pub.Send(protocol.TypeScanError, &protocol.ScanError{TaskID: t.ID, Error: err.Error()})
		s.srv.logger.Printf("[scan] task %s failed: %v", t.ID, err)
	}
}

func (s *session) stopScan(req *protocol.StopScanRequest) {
	// Aborting an unknown or already-finished task is a harmless no-op.
	if !s.srv.registry.RequestAbort(req.TaskID) {
		return
	}
	s.pub.Send(protocol.TypeScanStopped, &protocol.ScanStopped{TaskID: req.TaskID})
	s.srv.logger.Printf("[scan] task %s abort requested", req.TaskID)
}

// close aborts every task this connection owns and drops the publisher.
func (s *session) close() {
	s.pub.Close()

	s.mu.Lock()
	ids := make([]string, 0, len(s.owned))
	for id := range s.owned {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.srv.registry.RequestAbort(id)
	}
	if len(ids) > 0 {
		s.srv.logger.Printf("[ws] connection closed, aborted %d task(s)", len(ids))
	}
}

func (s *session) track(id string) {
	s.mu.Lock()
	s.owned[id] = struct{}{}
	s.mu.Unlock()
}

// finish unregisters a terminal task from the registry and this session.
func (s *session) finish(id string) {
	s.srv.registry.Remove(id)
	s.mu.Lock()
	delete(s.owned, id)
	s.mu.Unlock()
}

// ResolveProvider resolves a requested drive path to a filesystem
// provider and the canonical root to walk. Remote roots use the SFTP
// provider when enabled; everything else is local.
func ResolveProvider(cfg *config.Config, drivePath string) (scan.FS, string, func(), error) {
	if target, remotePath, ok := remote.SplitRoot(drivePath); ok {
		if !cfg.Remote.Enabled {
			return nil, "", nil, fmt.Errorf("remote scan roots are disabled")
		}
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Remote.TimeoutSeconds)*time.Second)
		defer cancel()

		rfs, err := remote.Connect(ctx, remote.Config{
			Target:    target,
			Port:      cfg.Remote.Port,
			BatchMode: cfg.Remote.BatchMode,
			Timeout:   time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, "", nil, fmt.Errorf("cannot connect to %s: %w", target, err)
		}
		return rfs, rfs.ResolveRoot(remotePath), func() { _ = rfs.Close() }, nil
	}

	abs, err := filepath.Abs(drivePath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("invalid scan path: %w", err)
	}
	return scan.OSFS{}, abs, nil, nil
}
