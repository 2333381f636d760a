package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sadopc/diskview/internal/stats"
	"github.com/sadopc/diskview/internal/task"
)

// progressEvery is the file-count cadence of progress snapshots.
const progressEvery = 50

// ErrAborted is returned by Walk when the task's cancellation flag was
// observed at a checkpoint. It is an internal signal, never a failure.
var ErrAborted = errors.New("scan aborted")

// InvalidRootError reports a root path that was missing or unreadable at
// task start. It is the only precondition failure; everything after it is
// handled per entry.
type InvalidRootError struct {
	Path string
	Err  error
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid scan root %s: %v", e.Path, e.Err)
}

func (e *InvalidRootError) Unwrap() error { return e.Err }

// Progress is one throttled snapshot of a running walk.
type Progress struct {
	ScannedCount int64
	TotalSize    int64
	ErrorCount   int64
	CurrentPath  string
	Percentage   int
}

// EmitFunc receives progress snapshots. Implementations decide whether the
// owning connection is still worth writing to.
type EmitFunc func(Progress)

// Engine walks a directory tree depth-first to the task's depth limit and
// feeds the task's aggregator. One engine is safe for concurrent Walk
// calls on distinct tasks; all mutable state lives on the task.
type Engine struct {
	fs FS
}

// NewEngine returns an engine over the given filesystem provider.
func NewEngine(fsys FS) *Engine {
	return &Engine{fs: fsys}
}

// Walk runs the scan bound to t. It returns nil on completion, ErrAborted
// when cancellation was observed, or an *InvalidRootError when the root
// failed its precondition. Per-entry failures are counted on the
// aggregator and never returned.
func (e *Engine) Walk(t *task.Task, emit EmitFunc) error {
	info, err := e.fs.Stat(t.Root)
	if err != nil {
		return &InvalidRootError{Path: t.Root, Err: err}
	}
	if !info.IsDir() {
		return &InvalidRootError{Path: t.Root, Err: errors.New("not a directory")}
	}

	entries, err := e.fs.ReadDir(t.Root)
	if err != nil {
		return &InvalidRootError{Path: t.Root, Err: err}
	}

	return e.walkEntries(t, t.Root, entries, 1, emit)
}

// walkDir lists one subdirectory and processes its entries. Listing
// failures below the root are non-fatal: counted, subtree treated as
// empty.
func (e *Engine) walkDir(t *task.Task, dir string, depth int, emit EmitFunc) error {
	if t.CancelRequested() {
		return ErrAborted
	}

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		t.Stats.RecordError()
		return nil
	}

	return e.walkEntries(t, dir, entries, depth, emit)
}

func (e *Engine) walkEntries(t *task.Task, dir string, entries []fs.DirEntry, depth int, emit EmitFunc) error {
	for _, entry := range entries {
		// Abort latency is bounded by one entry, not one directory.
		if t.CancelRequested() {
			return ErrAborted
		}

		full := e.fs.Join(dir, entry.Name())
		if entry.IsDir() {
			t.Stats.EnsureFolder(entry.Name(), full)
			// Directories at the depth ceiling are recorded but not
			// descended into.
			if depth < t.MaxDepth {
				if err := e.walkDir(t, full, depth+1, emit); err != nil {
					return err
				}
			}
			continue
		}

		e.scanFile(t, full, entry, emit)
	}
	return nil
}

// scanFile records one file entry. A failing metadata query skips this
// entry only; siblings are unaffected.
func (e *Engine) scanFile(t *task.Task, path string, entry fs.DirEntry, emit EmitFunc) {
	info, err := entry.Info()
	if err != nil {
		t.Stats.RecordError()
		return
	}
	size := info.Size()

	t.Stats.RecordFile(size)

	ext := stats.ExtensionOf(entry.Name())
	t.Stats.RecordFileType(ext, size)

	if name, ok := stats.MatchApplication(path, ext); ok {
		t.Stats.RecordApplication(name, path, size)
	}

	e.rollup(t, path, size)

	if emit != nil && t.Stats.ScannedCount%progressEvery == 0 && !t.CancelRequested() {
		emit(Progress{
			ScannedCount: t.Stats.ScannedCount,
			TotalSize:    t.Stats.TotalSize,
			ErrorCount:   t.Stats.ErrorCount,
			CurrentPath:  path,
			Percentage:   estimatePercent(t.Stats.ScannedCount),
		})
	}
}

// rollup propagates a file's size into every ancestor folder at or below
// the scan root, stopping at the root inclusive. Ancestry is a literal
// prefix comparison against the root path, and the loop halts if Dir ever
// fails to shorten the path.
func (e *Engine) rollup(t *task.Task, filePath string, size int64) {
	dir := e.fs.Dir(filePath)
	for strings.HasPrefix(dir, t.Root) {
		t.Stats.RecordFolderSize(e.fs.Base(dir), dir, size)
		if dir == t.Root {
			return
		}
		parent := e.fs.Dir(dir)
		if len(parent) >= len(dir) {
			return
		}
		dir = parent
	}
}

// estimatePercent is a deliberately coarse progress heuristic: total work
// is unknown without a pre-pass, so it grows with the scanned count and
// stays below 100 until completion.
func estimatePercent(scanned int64) int {
	p := int(scanned / 100)
	if p > 99 {
		return 99
	}
	return p
}
