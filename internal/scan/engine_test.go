package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/sadopc/diskview/internal/task"
)

// fakeFS is an in-memory FS with POSIX path semantics and injectable
// failures, so error paths are testable without touching the real disk.
type fakeFS struct {
	nodes      map[string]*fakeNode
	readDirErr map[string]error
	statErr    map[string]error
	infoErr    map[string]error
}

type fakeNode struct {
	name string
	dir  bool
	size int64
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		nodes:      make(map[string]*fakeNode),
		readDirErr: make(map[string]error),
		statErr:    make(map[string]error),
		infoErr:    make(map[string]error),
	}
}

func (f *fakeFS) addDir(p string) {
	f.nodes[p] = &fakeNode{name: path.Base(p), dir: true}
}

func (f *fakeFS) addFile(p string, size int64) {
	f.nodes[p] = &fakeNode{name: path.Base(p), size: size}
}

func (f *fakeFS) Stat(p string) (fs.FileInfo, error) {
	if err := f.statErr[p]; err != nil {
		return nil, err
	}
	n, ok := f.nodes[p]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return &fakeInfo{node: n}, nil
}

func (f *fakeFS) ReadDir(p string) ([]fs.DirEntry, error) {
	if err := f.readDirErr[p]; err != nil {
		return nil, err
	}
	n, ok := f.nodes[p]
	if !ok || !n.dir {
		return nil, fs.ErrNotExist
	}

	var names []string
	for full := range f.nodes {
		if path.Dir(full) == p && full != p {
			names = append(names, full)
		}
	}
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, full := range names {
		entries = append(entries, &fakeEntry{fs: f, full: full, node: f.nodes[full]})
	}
	return entries, nil
}

func (f *fakeFS) Join(dir, name string) string { return path.Join(dir, name) }
func (f *fakeFS) Dir(p string) string          { return path.Dir(p) }
func (f *fakeFS) Base(p string) string         { return path.Base(p) }

type fakeEntry struct {
	fs   *fakeFS
	full string
	node *fakeNode
}

func (e *fakeEntry) Name() string { return e.node.name }
func (e *fakeEntry) IsDir() bool  { return e.node.dir }
func (e *fakeEntry) Type() fs.FileMode {
	if e.node.dir {
		return fs.ModeDir
	}
	return 0
}
func (e *fakeEntry) Info() (fs.FileInfo, error) {
	if err := e.fs.infoErr[e.full]; err != nil {
		return nil, err
	}
	return &fakeInfo{node: e.node}, nil
}

type fakeInfo struct {
	node *fakeNode
}

func (i *fakeInfo) Name() string { return i.node.name }
func (i *fakeInfo) Size() int64  { return i.node.size }
func (i *fakeInfo) Mode() fs.FileMode {
	if i.node.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (i *fakeInfo) ModTime() time.Time { return time.Time{} }
func (i *fakeInfo) IsDir() bool        { return i.node.dir }
func (i *fakeInfo) Sys() any           { return nil }

func TestWalkLocalTree(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.txt"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	tk := task.New(root, 2)
	engine := NewEngine(OSFS{})
	if err := engine.Walk(tk, nil); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if tk.Stats.TotalFiles != 2 || tk.Stats.TotalSize != 150 {
		t.Fatalf("totals = %d files %d bytes, want 2 files 150 bytes",
			tk.Stats.TotalFiles, tk.Stats.TotalSize)
	}
	if tk.Stats.ErrorCount != 0 {
		t.Fatalf("ErrorCount = %d, want 0", tk.Stats.ErrorCount)
	}

	ft := tk.Stats.FileTypes["txt"]
	if ft == nil || ft.Count != 2 || ft.Size != 150 {
		t.Fatalf("txt entry = %+v", ft)
	}

	// The root folder rolls up its whole subtree; the subfolder only its own.
	if got := tk.Stats.Folders[root]; got == nil || got.Size != 150 {
		t.Fatalf("root folder = %+v, want size 150", got)
	}
	if got := tk.Stats.Folders[sub]; got == nil || got.Size != 50 {
		t.Fatalf("sub folder = %+v, want size 50", got)
	}
}

func TestWalkDepthCeiling(t *testing.T) {
	f := newFakeFS()
	f.addDir("/root")
	f.addFile("/root/top.txt", 10)
	f.addDir("/root/deep")
	f.addFile("/root/deep/hidden.txt", 99)

	tk := task.New("/root", 1)
	if err := NewEngine(f).Walk(tk, nil); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if tk.Stats.TotalFiles != 1 || tk.Stats.TotalSize != 10 {
		t.Fatalf("totals = %d files %d bytes, want only the top-level file",
			tk.Stats.TotalFiles, tk.Stats.TotalSize)
	}
	// The ceiling directory is still recorded as a folder.
	if tk.Stats.Folders["/root/deep"] == nil {
		t.Fatal("depth-ceiling directory missing from folders")
	}
}

func TestWalkInvalidRoot(t *testing.T) {
	f := newFakeFS()
	f.addFile("/root/file.txt", 1)
	f.addDir("/root")

	var invalid *InvalidRootError

	tk := task.New("/missing", 2)
	err := NewEngine(f).Walk(tk, nil)
	if !errors.As(err, &invalid) {
		t.Fatalf("missing root: err = %v, want InvalidRootError", err)
	}

	tk = task.New("/root/file.txt", 2)
	err = NewEngine(f).Walk(tk, nil)
	if !errors.As(err, &invalid) {
		t.Fatalf("file root: err = %v, want InvalidRootError", err)
	}
}

func TestWalkUnreadableSubdirIsNonFatal(t *testing.T) {
	f := newFakeFS()
	f.addDir("/root")
	f.addFile("/root/a.txt", 10)
	f.addDir("/root/locked")
	f.readDirErr["/root/locked"] = fs.ErrPermission
	f.addFile("/root/z.txt", 20)

	tk := task.New("/root", 3)
	if err := NewEngine(f).Walk(tk, nil); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if tk.Stats.ErrorCount != 1 {
		t.Fatalf("ErrorCount = %d, want 1", tk.Stats.ErrorCount)
	}
	// Siblings on both sides of the failing directory are still scanned.
	if tk.Stats.TotalFiles != 2 || tk.Stats.TotalSize != 30 {
		t.Fatalf("totals = %d files %d bytes, want 2 files 30 bytes",
			tk.Stats.TotalFiles, tk.Stats.TotalSize)
	}
}

func TestWalkEntryInfoErrorIsNonFatal(t *testing.T) {
	f := newFakeFS()
	f.addDir("/root")
	f.addFile("/root/bad.txt", 10)
	f.infoErr["/root/bad.txt"] = fs.ErrPermission
	f.addFile("/root/good.txt", 20)

	tk := task.New("/root", 1)
	if err := NewEngine(f).Walk(tk, nil); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if tk.Stats.ErrorCount != 1 || tk.Stats.TotalFiles != 1 || tk.Stats.TotalSize != 20 {
		t.Fatalf("stats = %d errors %d files %d bytes",
			tk.Stats.ErrorCount, tk.Stats.TotalFiles, tk.Stats.TotalSize)
	}
}

func TestWalkPreCancelled(t *testing.T) {
	f := newFakeFS()
	f.addDir("/root")
	f.addFile("/root/a.txt", 10)

	tk := task.New("/root", 1)
	tk.RequestCancel()

	emits := 0
	err := NewEngine(f).Walk(tk, func(Progress) { emits++ })
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if tk.Stats.TotalFiles != 0 || emits != 0 {
		t.Fatalf("cancelled walk still did work: %d files, %d emits",
			tk.Stats.TotalFiles, emits)
	}
}

func TestWalkAbortMidScan(t *testing.T) {
	f := newFakeFS()
	f.addDir("/root")
	for i := 0; i < 120; i++ {
		f.addFile(fmt.Sprintf("/root/f%03d.dat", i), 1)
	}

	tk := task.New("/root", 1)
	emits := 0
	err := NewEngine(f).Walk(tk, func(Progress) {
		emits++
		tk.RequestCancel()
	})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	// The cancel lands at the first snapshot (file 50); no snapshot may
	// follow it.
	if emits != 1 {
		t.Fatalf("emits = %d, want 1", emits)
	}
	if tk.Stats.ScannedCount != 50 {
		t.Fatalf("ScannedCount = %d, want 50", tk.Stats.ScannedCount)
	}
}

func TestWalkProgressCadence(t *testing.T) {
	f := newFakeFS()
	f.addDir("/root")
	for i := 0; i < 120; i++ {
		f.addFile(fmt.Sprintf("/root/f%03d.dat", i), 2)
	}

	tk := task.New("/root", 1)
	var snaps []Progress
	if err := NewEngine(f).Walk(tk, func(p Progress) { snaps = append(snaps, p) }); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2 (at files 50 and 100)", len(snaps))
	}
	if snaps[0].ScannedCount != 50 || snaps[1].ScannedCount != 100 {
		t.Fatalf("snapshot counts = %d, %d", snaps[0].ScannedCount, snaps[1].ScannedCount)
	}
	if snaps[0].Percentage != 0 || snaps[1].Percentage != 1 {
		t.Fatalf("percentages = %d, %d", snaps[0].Percentage, snaps[1].Percentage)
	}
	if snaps[0].CurrentPath == "" {
		t.Fatal("snapshot is missing the current path")
	}
	if snaps[1].TotalSize <= snaps[0].TotalSize {
		t.Fatal("total size did not grow between snapshots")
	}
}

func TestEstimatePercentCaps(t *testing.T) {
	if got := estimatePercent(50); got != 0 {
		t.Errorf("estimatePercent(50) = %d", got)
	}
	if got := estimatePercent(5000); got != 50 {
		t.Errorf("estimatePercent(5000) = %d", got)
	}
	if got := estimatePercent(1_000_000); got != 99 {
		t.Errorf("estimatePercent(1000000) = %d", got)
	}
}
