package stats

// NoExtension is the histogram key for files without an extension.
const NoExtension = "no-extension"

// FileTypeEntry accumulates count and size for one file extension.
type FileTypeEntry struct {
	Extension   string `json:"extension"`
	Description string `json:"description"`
	Count       int64  `json:"count"`
	Size        int64  `json:"size"`
}

// FolderEntry accumulates the cumulative size of every successfully
// stat'd file within the folder's subtree.
type FolderEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// AppEntry accumulates size attributed to one derived application name.
type AppEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Aggregator is the mutable accumulator for a single scan task. It is
// exclusively owned by that task's engine invocation, so no locking is
// needed; abort requests never touch it.
type Aggregator struct {
	TotalFiles   int64
	TotalSize    int64
	ScannedCount int64
	ErrorCount   int64

	FileTypes    map[string]*FileTypeEntry
	Folders      map[string]*FolderEntry
	Applications map[string]*AppEntry
}

// NewAggregator returns an empty aggregator with all maps allocated.
func NewAggregator() *Aggregator {
	return &Aggregator{
		FileTypes:    make(map[string]*FileTypeEntry),
		Folders:      make(map[string]*FolderEntry),
		Applications: make(map[string]*AppEntry),
	}
}

// RecordFile bumps the global counters for one successfully stat'd file.
func (a *Aggregator) RecordFile(size int64) {
	a.TotalFiles++
	a.TotalSize += size
	a.ScannedCount++
}

// RecordError counts one non-fatal per-entry failure.
func (a *Aggregator) RecordError() {
	a.ErrorCount++
}

// RecordFileType attributes one file of the given extension. The entry is
// created on first sight with a human description.
func (a *Aggregator) RecordFileType(ext string, size int64) {
	e, ok := a.FileTypes[ext]
	if !ok {
		e = &FileTypeEntry{Extension: ext, Description: Describe(ext)}
		a.FileTypes[ext] = e
	}
	e.Count++
	e.Size += size
}

// EnsureFolder creates a folder entry if one does not exist yet. Folders
// are created lazily, either when first listed or when first needed as a
// file's ancestor.
func (a *Aggregator) EnsureFolder(name, path string) *FolderEntry {
	e, ok := a.Folders[path]
	if !ok {
		e = &FolderEntry{Name: name, Path: path}
		a.Folders[path] = e
	}
	return e
}

// RecordFolderSize adds size to the folder's cumulative total, creating
// the entry if absent.
func (a *Aggregator) RecordFolderSize(name, path string, size int64) {
	a.EnsureFolder(name, path).Size += size
}

// RecordApplication adds size to the application bucket for name. Entries
// for the same derived name accumulate additively; the representative
// path is the first match seen.
func (a *Aggregator) RecordApplication(name, path string, size int64) {
	e, ok := a.Applications[name]
	if !ok {
		e = &AppEntry{Name: name, Path: path}
		a.Applications[name] = e
	}
	e.Size += size
}
