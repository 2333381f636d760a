package stats

import (
	"fmt"
	"testing"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.JPG", "jpg"},
		{"archive.tar.gz", "gz"},
		{"Makefile", NoExtension},
		{"trailing.", NoExtension},
		{".bashrc", "bashrc"},
		{"", NoExtension},
	}
	for _, tt := range tests {
		if got := ExtensionOf(tt.name); got != tt.want {
			t.Errorf("ExtensionOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe("jpg"); got != "JPEG Image" {
		t.Errorf("Describe(jpg) = %q", got)
	}
	if got := Describe(NoExtension); got != "No Extension" {
		t.Errorf("Describe(%s) = %q", NoExtension, got)
	}
	// Unknown extensions fall back to their uppercased form.
	if got := Describe("xyzzy"); got != "XYZZY" {
		t.Errorf("Describe(xyzzy) = %q", got)
	}
}

func TestMatchApplication(t *testing.T) {
	tests := []struct {
		path     string
		ext      string
		wantName string
		wantOK   bool
	}{
		{"/data/setup.exe", "exe", "setup", true},
		{"/data/installer.msi", "msi", "installer", true},
		{"C:\\Program Files\\Tool\\readme.txt", "txt", "readme", true},
		{"/Users/x/Applications/notes.txt", "txt", "notes", true},
		{"/home/x/AppData/cache.db", "db", "cache", true},
		{"/home/x/docs/report.pdf", "pdf", "", false},
		{"/data/archive.tar.gz", "gz", "", false},
	}
	for _, tt := range tests {
		name, ok := MatchApplication(tt.path, tt.ext)
		if ok != tt.wantOK || name != tt.wantName {
			t.Errorf("MatchApplication(%q, %q) = (%q, %v), want (%q, %v)",
				tt.path, tt.ext, name, ok, tt.wantName, tt.wantOK)
		}
	}
}

func TestAggregatorAccumulates(t *testing.T) {
	a := NewAggregator()

	a.RecordFile(100)
	a.RecordFile(50)
	a.RecordError()

	a.RecordFileType("txt", 100)
	a.RecordFileType("txt", 50)
	a.RecordFolderSize("data", "/data", 100)
	a.RecordFolderSize("data", "/data", 50)
	a.RecordApplication("setup", "/data/setup.exe", 30)
	a.RecordApplication("setup", "/other/setup.exe", 70)

	if a.TotalFiles != 2 || a.TotalSize != 150 || a.ScannedCount != 2 || a.ErrorCount != 1 {
		t.Fatalf("counters = %d files %d bytes %d scanned %d errors",
			a.TotalFiles, a.TotalSize, a.ScannedCount, a.ErrorCount)
	}

	ft := a.FileTypes["txt"]
	if ft == nil || ft.Count != 2 || ft.Size != 150 || ft.Description != "Plain Text" {
		t.Fatalf("file type entry = %+v", ft)
	}

	fo := a.Folders["/data"]
	if fo == nil || fo.Size != 150 || fo.Name != "data" {
		t.Fatalf("folder entry = %+v", fo)
	}

	// Same derived name accumulates; the representative path is the first seen.
	app := a.Applications["setup"]
	if app == nil || app.Size != 100 || app.Path != "/data/setup.exe" {
		t.Fatalf("app entry = %+v", app)
	}
}

func TestEnsureFolderIsIdempotent(t *testing.T) {
	a := NewAggregator()
	e1 := a.EnsureFolder("data", "/data")
	e2 := a.EnsureFolder("data", "/data")
	if e1 != e2 {
		t.Fatal("EnsureFolder created a second entry for the same path")
	}
}

func TestFormatRanksAndTruncates(t *testing.T) {
	a := NewAggregator()
	for i := 0; i < 30; i++ {
		a.RecordFileType(fmt.Sprintf("ext%02d", i), int64(i+1))
		a.RecordFolderSize(fmt.Sprintf("dir%02d", i), fmt.Sprintf("/d/%02d", i), int64(i+1))
	}

	r := Format(a)
	if len(r.FileTypes) != maxRanked {
		t.Fatalf("len(FileTypes) = %d, want %d", len(r.FileTypes), maxRanked)
	}
	if len(r.Folders) != maxRanked {
		t.Fatalf("len(Folders) = %d, want %d", len(r.Folders), maxRanked)
	}
	for i := 1; i < len(r.FileTypes); i++ {
		if r.FileTypes[i].Size > r.FileTypes[i-1].Size {
			t.Fatalf("FileTypes not sorted by size at %d", i)
		}
	}
	if r.FileTypes[0].Size != 30 {
		t.Fatalf("largest file type size = %d, want 30", r.FileTypes[0].Size)
	}
}

func TestFormatDropsNonPositiveSizes(t *testing.T) {
	a := NewAggregator()
	a.RecordFileType("txt", 0)
	a.EnsureFolder("empty", "/empty")

	r := Format(a)
	if len(r.FileTypes) != 0 {
		t.Errorf("zero-size file type survived: %+v", r.FileTypes)
	}
	if len(r.Folders) != 0 {
		t.Errorf("zero-size folder survived: %+v", r.Folders)
	}
}

func TestFormatAppPlaceholder(t *testing.T) {
	r := Format(NewAggregator())
	if len(r.Applications) != 1 {
		t.Fatalf("len(Applications) = %d, want 1", len(r.Applications))
	}
	got := r.Applications[0]
	if got.Name != "unrecognized" || got.Size != 1 {
		t.Fatalf("placeholder = %+v", got)
	}
}
