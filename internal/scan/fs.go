package scan

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the filesystem metadata provider the engine walks. Local scans use
// the os-backed implementation below; remote scans satisfy it over SFTP.
// Path helpers are part of the interface because separator and join rules
// belong to the backend, not the engine.
type FS interface {
	// Stat queries metadata for a single path.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists a directory with entry-kind discrimination.
	ReadDir(path string) ([]fs.DirEntry, error)
	// Join joins a directory and an entry name.
	Join(dir, name string) string
	// Dir returns all but the last element of path.
	Dir(path string) string
	// Base returns the last element of path.
	Base(path string) string
}

// OSFS is the local filesystem provider.
type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error)      { return os.Stat(path) }
func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }
func (OSFS) Join(dir, name string) string               { return filepath.Join(dir, name) }
func (OSFS) Dir(path string) string                     { return filepath.Dir(path) }
func (OSFS) Base(path string) string                    { return filepath.Base(path) }
