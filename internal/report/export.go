// Package report writes formatted scan results to disk for the headless
// one-shot mode.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sadopc/diskview/internal/stats"
)

// Report is the headless export envelope around a scan result.
type Report struct {
	Progname  string        `json:"progname"`
	Version   string        `json:"version"`
	Timestamp int64         `json:"timestamp"`
	Root      string        `json:"root"`
	Depth     int           `json:"depth"`
	Duration  int64         `json:"duration"`
	Stats     *stats.Result `json:"stats"`
}

// WriteJSON writes the report to path, or to stdout when path is "-".
// File targets are written to a temp file and atomically renamed on
// success, so a partial file is never left behind on error.
func WriteJSON(rep *Report, path string) (retErr error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".diskview-export-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create export file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if retErr != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// On Windows, Rename cannot replace an existing destination.
		if runtime.GOOS != "windows" {
			return err
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("cannot replace export file %s: %w", path, err)
		}
		return os.Rename(tmpPath, path)
	}
	return nil
}
