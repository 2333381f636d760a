package stats

import (
	"path/filepath"
	"strings"
)

// appExtensions is the fixed set of installer/executable suffixes that
// mark a file as an application indicator on their own.
var appExtensions = map[string]struct{}{
	"exe":      {},
	"msi":      {},
	"app":      {},
	"dmg":      {},
	"pkg":      {},
	"deb":      {},
	"rpm":      {},
	"appimage": {},
	"apk":      {},
	"bat":      {},
	"com":      {},
}

// appPathMarkers are case-insensitive substrings of well-known
// application directories.
var appPathMarkers = []string{
	"program files",
	"applications",
	"appdata",
	"system32",
}

// MatchApplication reports whether the file at path with the given
// lowercase extension counts as an application indicator, and if so
// returns the derived application name (file name without extension).
func MatchApplication(path, ext string) (string, bool) {
	matched := false
	if _, ok := appExtensions[ext]; ok {
		matched = true
	} else {
		lower := strings.ToLower(path)
		for _, marker := range appPathMarkers {
			if strings.Contains(lower, marker) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return "", false
	}

	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base, true
}
