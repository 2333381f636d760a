// Package drives enumerates candidate scan roots by shelling out to
// platform tools, with a hardcoded fallback so callers always get a
// non-empty list.
package drives

import "os"

// Drive is one candidate storage root.
type Drive struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// List returns the volumes visible on this machine. Enumeration failures
// are swallowed: the fallback list is returned instead, never an empty
// slice.
func List() []Drive {
	if ds := enumerate(); len(ds) > 0 {
		return ds
	}
	return fallback()
}

func fallback() []Drive {
	ds := []Drive{{Name: "Root", Path: "/", Kind: "local"}}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		ds = append(ds, Drive{Name: "Home", Path: home, Kind: "local"})
	}
	return ds
}
