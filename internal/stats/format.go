package stats

import "sort"

// maxRanked bounds each category list delivered to clients.
const maxRanked = 20

// Result is the post-processed snapshot delivered on scan completion.
type Result struct {
	TotalFiles   int64            `json:"totalFiles"`
	TotalSize    int64            `json:"totalSize"`
	FileTypes    []*FileTypeEntry `json:"fileTypes"`
	Folders      []*FolderEntry   `json:"folders"`
	Applications []*AppEntry      `json:"applications"`
	ErrorCount   int64            `json:"errorCount"`
}

// Format ranks and truncates the aggregator's three category maps into
// bounded top-N lists. Entries with non-positive size are dropped. An
// empty application list gets a single placeholder entry so downstream
// consumers never render an empty series.
func Format(a *Aggregator) *Result {
	r := &Result{
		TotalFiles:   a.TotalFiles,
		TotalSize:    a.TotalSize,
		ErrorCount:   a.ErrorCount,
		FileTypes:    make([]*FileTypeEntry, 0, len(a.FileTypes)),
		Folders:      make([]*FolderEntry, 0, len(a.Folders)),
		Applications: make([]*AppEntry, 0, len(a.Applications)),
	}

	for _, e := range a.FileTypes {
		if e.Size > 0 {
			r.FileTypes = append(r.FileTypes, e)
		}
	}
	sort.Slice(r.FileTypes, func(i, j int) bool { return r.FileTypes[i].Size > r.FileTypes[j].Size })
	if len(r.FileTypes) > maxRanked {
		r.FileTypes = r.FileTypes[:maxRanked]
	}

	for _, e := range a.Folders {
		if e.Size > 0 {
			r.Folders = append(r.Folders, e)
		}
	}
	sort.Slice(r.Folders, func(i, j int) bool { return r.Folders[i].Size > r.Folders[j].Size })
	if len(r.Folders) > maxRanked {
		r.Folders = r.Folders[:maxRanked]
	}

	for _, e := range a.Applications {
		if e.Size > 0 {
			r.Applications = append(r.Applications, e)
		}
	}
	sort.Slice(r.Applications, func(i, j int) bool { return r.Applications[i].Size > r.Applications[j].Size })
	if len(r.Applications) > maxRanked {
		r.Applications = r.Applications[:maxRanked]
	}
	if len(r.Applications) == 0 {
		r.Applications = append(r.Applications, &AppEntry{Name: "unrecognized", Size: 1})
	}

	return r
}
