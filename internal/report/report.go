// Package report is the batch consumer of findings. It turns every finding of
// a file into a finding event with its line and column and never touches the
// file itself.
package report

import (
	"path/filepath"

	"sourcespell/internal/collect"
)

// Reporter accumulates finding events for a run.
type Reporter struct {
	// Base is trimmed from reported paths.
	Base     string
	Events   []map[string]any
	Findings int
}

// File drains scan and returns the number of findings it held.
func (r *Reporter) File(scan *collect.FileScan) int {
	n := 0
	for {
		f, ok := scan.Next()
		if !ok {
			break
		}
		r.Events = append(r.Events, FindingEvent(scan, f, r.Base))
		n++
	}
	r.Findings += n
	return n
}

// FindingEvent builds the event for f. Lines and columns are 1-based; columns
// count runes.
func FindingEvent(scan *collect.FileScan, f collect.Finding, base string) map[string]any {
	pos := scan.Position(f.Offset)
	sugg := f.Suggestions
	if sugg == nil {
		sugg = []string{}
	}
	return map[string]any{
		"type":        "finding",
		"path":        DisplayPath(base, f.Path),
		"line":        pos.Line,
		"column":      pos.Column,
		"offset":      f.Offset,
		"word":        f.Word,
		"kind":        f.Kind.String(),
		"suggestions": sugg,
	}
}

// DisplayPath returns path relative to base when it lies inside it.
func DisplayPath(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return path
	}
	return filepath.ToSlash(rel)
}
