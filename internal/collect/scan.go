package collect

import (
	"sourcespell/internal/extract"
	"sourcespell/internal/textutil"
	"sourcespell/internal/tokenize"
)

// FileScan walks the findings of one opened file.
type FileScan struct {
	Path     string
	Content  string
	Encoding string
	Language string
	// Hash is the SHA-256 of the raw bytes as read.
	Hash string
	// Skipped explains why the file has nothing to check ("empty",
	// "binary"); empty otherwise.
	Skipped string

	c       *Collector
	spans   []tokenize.Span
	spanIdx int
	cur     tokenize.Span
	words   []extract.Word
	wordIdx int
	last    int
	started bool
	lines   *textutil.LineIndex
}

// Next returns the next finding. Offsets are strictly ascending.
func (s *FileScan) Next() (Finding, bool) {
	for {
		for s.wordIdx < len(s.words) {
			w := s.words[s.wordIdx]
			s.wordIdx++
			off := s.cur.Start + w.Offset
			if s.started && off <= s.last {
				continue
			}
			sugg, bad := s.c.check(w.Text)
			if !bad {
				continue
			}
			s.started = true
			s.last = off
			return Finding{Path: s.Path, Offset: off, Word: w.Text, Suggestions: sugg, Kind: s.cur.Kind}, true
		}
		if s.spanIdx >= len(s.spans) {
			return Finding{}, false
		}
		s.cur = s.spans[s.spanIdx]
		s.spanIdx++
		s.words = extract.Words(s.cur, s.c.Extract)
		s.wordIdx = 0
	}
}

// All drains the scan.
func (s *FileScan) All() []Finding {
	var out []Finding
	for {
		f, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

// Lines returns the line index of the decoded content, built on first use.
func (s *FileScan) Lines() *textutil.LineIndex {
	if s.lines == nil {
		s.lines = textutil.NewLineIndex(s.Content)
	}
	return s.lines
}

// Position converts a byte offset into a 1-based line and rune column.
func (s *FileScan) Position(off int) textutil.Position {
	return s.Lines().Position(off)
}
