package dict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"sourcespell/internal/logging"
)

var errBlank = errors.New("blank entry")

// RejectedEntry is an excluded-words line that could not be used.
type RejectedEntry struct {
	Line   int
	Text   string
	Reason string
}

// Excluded is the run-wide set of words never reported as misspelled. It is
// case-folded unless created case sensitive. Additions are appended to the
// backing file straight away.
type Excluded struct {
	path          string
	caseSensitive bool
	caser         cases.Caser
	words         map[string]struct{}
	rejected      []RejectedEntry
}

// NewExcluded returns an empty set persisted to path ("" keeps it in memory).
func NewExcluded(path string, caseSensitive bool) *Excluded {
	return &Excluded{
		path:          path,
		caseSensitive: caseSensitive,
		caser:         cases.Fold(),
		words:         map[string]struct{}{},
	}
}

// LoadExcluded reads the excluded-words file at path. A missing file yields
// an empty set. Blank lines are skipped silently; malformed entries are
// logged, recorded in Rejected and skipped.
func LoadExcluded(path string, caseSensitive bool) (*Excluded, error) {
	ex := NewExcluded(path, caseSensitive)
	if path == "" {
		return ex, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ex, nil
		}
		return nil, fmt.Errorf("reading excluded words: %w", err)
	}
	defer f.Close()
	if err := ex.read(f); err != nil {
		return nil, fmt.Errorf("reading excluded words: %w", err)
	}
	return ex, nil
}

func (e *Excluded) read(r io.Reader) error {
	log := logging.Named("dict")
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		w, err := validateEntry(scanner.Text())
		if errors.Is(err, errBlank) {
			continue
		}
		if err != nil {
			e.rejected = append(e.rejected, RejectedEntry{Line: line, Text: scanner.Text(), Reason: err.Error()})
			log.Warn().Str("path", e.path).Int("line", line).Str("reason", err.Error()).Msg("skipping malformed excluded word")
			continue
		}
		e.words[e.key(w)] = struct{}{}
	}
	return scanner.Err()
}

func (e *Excluded) key(word string) string {
	w := strings.ReplaceAll(word, "’", "'")
	if e.caseSensitive {
		return w
	}
	return e.caser.String(w)
}

// Contains reports whether word is excluded.
func (e *Excluded) Contains(word string) bool {
	_, ok := e.words[e.key(word)]
	return ok
}

// Len returns the number of excluded words.
func (e *Excluded) Len() int { return len(e.words) }

// Path returns the backing file, if any.
func (e *Excluded) Path() string { return e.path }

// Rejected returns the malformed entries skipped while loading.
func (e *Excluded) Rejected() []RejectedEntry { return e.rejected }

// Add excludes word for the rest of the run and appends it to the backing
// file. The in-memory exclusion holds even when the append fails.
func (e *Excluded) Add(word string) error {
	w, err := validateEntry(word)
	if err != nil {
		return fmt.Errorf("cannot exclude %q: %w", word, err)
	}
	k := e.key(w)
	if _, ok := e.words[k]; ok {
		return nil
	}
	e.words[k] = struct{}{}
	if e.path == "" {
		return nil
	}
	return appendLine(e.path, w)
}

func appendLine(path, word string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("persisting excluded word: %w", err)
	}
	prefix := ""
	if b, err := os.ReadFile(path); err == nil && len(b) > 0 && b[len(b)-1] != '\n' {
		prefix = "\n"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("persisting excluded word: %w", err)
	}
	if _, err := f.WriteString(prefix + word + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("persisting excluded word: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("persisting excluded word: %w", err)
	}
	return nil
}
