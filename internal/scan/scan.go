// Package scan enumerates the files of a project in stable order, applying
// the default ignore globs, user ignore entries and the project .gitignore.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultIgnorePatterns skips common binary formats and hidden entries.
var DefaultIgnorePatterns = []string{
	"*.gif", "*.jpeg", "*.jpg", "*.bmp", "*.png", "*.exe", "*.dll",
	"*.webp", "*.pyc", "*.zip", "*.gz", "*/.*",
}

type Options struct {
	Base string
	// Ignore holds files, directories or globs to skip. Relative paths are
	// resolved against Base; relative globs match at any depth.
	Ignore []string
	// Patterns are extra globs matched like DefaultIgnorePatterns.
	Patterns       []string
	NoDefaults     bool
	NoGitIgnore    bool
	FollowSymlinks bool
}

type ScanResult struct {
	Files  []string
	Errors []ScanError
}

type ScanError struct {
	Code   string
	Path   string
	Detail string
}

type matcher struct {
	base     string
	patterns []string
	ignore   []string
	git      *ignore.GitIgnore
}

// Collect walks opts.Base and returns the absolute paths of every file that
// is not ignored, sorted.
func Collect(opts Options) ScanResult {
	var errs []ScanError
	base, err := filepath.Abs(opts.Base)
	if err != nil {
		return ScanResult{Errors: []ScanError{{Code: "input_abs_failed", Path: opts.Base, Detail: err.Error()}}}
	}
	info, err := os.Stat(base)
	if err != nil {
		if os.IsNotExist(err) {
			return ScanResult{Errors: []ScanError{{Code: "input_path_not_found", Path: base, Detail: "directory does not exist"}}}
		}
		return ScanResult{Errors: []ScanError{{Code: "input_stat_failed", Path: base, Detail: err.Error()}}}
	}
	if !info.IsDir() {
		return ScanResult{Errors: []ScanError{{Code: "input_not_directory", Path: base, Detail: "not a directory"}}}
	}

	m := newMatcher(base, opts)
	var files []string
	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, ScanError{Code: "walk_error", Path: path, Detail: err.Error()})
			return nil
		}
		if path == base {
			return nil
		}
		if d.IsDir() {
			if m.ignored(path, true) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				return nil
			}
			st, serr := os.Stat(path)
			if serr != nil {
				errs = append(errs, ScanError{Code: "symlink_broken", Path: path, Detail: serr.Error()})
				return nil
			}
			if st.IsDir() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		if m.ignored(path, false) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return ScanResult{Files: files, Errors: errs}
}

func newMatcher(base string, opts Options) *matcher {
	m := &matcher{base: base}
	if !opts.NoDefaults {
		m.patterns = append(m.patterns, DefaultIgnorePatterns...)
	}
	m.patterns = append(m.patterns, opts.Patterns...)
	for _, in := range opts.Ignore {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		// Relative globs match at any depth below the base, like the
		// configured patterns.
		if !filepath.IsAbs(in) && isGlob(in) {
			m.patterns = append(m.patterns, filepath.ToSlash(filepath.Clean(in)))
			continue
		}
		if !filepath.IsAbs(in) {
			in = filepath.Join(base, in)
		}
		m.ignore = append(m.ignore, filepath.ToSlash(filepath.Clean(in)))
	}
	if !opts.NoGitIgnore {
		m.git = loadGitignore(base)
	}
	return m
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

func (m *matcher) ignored(absPath string, isDir bool) bool {
	slashed := filepath.ToSlash(absPath)
	for _, p := range m.ignore {
		if p == slashed {
			return true
		}
		if ok, err := doublestar.Match(p, slashed); err == nil && ok {
			return true
		}
	}
	rel, err := filepath.Rel(m.base, absPath)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range m.patterns {
		if matchPattern(p, rel) {
			return true
		}
	}
	if m.git != nil {
		if m.git.MatchesPath(rel) {
			return true
		}
		if isDir && m.git.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}

// matchPattern matches a glob against a slash-separated path relative to the
// project. Globs without a slash look at the base name only; the others may
// match at any depth.
func matchPattern(p, rel string) bool {
	if !strings.Contains(p, "/") {
		ok, err := doublestar.Match(p, pathBase(rel))
		return err == nil && ok
	}
	for _, cand := range []string{rel, "./" + rel} {
		if ok, err := doublestar.Match(p, cand); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match("**/"+p, cand); err == nil && ok {
			return true
		}
	}
	return false
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
