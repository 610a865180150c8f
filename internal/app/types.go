package app

import (
	"io"

	"sourcespell/internal/dict"
)

type Mode string

const (
	ModeBatch       Mode = "batch"
	ModeInteractive Mode = "interactive"
)

// Options is one invocation. Pointer and empty-string fields are unset
// unless given on the command line; unset fields fall back to the project
// config and then to the built-in defaults.
type Options struct {
	Mode          Mode
	Base          string
	CWD           string
	Ignore        []string
	ExcludedWords string
	Encoding      string
	Dictionaries  []string
	ConfigPath    string
	Format        string

	MaxSuggestions *int
	MinLength      *int

	Version string
	Args    []string

	// Interactive mode I/O.
	Stdin  io.Reader
	Stdout io.Writer
	Color  bool

	// Checker replaces the word-list dictionary when set.
	Checker dict.Checker
}

type Summary struct {
	TotalFiles int  `json:"total_files"`
	Processed  int  `json:"processed_files"`
	Skipped    int  `json:"skipped_files"`
	Findings   int  `json:"finding_count"`
	Fixed      int  `json:"fixed_count"`
	Excluded   int  `json:"excluded_count"`
	Unresolved int  `json:"unresolved_count"`
	Errors     int  `json:"error_count"`
	Aborted    bool `json:"aborted"`
}

type Result struct {
	Events      []map[string]any
	Summary     Summary
	ExitCode    int
	HasFinding  bool
	HasFileErr  bool
	HasInputErr bool
}

// Settings is the effective configuration after defaults, project config
// and flags are merged.
type Settings struct {
	MinLength               int
	MaxSuggestions          int
	StringMinLength         int
	SkipAcronyms            bool
	SkipIdentifiers         bool
	CheckStrings            bool
	CaseSensitiveExclusions bool
	Encoding                string
	ExcludedWords           string
	Dictionaries            []string
	IgnorePatterns          []string
	MaxFileSizeBytes        int64
	ConfigSource            string
}
