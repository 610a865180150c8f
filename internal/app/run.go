// Package app wires one invocation together: it resolves settings, walks the
// project, collects findings per file and hands them to the batch reporter or
// the interactive corrector, then derives the exit code.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sourcespell/internal/collect"
	"sourcespell/internal/config"
	"sourcespell/internal/correct"
	"sourcespell/internal/dict"
	"sourcespell/internal/logging"
	"sourcespell/internal/output"
	"sourcespell/internal/report"
	"sourcespell/internal/scan"
	"sourcespell/internal/textutil"
)

const DefaultExcludedWords = ".excluded-words"

type ConfigErr struct{ Msg string }

func (e *ConfigErr) Error() string { return e.Msg }

type ArgErr struct{ Msg string }

func (e *ArgErr) Error() string { return e.Msg }

type runState struct {
	opts     Options
	settings Settings
	base     string
	col      *collect.Collector
	rep      *report.Reporter
	corr     *correct.Corrector
	res      *Result
}

func Run(ctx context.Context, opts Options) (Result, error) {
	log := logging.Named("app")
	res := Result{Events: make([]map[string]any, 0)}
	if opts.Mode == "" {
		opts.Mode = ModeBatch
	}
	if opts.Format == "" {
		opts.Format = "text"
	}
	if err := output.ValidateFormat(opts.Format); err != nil {
		return res, &ArgErr{Msg: err.Error()}
	}
	base, err := ResolveBase(opts.Base, opts.CWD)
	if err != nil {
		return res, err
	}
	settings, err := ResolveSettings(opts, base)
	if err != nil {
		return res, err
	}

	checker := opts.Checker
	if checker == nil {
		fz, err := dict.Load(settings.Dictionaries...)
		if err != nil {
			return res, &ConfigErr{Msg: err.Error()}
		}
		checker = fz
	}
	excluded, err := dict.LoadExcluded(settings.ExcludedWords, settings.CaseSensitiveExclusions)
	if err != nil {
		return res, &ConfigErr{Msg: err.Error()}
	}

	res.Events = append(res.Events, map[string]any{
		"type":             "meta",
		"tool":             "sourcespell",
		"version":          opts.Version,
		"mode":             string(opts.Mode),
		"base":             base,
		"args":             opts.Args,
		"config_path":      settings.ConfigSource,
		"output_format":    opts.Format,
		"encoding":         settings.Encoding,
		"excluded_words":   settings.ExcludedWords,
		"max_suggestions":  settings.MaxSuggestions,
		"exit_code_policy": map[string]int{"ok": 0, "findings_or_errors": 1, "arg_or_config_error": 2},
	})
	for _, rej := range excluded.Rejected() {
		res.Events = append(res.Events, map[string]any{
			"type":   "warning",
			"code":   "excluded_word_malformed",
			"path":   report.DisplayPath(base, settings.ExcludedWords),
			"line":   rej.Line,
			"detail": rej.Reason,
		})
	}

	col := collect.New(checker, excluded)
	col.Extract.MinLength = settings.MinLength
	col.Extract.SkipAcronyms = settings.SkipAcronyms
	col.Extract.SkipIdentifiers = settings.SkipIdentifiers
	col.MaxSuggestions = settings.MaxSuggestions
	col.StringMinLength = settings.StringMinLength
	col.CheckStrings = settings.CheckStrings
	col.Encoding = settings.Encoding

	ignore := append([]string{}, opts.Ignore...)
	ignore = append(ignore, settings.ExcludedWords)
	ignore = append(ignore, settings.Dictionaries...)
	scanRes := scan.Collect(scan.Options{Base: base, Ignore: ignore, Patterns: settings.IgnorePatterns})
	for _, se := range scanRes.Errors {
		res.Events = append(res.Events, buildErrorEvent("input", se.Code, report.DisplayPath(base, se.Path), se.Detail))
		res.HasInputErr = true
	}
	res.Summary.TotalFiles = len(scanRes.Files)
	log.Debug().Str("base", base).Int("files", len(scanRes.Files)).Str("mode", string(opts.Mode)).Msg("walked project")

	st := &runState{opts: opts, settings: settings, base: base, col: col, res: &res, rep: &report.Reporter{Base: base}}
	if opts.Mode == ModeInteractive {
		stdin := opts.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		stdout := opts.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		st.corr = correct.New(excluded, correct.NewKeyReader(stdin), stdout, opts.Color)
		st.corr.Base = base
	}

	for _, p := range scanRes.Files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		st.processFile(ctx, p)
		if res.Summary.Aborted {
			log.Debug().Str("path", p).Msg("run aborted")
			break
		}
	}
	if st.corr != nil {
		st.corr.Finish()
	}

	for _, e := range res.Events {
		if e["type"] == "error" {
			res.Summary.Errors++
		}
	}
	res.ExitCode = decideExitCode(opts.Mode, res)
	res.Events = append(res.Events, buildSummary(opts.Mode, res.Summary, res.ExitCode))
	return res, nil
}

func (st *runState) processFile(ctx context.Context, path string) {
	res := st.res
	rel := report.DisplayPath(st.base, path)
	fileErr := func(fe *collect.FileError) {
		res.HasFileErr = true
		res.Events = append(res.Events, fileErrorEvent(fe, rel))
		if st.corr != nil {
			st.corr.ShowError(fe)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		fileErr(&collect.FileError{Path: path, Kind: collect.IOError, Message: err.Error()})
		return
	}
	if limit := st.settings.MaxFileSizeBytes; limit > 0 && info.Size() > limit {
		res.Summary.Skipped++
		res.Events = append(res.Events, map[string]any{
			"type":   "skip",
			"path":   rel,
			"reason": fmt.Sprintf("file size %d exceeds max_file_size %d", info.Size(), limit),
		})
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fileErr(&collect.FileError{Path: path, Kind: collect.IOError, Message: err.Error()})
		return
	}

	fs, ferr := st.col.Open(ctx, path, data)
	if ferr != nil {
		fileErr(ferr)
		return
	}
	if fs.Skipped != "" {
		res.Summary.Skipped++
		res.Events = append(res.Events, map[string]any{"type": "skip", "path": rel, "reason": fs.Skipped})
		return
	}
	res.Summary.Processed++

	if st.corr == nil {
		n := st.rep.File(fs)
		res.Events = append(res.Events, st.rep.Events...)
		st.rep.Events = st.rep.Events[:0]
		res.Summary.Findings += n
		if n > 0 {
			res.HasFinding = true
		}
		return
	}

	fr := st.corr.File(fs)
	res.Summary.Findings += fr.Findings
	res.Summary.Fixed += fr.Fixed
	res.Summary.Excluded += fr.Excluded
	res.Summary.Unresolved += fr.Unresolved
	if fr.Findings > 0 {
		res.HasFinding = true
	}
	if fr.Findings > 0 || fr.Err != nil {
		res.Events = append(res.Events, map[string]any{
			"type":       "corrected",
			"path":       rel,
			"findings":   fr.Findings,
			"fixed":      fr.Fixed,
			"excluded":   fr.Excluded,
			"unresolved": fr.Unresolved,
			"written":    fr.Written,
		})
	}
	if fr.Err != nil {
		res.HasFileErr = true
		res.Events = append(res.Events, fileErrorEvent(fr.Err, rel))
	}
	if fr.Aborted {
		res.Summary.Aborted = true
	}
}

func buildSummary(mode Mode, s Summary, exitCode int) map[string]any {
	m := map[string]any{
		"type":            "summary",
		"mode":            string(mode),
		"total_files":     s.TotalFiles,
		"processed_files": s.Processed,
		"skipped_files":   s.Skipped,
		"finding_count":   s.Findings,
		"error_count":     s.Errors,
		"exit_code":       exitCode,
	}
	if mode == ModeInteractive {
		m["fixed_count"] = s.Fixed
		m["excluded_count"] = s.Excluded
		m["unresolved_count"] = s.Unresolved
		m["aborted"] = s.Aborted
	}
	return m
}

// decideExitCode is 0 only for a run without findings left standing and
// without errors.
func decideExitCode(mode Mode, res Result) int {
	if res.HasInputErr || res.HasFileErr {
		return 1
	}
	if mode == ModeInteractive {
		if res.Summary.Unresolved > 0 {
			return 1
		}
		return 0
	}
	if res.HasFinding {
		return 1
	}
	return 0
}

// ResolveBase makes base absolute against cwd and checks it is a directory.
func ResolveBase(base, cwd string) (string, error) {
	if strings.TrimSpace(base) == "" {
		base = "."
	}
	if !filepath.IsAbs(base) && cwd != "" {
		base = filepath.Join(cwd, base)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", &ArgErr{Msg: err.Error()}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ArgErr{Msg: fmt.Sprintf("base directory does not exist: %s", abs)}
	}
	if !info.IsDir() {
		return "", &ArgErr{Msg: fmt.Sprintf("base path is not a directory: %s", abs)}
	}
	return abs, nil
}

// ResolveSettings merges the built-in defaults, the project config and the
// command-line options, in that order.
func ResolveSettings(opts Options, base string) (Settings, error) {
	s := Settings{
		MinLength:       1,
		MaxSuggestions:  collect.DefaultMaxSuggestions,
		StringMinLength: collect.DefaultStringMinLength,
		SkipAcronyms:    true,
		SkipIdentifiers: true,
		CheckStrings:    true,
		Encoding:        textutil.EncodingUTF8,
		ExcludedWords:   DefaultExcludedWords,
	}
	cfg, source, err := config.Resolve(opts.ConfigPath, base)
	if err != nil {
		return s, &ConfigErr{Msg: err.Error()}
	}
	s.ConfigSource = source
	if cfg.MinLength != nil {
		s.MinLength = *cfg.MinLength
	}
	if cfg.MaxSuggestions != nil {
		s.MaxSuggestions = *cfg.MaxSuggestions
	}
	if cfg.StringMinLength != nil {
		s.StringMinLength = *cfg.StringMinLength
	}
	if cfg.SkipAcronyms != nil {
		s.SkipAcronyms = *cfg.SkipAcronyms
	}
	if cfg.SkipIdentifiers != nil {
		s.SkipIdentifiers = *cfg.SkipIdentifiers
	}
	if cfg.CheckStrings != nil {
		s.CheckStrings = *cfg.CheckStrings
	}
	if cfg.CaseSensitiveExclusions != nil {
		s.CaseSensitiveExclusions = *cfg.CaseSensitiveExclusions
	}
	if cfg.Encoding != "" {
		s.Encoding = cfg.Encoding
	}
	if cfg.ExcludedWords != "" {
		s.ExcludedWords = cfg.ExcludedWords
	}
	s.Dictionaries = append(s.Dictionaries, cfg.Dictionaries...)
	s.IgnorePatterns = cfg.IgnorePatterns
	if s.MaxFileSizeBytes, err = config.ParseSizeToBytes(cfg.MaxFileSize); err != nil {
		return s, &ConfigErr{Msg: err.Error()}
	}

	if opts.MinLength != nil {
		s.MinLength = *opts.MinLength
	}
	if opts.MaxSuggestions != nil {
		s.MaxSuggestions = *opts.MaxSuggestions
	}
	if opts.Encoding != "" {
		s.Encoding = opts.Encoding
	}
	if opts.ExcludedWords != "" {
		s.ExcludedWords = opts.ExcludedWords
	}
	s.Dictionaries = append(s.Dictionaries, opts.Dictionaries...)

	if s.MinLength < 1 {
		return s, &ArgErr{Msg: fmt.Sprintf("min length must be >= 1, got %d", s.MinLength)}
	}
	if s.MaxSuggestions < 0 {
		return s, &ArgErr{Msg: fmt.Sprintf("max suggestions must be >= 0, got %d", s.MaxSuggestions)}
	}
	if err := textutil.ValidateEncoding(s.Encoding); err != nil {
		return s, &ArgErr{Msg: err.Error()}
	}
	s.Encoding = textutil.NormalizeEncoding(s.Encoding)
	s.ExcludedWords = resolveIn(base, s.ExcludedWords)
	for i, d := range s.Dictionaries {
		s.Dictionaries[i] = resolveIn(base, d)
	}
	return s, nil
}

func resolveIn(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
