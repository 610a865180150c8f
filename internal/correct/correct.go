// Package correct is the interactive corrector. It walks the findings of one
// file at a time, asks for a keystroke per finding and writes the accepted
// replacements back when the file is done.
package correct

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"sourcespell/internal/collect"
	"sourcespell/internal/dict"
	"sourcespell/internal/logging"
)

type State int

const (
	AwaitingFinding State = iota
	PresentingSuggestions
	AwaitingKeystroke
	FileDone
	Aborted
	Completed
)

func (s State) String() string {
	switch s {
	case AwaitingFinding:
		return "awaiting_finding"
	case PresentingSuggestions:
		return "presenting_suggestions"
	case AwaitingKeystroke:
		return "awaiting_keystroke"
	case FileDone:
		return "file_done"
	case Aborted:
		return "aborted"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action is what a keystroke asks for.
type Action int

const (
	Skip Action = iota
	Replace
	Exclude
	NextFile
	Quit
	Invalid
)

// ParseKey maps a keystroke onto an action. For Replace the second result is
// the suggestion index. Digits outside the suggestion range are Invalid.
func ParseKey(key rune, suggestions int) (Action, int) {
	switch {
	case key >= '0' && key <= '9':
		idx := int(key - '0')
		if idx >= suggestions || idx >= maxChoices {
			return Invalid, 0
		}
		return Replace, idx
	case key == 'a':
		return Exclude, 0
	case key == 'n':
		return NextFile, 0
	case key == 'q', key == keyInterrupt:
		return Quit, 0
	}
	return Skip, 0
}

// FileResult is the outcome of correcting one file.
type FileResult struct {
	Path string
	// Findings counts the findings shown.
	Findings int
	// Fixed counts replacements that reached the disk.
	Fixed    int
	Excluded int
	// Unresolved counts findings neither fixed nor excluded, including those
	// passed over by n, discarded by q or lost to a failed write.
	Unresolved int
	Written    bool
	Aborted    bool
	Err        *collect.FileError
}

// Corrector holds the state shared by every file of one run.
type Corrector struct {
	Excluded *dict.Excluded
	Keys     KeyReader
	Out      io.Writer
	Color    bool
	// Base is trimmed from paths shown in file headers.
	Base string

	render renderer
	state  State
}

func New(excluded *dict.Excluded, keys KeyReader, out io.Writer, color bool) *Corrector {
	return &Corrector{Excluded: excluded, Keys: keys, Out: out, Color: color}
}

// State is AwaitingFinding between files, Aborted after q and Completed once
// Finish is called on a run that was not aborted.
func (c *Corrector) State() State { return c.state }

// Finish marks the run complete.
func (c *Corrector) Finish() {
	if c.state != Aborted {
		c.state = Completed
	}
}

func (c *Corrector) init() {
	c.render = renderer{w: c.Out, color: c.Color}
}

func (c *Corrector) displayName(path string) string {
	if c.Base == "" {
		return path
	}
	if rel, err := filepath.Rel(c.Base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// File runs the correction loop over scan. Nothing is written unless at least
// one replacement was accepted, and never when the run is aborted.
func (c *Corrector) File(scan *collect.FileScan) FileResult {
	c.init()
	log := logging.Named("correct")
	res := FileResult{Path: scan.Path}
	buf := NewEditBuffer(scan.Content)
	headerShown := false
	var cur collect.Finding

	state := AwaitingFinding
	defer func() {
		if state == Aborted {
			c.state = Aborted
		} else {
			c.state = AwaitingFinding
		}
	}()
	for {
		switch state {
		case AwaitingFinding:
			f, ok := scan.Next()
			if !ok {
				state = FileDone
				continue
			}
			cur = f
			res.Findings++
			state = PresentingSuggestions

		case PresentingSuggestions:
			if !headerShown {
				c.render.fileHeader(c.displayName(scan.Path))
				headerShown = true
			}
			c.render.finding(scan, cur)
			state = AwaitingKeystroke

		case AwaitingKeystroke:
			key, err := c.Keys.ReadKey()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Warn().Err(err).Msg("reading key")
				}
				key = 'q'
			}
			c.render.echo(key)
			action, idx := ParseKey(key, len(cur.Suggestions))
			switch action {
			case Replace:
				if err := buf.Record(cur.Offset, len(cur.Word), cur.Suggestions[idx]); err != nil {
					log.Error().Err(err).Str("path", scan.Path).Msg("recording replacement")
					res.Unresolved++
				}
				state = AwaitingFinding
			case Exclude:
				if err := c.Excluded.Add(cur.Word); err != nil {
					log.Warn().Err(err).Str("word", cur.Word).Msg("excluding word")
					c.render.notice(err.Error())
				}
				res.Excluded++
				state = AwaitingFinding
			case NextFile:
				res.Unresolved++
				res.Unresolved += len(scan.All())
				state = FileDone
			case Quit:
				state = Aborted
			case Invalid:
				fmt.Fprintln(c.Out, "Invalid selection, please try again.")
				fmt.Fprint(c.Out, "---> ")
			default:
				res.Unresolved++
				state = AwaitingFinding
			}

		case FileDone:
			if buf.Len() == 0 {
				return res
			}
			if err := writeAtomic(scan.Path, buf.String(), scan.Encoding, scan.Hash); err != nil {
				log.Error().Err(err).Str("path", scan.Path).Msg("writing corrections")
				res.Err = &collect.FileError{Path: scan.Path, Kind: collect.IOError, Message: err.Error()}
				res.Unresolved += buf.Len()
				c.ShowError(res.Err)
				return res
			}
			log.Debug().Str("path", scan.Path).Int("replacements", buf.Len()).Msg("wrote corrections")
			res.Fixed = buf.Len()
			res.Written = true
			return res

		case Aborted:
			res.Aborted = true
			res.Unresolved += 1 + buf.Len()
			buf.Discard()
			return res
		}
	}
}

// ShowError prints a file error and waits for a key before moving on.
func (c *Corrector) ShowError(fe *collect.FileError) {
	c.init()
	c.render.fileHeader(c.displayName(fe.Path))
	c.render.notice(fmt.Sprintf("%s: %s", kindLabel(fe.Kind), fe.Message))
	fmt.Fprint(c.Out, "Press any key to continue.")
	key, err := c.Keys.ReadKey()
	if err != nil {
		fmt.Fprintln(c.Out)
		return
	}
	c.render.echo(key)
}

func kindLabel(k collect.ErrorKind) string {
	switch k {
	case collect.DecodeError:
		return "decode error"
	case collect.ParseError:
		return "parse error"
	case collect.IOError:
		return "io error"
	}
	return string(k)
}
