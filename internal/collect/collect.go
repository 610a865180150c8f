// Package collect turns one file into the ordered stream of misspellings it
// contains. It decodes the content, hands it to the tokenizer, extracts words
// from every span and asks the dictionary about each one that is not
// excluded.
package collect

import (
	"context"
	"errors"
	"fmt"

	"sourcespell/internal/dict"
	"sourcespell/internal/extract"
	"sourcespell/internal/logging"
	"sourcespell/internal/textutil"
	"sourcespell/internal/tokenize"
)

const (
	DefaultMaxSuggestions  = 5
	DefaultStringMinLength = 10
)

// Finding is one misspelled word. Offset is the byte offset of Word in the
// decoded content of Path.
type Finding struct {
	Path        string
	Offset      int
	Word        string
	Suggestions []string
	Kind        tokenize.Kind
}

// End returns the offset just past the word.
func (f Finding) End() int { return f.Offset + len(f.Word) }

type ErrorKind string

const (
	DecodeError ErrorKind = "decode_error"
	ParseError  ErrorKind = "parse_error"
	IOError     ErrorKind = "io_error"
)

// FileError is a per-file failure. It never stops the run.
type FileError struct {
	Path    string
	Kind    ErrorKind
	Message string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Message)
}

// Collector holds the run-wide collaborators and word rules.
type Collector struct {
	Dictionary dict.Checker
	// Excluded is consulted before Dictionary. Additions made while a FileScan
	// is in progress apply to the words it has not reached yet.
	Excluded *dict.Excluded

	Extract         extract.Options
	MaxSuggestions  int
	StringMinLength int
	CheckStrings    bool
	Encoding        string
}

// New returns a Collector with default rules.
func New(checker dict.Checker, excluded *dict.Excluded) *Collector {
	return &Collector{
		Dictionary:      checker,
		Excluded:        excluded,
		Extract:         extract.DefaultOptions(),
		MaxSuggestions:  DefaultMaxSuggestions,
		StringMinLength: DefaultStringMinLength,
		CheckStrings:    true,
		Encoding:        textutil.EncodingUTF8,
	}
}

// Open decodes and tokenizes data. The returned scan yields findings lazily
// through Next. Empty and binary files come back with Skipped set.
func (c *Collector) Open(ctx context.Context, path string, data []byte) (*FileScan, *FileError) {
	log := logging.Named("collect")
	s := &FileScan{Path: path, Hash: textutil.HashSHA256(data), c: c}
	if len(data) == 0 {
		s.Skipped = "empty"
		return s, nil
	}
	if textutil.DetectBinary(sample(data)) {
		s.Skipped = "binary"
		return s, nil
	}
	dec, err := textutil.Decode(data, c.Encoding)
	if err != nil {
		return nil, &FileError{Path: path, Kind: DecodeError, Message: err.Error()}
	}
	s.Content = dec.Text
	s.Encoding = dec.Encoding

	tok := tokenize.ForPath(path, []byte(dec.Text))
	if tok == nil {
		// Text without a grammar is still checked, as plain prose.
		tok = &tokenize.Text{}
		log.Debug().Str("path", path).Msg("no grammar for file, checking as text")
	}
	s.Language = tok.Language()
	spans, err := tok.Tokenize(ctx, []byte(dec.Text))
	if err != nil {
		var pe *tokenize.ParseError
		if errors.As(err, &pe) {
			return nil, &FileError{Path: path, Kind: ParseError, Message: pe.Error()}
		}
		return nil, &FileError{Path: path, Kind: ParseError, Message: err.Error()}
	}
	for _, sp := range spans {
		if c.keepSpan(sp) {
			s.spans = append(s.spans, sp)
		}
	}
	log.Debug().Str("path", path).Str("language", s.Language).Int("spans", len(s.spans)).Msg("tokenized")
	return s, nil
}

func (c *Collector) keepSpan(sp tokenize.Span) bool {
	if sp.Kind != tokenize.String {
		return true
	}
	if !c.CheckStrings {
		return false
	}
	return len([]rune(sp.Text)) > c.StringMinLength
}

// check returns the finding for word, if it is misspelled.
func (c *Collector) check(word string) ([]string, bool) {
	if c.Excluded != nil && c.Excluded.Contains(word) {
		return nil, false
	}
	ok, sugg := c.Dictionary.Check(word)
	if ok {
		return nil, false
	}
	if c.MaxSuggestions >= 0 && len(sugg) > c.MaxSuggestions {
		sugg = sugg[:c.MaxSuggestions]
	}
	return sugg, true
}

func sample(data []byte) []byte {
	if len(data) > 8192 {
		return data[:8192]
	}
	return data
}
