// Package tokenize splits source files into the comment, string and
// documentation spans that carry natural-language text. Source languages are
// lexed with tree-sitter; prose formats are handed over as a single span.
package tokenize

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Kind classifies a span of text.
type Kind int

const (
	Comment Kind = iota
	String
	Doc
)

func (k Kind) String() string {
	switch k {
	case Comment:
		return "comment"
	case String:
		return "string"
	case Doc:
		return "doc"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is a contiguous range [Start, End) of the file content.
type Span struct {
	Kind  Kind
	Start int
	End   int
	Text  string
	// Markup names the documentation syntax inside a Doc span ("rst",
	// "javadoc", "markdown", ...). Empty means plain text.
	Markup string
	// Literal is set for spans lexed from string literals, docstrings
	// included, whose text may hold escape sequences.
	Literal bool
}

// Tokenizer produces the spans of one file, ordered by Start.
type Tokenizer interface {
	Language() string
	Tokenize(ctx context.Context, content []byte) ([]Span, error)
}

// ParseError reports content the tokenizer could not lex.
type ParseError struct {
	Language string
	Line     int
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d", e.Language, e.Line)
	}
	return fmt.Sprintf("%s parse error: %s", e.Language, e.Msg)
}

// Languages maps language names to their configuration.
// Populated by init() in languages.go.
var Languages = map[string]*Language{}

var extensionMap map[string]Tokenizer
var extensionOnce sync.Once

func getExtensionMap() map[string]Tokenizer {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]Tokenizer)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l
			}
		}
		for ext, markup := range textFormats {
			extensionMap[ext] = &Text{Markup: markup}
		}
	})
	return extensionMap
}

// ForExtension returns the tokenizer for a file extension, or nil if unsupported.
func ForExtension(ext string) Tokenizer {
	return getExtensionMap()[strings.ToLower(ext)]
}

// ForPath picks a tokenizer by extension and falls back to the hash-bang line
// of content. It returns nil when the file is in no known language.
func ForPath(path string, content []byte) Tokenizer {
	if t := ForExtension(filepath.Ext(path)); t != nil {
		return t
	}
	return forHashBang(content)
}

func forHashBang(content []byte) Tokenizer {
	if len(content) < 2 || content[0] != '#' || content[1] != '!' {
		return nil
	}
	line := string(content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return nil
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = fields[1]
	}
	for _, l := range Languages {
		for _, name := range l.Interpreters {
			if interp == name || strings.HasPrefix(interp, name) && isVersionSuffix(interp[len(name):]) {
				return l
			}
		}
	}
	return nil
}

func isVersionSuffix(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
