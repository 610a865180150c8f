// Package extract splits comment, string and documentation text into the
// candidate words handed to the dictionary.
package extract

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"sourcespell/internal/tokenize"
)

// Options controls which tokens count as words.
type Options struct {
	MinLength       int
	SkipAcronyms    bool
	SkipIdentifiers bool
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{MinLength: 1, SkipAcronyms: true, SkipIdentifiers: true}
}

// Word is a candidate word and its byte offset within the span text.
type Word struct {
	Text   string
	Offset int
}

var (
	reURL      = regexp.MustCompile(`(?i)\b(?:[a-z][a-z0-9+.-]*://|www\.)[^\s<>"'` + "`" + `]+`)
	reEmail    = regexp.MustCompile(`<?[^\s<>@"']+@[^\s.<>@"'][^\s<>@"']*\.[a-zA-Z]{2,}>?`)
	reHashBang = regexp.MustCompile(`(?m)^#!/\S*`)
	reEscape   = regexp.MustCompile(`\\(?:x[0-9a-fA-F]{1,2}|u[0-9a-fA-F]{4}|U[0-9a-fA-F]{8}|[0-7]{1,3}|.)`)
	reVerb     = regexp.MustCompile(`%[-+#0]*(?:\d+|\*)?(?:\.(?:\d+|\*))?[a-zA-Z]`)
)

// Words returns the candidate words of one span in ascending offset order.
// Offsets are relative to the span text.
func Words(sp tokenize.Span, opts Options) []Word {
	prepared := Prepare(sp)
	var out []Word
	for _, tok := range tokens(prepared) {
		w, ok := accept(tok, opts)
		if ok {
			out = append(out, w)
		}
	}
	return out
}

// Prepare blanks everything in the span text that is never prose: URLs,
// e-mail addresses, hash-bang lines, escapes in literals, format verbs in
// strings and markup in documentation. The result has the same byte length
// as the text.
func Prepare(sp tokenize.Span) string {
	text := sp.Text
	if sp.Literal || sp.Kind == tokenize.String {
		text = blank(text, reEscape)
	}
	switch sp.Kind {
	case tokenize.String:
		text = blank(text, reVerb)
	case tokenize.Doc:
		if s := StripperFor(sp.Markup); s != nil {
			text = s.Strip(text)
		}
	}
	text = blank(text, reURL)
	text = blank(text, reEmail)
	text = blank(text, reHashBang)
	return text
}

type token struct {
	text   string
	offset int
	// dotted is set for chains like "os.Path" that read as code references.
	dotted bool
}

func isApostrophe(r rune) bool { return r == '\'' || r == '’' }

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || isApostrophe(r) || unicode.Is(unicode.Mn, r)
}

// tokens splits text into runs of letters, digits, underscores and
// apostrophes. A '.' joining two such runs keeps them in one dotted token.
func tokens(text string) []token {
	var out []token
	start := -1
	dotted := false
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case isTokenRune(r):
			if start < 0 {
				start = i
				dotted = false
			}
		case r == '.' && start >= 0 && i+size < len(text):
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if unicode.IsLetter(next) || next == '_' {
				dotted = true
				break
			}
			out = append(out, token{text: text[start:i], offset: start, dotted: dotted})
			start = -1
		default:
			if start >= 0 {
				out = append(out, token{text: text[start:i], offset: start, dotted: dotted})
				start = -1
			}
		}
		i += size
	}
	if start >= 0 {
		out = append(out, token{text: text[start:], offset: start, dotted: dotted})
	}
	return out
}

func accept(tok token, opts Options) (Word, bool) {
	text, offset := trimApostrophes(tok.text, tok.offset)
	if text == "" {
		return Word{}, false
	}
	if tok.dotted || hasCodeRunes(text) {
		if opts.SkipIdentifiers {
			return Word{}, false
		}
		// Without identifier skipping the letters before the first code rune
		// still make a word.
		text = leadingLetters(text)
		if text == "" {
			return Word{}, false
		}
	}
	if opts.SkipIdentifiers && IsMixedCase(text) {
		return Word{}, false
	}
	if opts.SkipAcronyms && IsAcronym(text) {
		return Word{}, false
	}
	if opts.MinLength > 0 && letterCount(text) < opts.MinLength {
		return Word{}, false
	}
	return Word{Text: text, Offset: offset}, true
}

func trimApostrophes(s string, off int) (string, int) {
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if !isApostrophe(r) {
			break
		}
		s = s[size:]
		off += size
	}
	for s != "" {
		r, size := utf8.DecodeLastRuneInString(s)
		if !isApostrophe(r) {
			break
		}
		s = s[:len(s)-size]
	}
	return s, off
}

func hasCodeRunes(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

func leadingLetters(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) && !isApostrophe(r) && !unicode.Is(unicode.Mn, r) {
			out, _ := trimApostrophes(s[:i], 0)
			return out
		}
	}
	return s
}

// IsAcronym reports whether s has at least two letters, all upper case.
func IsAcronym(s string) bool {
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		n++
	}
	return n >= 2
}

// IsMixedCase reports camelCase, WikiWord and HTTPServer shapes: an
// upper-case letter after the first position in a word that also has lower
// case letters.
func IsMixedCase(s string) bool {
	upperLater, lower := false, false
	first := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsLower(r) {
			lower = true
		} else if unicode.IsUpper(r) && !first {
			upperLater = true
		}
		first = false
	}
	return upperLater && lower
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
