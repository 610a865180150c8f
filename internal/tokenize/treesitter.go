package tokenize

import (
	"context"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language holds the tree-sitter configuration for a supported language.
type Language struct {
	Name         string
	Extensions   []string
	Interpreters []string
	lang         *sitter.Language

	// Node types lexed as comments and as string literals.
	CommentNodes []string
	StringNodes  []string

	// TextNodes are prose outside comments, such as HTML element text.
	// They become Doc spans.
	TextNodes []string

	// EmbedNodes are code embedded in string literals ("{x}" in an
	// f-string, "${x}" in a template). They are blanked out of the span text.
	EmbedNodes []string

	// DocMarkup is the markup carried by Doc spans of this language.
	DocMarkup string

	// IsDocComment reports whether a comment is documentation (e.g. "/** */").
	IsDocComment func(text string) bool

	// IsDocString reports whether a string literal node is a docstring.
	IsDocString func(node *sitter.Node) bool

	// SkipComment and SkipString drop spans that hold no prose, such as
	// compiler directives or raw strings.
	SkipComment func(text string, start int) bool
	SkipString  func(text string) bool
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// Language returns the language name; it satisfies Tokenizer.
func (l *Language) Language() string { return l.Name }

// NewParser creates a fresh tree-sitter parser for this language.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Tokenize parses content and returns its comment and string spans in
// ascending offset order. A tree containing syntax errors is a ParseError.
func (l *Language) Tokenize(ctx context.Context, content []byte) ([]Span, error) {
	if len(content) == 0 {
		return nil, nil
	}
	tree, err := l.NewParser().ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, &ParseError{Language: l.Name, Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := 0
		if n := firstErrorNode(root); n != nil {
			line = int(n.StartPoint().Row) + 1
		}
		return nil, &ParseError{Language: l.Name, Line: line, Msg: "syntax error"}
	}

	comments := toSet(l.CommentNodes)
	strs := toSet(l.StringNodes)
	texts := toSet(l.TextNodes)
	var spans []Span
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		typ := n.Type()
		if _, ok := comments[typ]; ok {
			if sp, ok := l.commentSpan(n, content); ok {
				spans = append(spans, sp)
			}
			return
		}
		if _, ok := strs[typ]; ok {
			if sp, ok := l.stringSpan(n, content); ok {
				spans = append(spans, sp)
			}
			return
		}
		if _, ok := texts[typ]; ok {
			start, end := int(n.StartByte()), int(n.EndByte())
			if text := string(content[start:end]); strings.TrimSpace(text) != "" {
				spans = append(spans, Span{Kind: Doc, Start: start, End: end, Text: text, Markup: l.DocMarkup})
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return dropOverlaps(spans), nil
}

func (l *Language) commentSpan(n *sitter.Node, src []byte) (Span, bool) {
	start, end := int(n.StartByte()), int(n.EndByte())
	text := string(src[start:end])
	if isHashBang(text, start) {
		return Span{}, false
	}
	if l.SkipComment != nil && l.SkipComment(text, start) {
		return Span{}, false
	}
	sp := Span{Kind: Comment, Start: start, End: end, Text: text}
	if l.IsDocComment != nil && l.IsDocComment(text) {
		sp.Kind = Doc
		sp.Markup = l.DocMarkup
	}
	return sp, true
}

func (l *Language) stringSpan(n *sitter.Node, src []byte) (Span, bool) {
	start, end := int(n.StartByte()), int(n.EndByte())
	text := string(src[start:end])
	if l.SkipString != nil && l.SkipString(text) {
		return Span{}, false
	}
	if len(l.EmbedNodes) > 0 {
		text = blankNodes(n, text, start, toSet(l.EmbedNodes))
	}
	sp := Span{Kind: String, Start: start, End: end, Text: text, Literal: true}
	if l.IsDocString != nil && l.IsDocString(n) {
		sp.Kind = Doc
		sp.Markup = l.DocMarkup
	}
	return sp, true
}

// blankNodes overwrites the descendants of n whose type is in types with
// spaces, keeping newlines. text starts at byte offset base of the file.
func blankNodes(n *sitter.Node, text string, base int, types map[string]struct{}) string {
	var b []byte
	var walk func(c *sitter.Node)
	walk = func(c *sitter.Node) {
		if _, ok := types[c.Type()]; ok {
			if b == nil {
				b = []byte(text)
			}
			for i := int(c.StartByte()) - base; i < int(c.EndByte())-base && i < len(b); i++ {
				if b[i] != '\n' {
					b[i] = ' '
				}
			}
			return
		}
		for i := 0; i < int(c.ChildCount()); i++ {
			walk(c.Child(i))
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i))
	}
	if b == nil {
		return text
	}
	return string(b)
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.HasError() && !c.IsMissing() {
			continue
		}
		if found := firstErrorNode(c); found != nil {
			return found
		}
	}
	return nil
}

func isHashBang(text string, start int) bool {
	return start == 0 && len(text) >= 2 && text[0] == '#' && text[1] == '!'
}

// dropOverlaps keeps offsets strictly increasing; a span starting inside the
// previous one is discarded.
func dropOverlaps(spans []Span) []Span {
	out := spans[:0]
	end := -1
	for _, sp := range spans {
		if sp.Start < end {
			continue
		}
		out = append(out, sp)
		end = sp.End
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
