package tokenize

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".go", "go"},
		{".py", "python"},
		{".PY", "python"},
		{".rb", "ruby"},
		{".js", "javascript"},
		{".rs", "rust"},
		{".ts", "typescript"},
		{".tsx", "tsx"},
		{".cpp", "cpp"},
		{".hpp", "cpp"},
		{".html", "html"},
		{".css", "css"},
		{".yml", "yaml"},
		{".toml", "toml"},
		{".md", "markdown"},
		{".txt", "text"},
		{".png", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			tok := ForExtension(tt.ext)
			got := ""
			if tok != nil {
				got = tok.Language()
			}
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestForPathHashBang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
	}{
		{"#!/usr/bin/env python3\nprint('x')\n", "python"},
		{"#!/bin/bash\necho hi\n", "bash"},
		{"#!/usr/bin/ruby -w\n", "ruby"},
		{"#!/usr/bin/perl\n", ""},
		{"no hash bang", ""},
	}
	for _, tt := range tests {
		tok := ForPath("/tmp/script", []byte(tt.content))
		got := ""
		if tok != nil {
			got = tok.Language()
		}
		if got != tt.want {
			t.Errorf("ForPath(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestTokenizeGo(t *testing.T) {
	t.Parallel()

	src := "package main\n\n//go:generate stringer\n\n// Greet says helo.\nfunc Greet() string {\n\treturn \"a freindly greeting\"\n}\n"
	spans, err := Languages["go"].Tokenize(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %#v", len(spans), spans)
	}
	if spans[0].Kind != Comment || spans[0].Text != "// Greet says helo." {
		t.Errorf("unexpected comment span: %#v", spans[0])
	}
	if spans[1].Kind != String || spans[1].Text != `"a freindly greeting"` {
		t.Errorf("unexpected string span: %#v", spans[1])
	}
	for _, sp := range spans {
		if src[sp.Start:sp.End] != sp.Text {
			t.Errorf("span offsets do not match text: %#v", sp)
		}
	}
}

func TestTokenizePythonDocstrings(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"#!/usr/bin/env python",
		`"""Module docstring here."""`,
		"",
		"def f():",
		`    """Function doc."""`,
		`    x = r"raw \d string value"`,
		`    return "just a normal string"  # trailing comment`,
		"",
	}, "\n")
	spans, err := Languages["python"].Tokenize(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var kinds []string
	for _, sp := range spans {
		kinds = append(kinds, sp.Kind.String())
	}
	want := "doc,doc,string,comment"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("kinds = %s, want %s (%#v)", got, want, spans)
	}
	if spans[0].Markup != "rst" {
		t.Errorf("docstring markup = %q", spans[0].Markup)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start <= spans[i-1].Start {
			t.Fatalf("spans not ascending: %#v", spans)
		}
	}
}

func TestTokenizeParseError(t *testing.T) {
	t.Parallel()

	_, err := Languages["go"].Tokenize(context.Background(), []byte("package main\n\nfunc (\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Language != "go" {
		t.Errorf("unexpected language: %q", pe.Language)
	}
}

func TestTextTokenizer(t *testing.T) {
	t.Parallel()

	tok := ForExtension(".md")
	spans, err := tok.Tokenize(context.Background(), []byte("# Title\n\nSome txt.\n"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(spans) != 1 || spans[0].Kind != Doc || spans[0].Markup != "markdown" {
		t.Fatalf("unexpected spans: %#v", spans)
	}
	empty, _ := tok.Tokenize(context.Background(), nil)
	if len(empty) != 0 {
		t.Fatalf("empty content should give no spans")
	}
}

func TestDocCommentHelpers(t *testing.T) {
	t.Parallel()

	if !blockDocComment("/** doc */") || blockDocComment("/* plain */") || blockDocComment("/**/") {
		t.Errorf("blockDocComment mismatch")
	}
	if !rustDocComment("/// doc") || rustDocComment("// plain") {
		t.Errorf("rustDocComment mismatch")
	}
	if !cppDocComment("/// doc") || !cppDocComment("/** doc */") || cppDocComment("// plain") {
		t.Errorf("cppDocComment mismatch")
	}
	if !pythonRawString(`r"x"`) || !pythonRawString(`br'x'`) || pythonRawString(`f"x"`) {
		t.Errorf("pythonRawString mismatch")
	}
	if !goDirective("//go:build linux", 0) || goDirective("// go is fun", 0) {
		t.Errorf("goDirective mismatch")
	}
	if Comment.String() != "comment" || Kind(9).String() != "kind(9)" {
		t.Errorf("Kind.String mismatch")
	}
}

func TestTokenizeEmbeddedCodeBlanked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		src  string
		lit  string
		code string
		keep string
	}{
		{"python", "x = f\"value of {name!r:>10} is here\"\n", `f"value of {name!r:>10} is here"`, "name", "is here"},
		{"typescript", "const s: string = `hello ${user.name} world`;\n", "`hello ${user.name} world`", "user", "world"},
		{"javascript", "let s = `total ${count} items`;\n", "`total ${count} items`", "count", "items"},
	}
	for _, tt := range tests {
		spans, err := Languages[tt.lang].Tokenize(context.Background(), []byte(tt.src))
		if err != nil {
			t.Fatalf("%s: Tokenize: %v", tt.lang, err)
		}
		if len(spans) != 1 || spans[0].Kind != String || !spans[0].Literal {
			t.Fatalf("%s: unexpected spans: %#v", tt.lang, spans)
		}
		sp := spans[0]
		if tt.src[sp.Start:sp.End] != tt.lit || len(sp.Text) != len(tt.lit) {
			t.Fatalf("%s: span does not cover the literal: %#v", tt.lang, sp)
		}
		if strings.Contains(sp.Text, tt.code) || !strings.Contains(sp.Text, tt.keep) {
			t.Errorf("%s: interpolation not blanked: %q", tt.lang, sp.Text)
		}
	}
}

func TestTokenizeDocStringIsLiteral(t *testing.T) {
	t.Parallel()

	spans, err := Languages["python"].Tokenize(context.Background(), []byte("def f():\n    \"\"\"Returns a\\nvalue.\"\"\"\n"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(spans) != 1 || spans[0].Kind != Doc || !spans[0].Literal {
		t.Fatalf("unexpected spans: %#v", spans)
	}
}

func TestTokenizeHTMLAndCpp(t *testing.T) {
	t.Parallel()

	src := "<html><body><p>Helo there</p><!-- a note --></body></html>\n"
	spans, err := Languages["html"].Tokenize(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("html Tokenize: %v", err)
	}
	var kinds []string
	for _, sp := range spans {
		kinds = append(kinds, sp.Kind.String()+":"+strings.TrimSpace(sp.Text))
	}
	if got := strings.Join(kinds, ","); got != "doc:Helo there,comment:<!-- a note -->" {
		t.Fatalf("html spans = %s", got)
	}

	src = "/// Adds two numbrs.\nint add(int a, int b) { return a + b; } // sum\n"
	spans, err = Languages["cpp"].Tokenize(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("cpp Tokenize: %v", err)
	}
	if len(spans) != 2 || spans[0].Kind != Doc || spans[1].Kind != Comment {
		t.Fatalf("unexpected cpp spans: %#v", spans)
	}
}
