package tokenize

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

func init() {
	Languages["go"] = &Language{
		Name:         "go",
		Extensions:   []string{".go"},
		lang:         golang.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"interpreted_string_literal", "raw_string_literal"},
		SkipComment:  goDirective,
	}
	Languages["python"] = &Language{
		Name:         "python",
		Extensions:   []string{".py", ".pyw"},
		Interpreters: []string{"python"},
		lang:         python.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string"},
		DocMarkup:    "rst",
		EmbedNodes:   []string{"interpolation"},
		IsDocString:  pythonDocString,
		SkipString:   pythonRawString,
	}
	Languages["ruby"] = &Language{
		Name:         "ruby",
		Extensions:   []string{".rb", ".rake", ".gemspec"},
		Interpreters: []string{"ruby"},
		lang:         ruby.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string", "heredoc_body"},
		DocMarkup:    "rdoc",
		EmbedNodes:   []string{"interpolation"},
		IsDocComment: func(text string) bool { return strings.HasPrefix(text, "=begin") },
	}
	Languages["javascript"] = &Language{
		Name:         "javascript",
		Extensions:   []string{".js", ".mjs", ".cjs", ".jsx"},
		Interpreters: []string{"node", "nodejs"},
		lang:         javascript.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string", "template_string"},
		DocMarkup:    "javadoc",
		IsDocComment: blockDocComment,
		EmbedNodes:   []string{"template_substitution"},
	}
	Languages["typescript"] = &Language{
		Name:         "typescript",
		Extensions:   []string{".ts", ".mts", ".cts"},
		Interpreters: []string{"ts-node", "deno"},
		lang:         typescript.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string", "template_string"},
		DocMarkup:    "javadoc",
		IsDocComment: blockDocComment,
		EmbedNodes:   []string{"template_substitution"},
	}
	Languages["tsx"] = &Language{
		Name:         "tsx",
		Extensions:   []string{".tsx"},
		lang:         tsx.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string", "template_string"},
		TextNodes:    []string{"jsx_text"},
		DocMarkup:    "javadoc",
		IsDocComment: blockDocComment,
		EmbedNodes:   []string{"template_substitution"},
	}
	Languages["c"] = &Language{
		Name:         "c",
		Extensions:   []string{".c", ".h"},
		lang:         c.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string_literal"},
		DocMarkup:    "javadoc",
		IsDocComment: blockDocComment,
	}
	Languages["cpp"] = &Language{
		Name:         "cpp",
		Extensions:   []string{".cpp", ".cc", ".cxx", ".c++", ".hpp", ".hh", ".hxx"},
		lang:         cpp.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string_literal", "raw_string_literal"},
		DocMarkup:    "javadoc",
		IsDocComment: cppDocComment,
	}
	Languages["java"] = &Language{
		Name:         "java",
		Extensions:   []string{".java"},
		lang:         java.GetLanguage(),
		CommentNodes: []string{"line_comment", "block_comment", "comment"},
		StringNodes:  []string{"string_literal", "text_block"},
		DocMarkup:    "javadoc",
		IsDocComment: blockDocComment,
	}
	Languages["rust"] = &Language{
		Name:         "rust",
		Extensions:   []string{".rs"},
		lang:         rust.GetLanguage(),
		CommentNodes: []string{"line_comment", "block_comment"},
		StringNodes:  []string{"string_literal", "raw_string_literal"},
		DocMarkup:    "markdown",
		IsDocComment: rustDocComment,
	}
	Languages["bash"] = &Language{
		Name:         "bash",
		Extensions:   []string{".sh", ".bash"},
		Interpreters: []string{"bash", "sh", "zsh"},
		lang:         bash.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string", "raw_string"},
		EmbedNodes:   []string{"simple_expansion", "expansion", "command_substitution"},
	}
	Languages["html"] = &Language{
		Name:         "html",
		Extensions:   []string{".html", ".htm", ".xhtml"},
		lang:         html.GetLanguage(),
		CommentNodes: []string{"comment"},
		TextNodes:    []string{"text"},
		DocMarkup:    "html",
	}
	Languages["css"] = &Language{
		Name:         "css",
		Extensions:   []string{".css"},
		lang:         css.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string_value"},
	}
	Languages["yaml"] = &Language{
		Name:         "yaml",
		Extensions:   []string{".yaml", ".yml"},
		lang:         yaml.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"double_quote_scalar", "single_quote_scalar", "block_scalar"},
	}
	Languages["toml"] = &Language{
		Name:         "toml",
		Extensions:   []string{".toml"},
		lang:         toml.GetLanguage(),
		CommentNodes: []string{"comment"},
		StringNodes:  []string{"string"},
	}
}

// goDirective matches //go:generate, //nolint and build-constraint lines.
func goDirective(text string, _ int) bool {
	for _, p := range []string{"//go:", "//nolint", "// +build", "//line ", "//export "} {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func blockDocComment(text string) bool {
	return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/")
}

func cppDocComment(text string) bool {
	return blockDocComment(text) || strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!")
}

func rustDocComment(text string) bool {
	for _, p := range []string{"///", "//!", "/**", "/*!"} {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func pythonRawString(text string) bool {
	for i := 0; i < len(text) && i < 3; i++ {
		switch text[i] {
		case 'r', 'R':
			return true
		case '"', '\'':
			return false
		}
	}
	return false
}

// pythonDocString reports whether a string node is the first statement of a
// module, class or function body.
func pythonDocString(n *sitter.Node) bool {
	stmt := n.Parent()
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return false
	}
	body := stmt.Parent()
	if body == nil || (body.Type() != "module" && body.Type() != "block") {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		return c.StartByte() == stmt.StartByte() && c.EndByte() == stmt.EndByte()
	}
	return false
}
