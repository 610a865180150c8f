package extract

import (
	"regexp"
	"strings"
)

// Stripper removes documentation markup from text. Implementations must keep
// the byte length of the text unchanged so word offsets stay valid; markup is
// overwritten with spaces rather than cut out.
type Stripper interface {
	Strip(text string) string
}

// StripperFunc adapts a function to Stripper.
type StripperFunc func(string) string

func (f StripperFunc) Strip(text string) string { return f(text) }

// Pre-compiled markup patterns.
var (
	// reRSTDirective matches ".. note::" style directive markers.
	reRSTDirective = regexp.MustCompile(`\.\.\s+[\w:-]+::`)

	// reRSTRole matches roles with their target, e.g. :class:`Foo`.
	reRSTRole = regexp.MustCompile(":[\\w:-]+:`[^`]*`")

	// reRSTField matches field list markers such as ":param name:" or ":returns:".
	reRSTField = regexp.MustCompile(`(?m)^\s*:[\w-]+(?:\s+[\w.*]+)*:`)

	// reRSTLiteral matches ``inline literals`` and `interpreted text`.
	reRSTLiteral = regexp.MustCompile("``[^`]*``|`[^`]*`_{0,2}")

	// reJavadocInline matches {@link Foo#bar} and friends.
	reJavadocInline = regexp.MustCompile(`\{@\w+[^}]*\}`)

	// reJavadocParam matches "@param name" and "@throws Type"; the argument is code.
	reJavadocParam = regexp.MustCompile(`@(?:param|throws|exception|see|typedef|type|template)\s+\S+`)

	// reJavadocTag matches the remaining block tags like @return or @deprecated.
	reJavadocTag = regexp.MustCompile(`@\w+`)

	// reHTMLTag matches HTML tags including attributes.
	reHTMLTag = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

	// reMarkdownFence matches fenced code blocks.
	reMarkdownFence = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~")

	// reMarkdownCode matches inline code spans.
	reMarkdownCode = regexp.MustCompile("`[^`\n]*`")

	// reMarkdownLinkTarget matches the "(url)" part of a link and reference definitions.
	reMarkdownLinkTarget = regexp.MustCompile(`\]\([^)]*\)|(?m)^\s*\[[^\]]+\]:\s*\S+`)

	// reRDocCode matches +code+ and <tt>code</tt>.
	reRDocCode = regexp.MustCompile(`\+\w+\+|<tt>[^<]*</tt>`)

	// reRDocDirective matches :call-seq: style directives.
	reRDocDirective = regexp.MustCompile(`(?m)^\s*#?\s*:[\w-]+:`)

	// reHTMLEntity matches character references such as &amp; and &#8212;.
	reHTMLEntity = regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

var strippers = map[string]Stripper{
	"rst":      patternStripper(reRSTDirective, reRSTRole, reRSTField, reRSTLiteral),
	"javadoc":  patternStripper(reJavadocInline, reJavadocParam, reJavadocTag, reHTMLTag),
	"markdown": patternStripper(reMarkdownFence, reMarkdownCode, reMarkdownLinkTarget, reHTMLTag),
	"rdoc":     patternStripper(reRDocCode, reRDocDirective),
	"html":     patternStripper(reHTMLEntity, reHTMLTag),
}

// Register installs a stripper for a markup name, replacing any existing one.
func Register(markup string, s Stripper) {
	strippers[markup] = s
}

// StripperFor returns the stripper for markup, or nil when the markup is
// unknown and text should pass through unchanged.
func StripperFor(markup string) Stripper {
	return strippers[markup]
}

func patternStripper(patterns ...*regexp.Regexp) Stripper {
	return StripperFunc(func(text string) string {
		for _, re := range patterns {
			text = blank(text, re)
		}
		return text
	})
}

// blank overwrites every match of re with spaces of the same byte length,
// keeping newlines so line structure survives.
func blank(text string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		var b strings.Builder
		b.Grow(len(m))
		for i := 0; i < len(m); i++ {
			if m[i] == '\n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		return b.String()
	})
}
