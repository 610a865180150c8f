package correct

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"sourcespell/internal/collect"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// maxChoices is the number of suggestions a single digit can select.
const maxChoices = 10

const legend = `Options:
0-9 - Use the numbered suggestion.
a - Ignore the error and add to the excluded words.
n - Go to the next file, save existing changes.
q - Exit immediately, discards changes in the current file.
To skip to the next error, press any other key.
`

type renderer struct {
	w     io.Writer
	color bool
}

func (r renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

func (r renderer) fileHeader(name string) {
	fmt.Fprintf(r.w, "\n%s\n", r.paint(ansiGreen+ansiBold, name))
}

// finding prints the location, the source line with the word marked, the
// numbered suggestions, the key legend and the prompt.
func (r renderer) finding(scan *collect.FileScan, f collect.Finding) {
	pos := scan.Position(f.Offset)
	lines := scan.Lines()
	line := lines.Line(pos.Line)
	start := f.Offset - lines.LineStart(f.Offset)
	end := start + len(f.Word)
	if end > len(line) {
		end = len(line)
	}

	fmt.Fprintf(r.w, "\nLn %d Col %d: %s\n", pos.Line, pos.Column, f.Word)
	if r.color {
		fmt.Fprintf(r.w, "%s%s%s\n", line[:start], r.paint(ansiRed, line[start:end]), line[end:])
	} else {
		fmt.Fprintf(r.w, "%s\n%s\n", line, caret(line[:start], line[start:end]))
	}
	fmt.Fprintln(r.w, suggestionList(f.Suggestions))
	fmt.Fprint(r.w, legend)
	fmt.Fprint(r.w, "---> ")
}

// caret underlines word, keeping tabs of the prefix so the marks line up in
// a terminal.
func caret(prefix, word string) string {
	var sb strings.Builder
	for _, c := range prefix {
		if c == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(c)))
	}
	n := runewidth.StringWidth(word)
	if n < 1 {
		n = 1
	}
	sb.WriteString(strings.Repeat("^", n))
	return sb.String()
}

func suggestionList(sugg []string) string {
	if len(sugg) == 0 {
		return "No suggestions."
	}
	if len(sugg) > maxChoices {
		sugg = sugg[:maxChoices]
	}
	parts := make([]string, len(sugg))
	for i, s := range sugg {
		parts[i] = fmt.Sprintf("%d: %s", i, s)
	}
	return strings.Join(parts, " | ")
}

func (r renderer) echo(key rune) {
	switch {
	case key == keyInterrupt:
		fmt.Fprintln(r.w, "^C")
	case key < 0x20 || key == 0x7f:
		fmt.Fprintln(r.w)
	default:
		fmt.Fprintf(r.w, "%c\n", key)
	}
}

func (r renderer) notice(msg string) {
	fmt.Fprintln(r.w, r.paint(ansiRed, msg))
}
