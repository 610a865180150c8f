package correct

import (
	"fmt"
	"strings"
)

// Replacement swaps Length bytes at Offset of the original content for Text.
type Replacement struct {
	Offset int
	Length int
	Text   string
}

// EditBuffer collects replacements against the original content of one file.
// Offsets always refer to the original, so recording never shifts later
// findings.
type EditBuffer struct {
	original string
	edits    []Replacement
}

func NewEditBuffer(original string) *EditBuffer {
	return &EditBuffer{original: original}
}

// Record adds a replacement. Replacements must arrive in ascending offset
// order and must not overlap.
func (b *EditBuffer) Record(offset, length int, text string) error {
	if offset < 0 || length < 0 || offset+length > len(b.original) {
		return fmt.Errorf("replacement [%d,%d) outside content of %d bytes", offset, offset+length, len(b.original))
	}
	if n := len(b.edits); n > 0 {
		prev := b.edits[n-1]
		if offset < prev.Offset+prev.Length || offset <= prev.Offset {
			return fmt.Errorf("replacement at %d overlaps or precedes replacement at %d", offset, prev.Offset)
		}
	}
	b.edits = append(b.edits, Replacement{Offset: offset, Length: length, Text: text})
	return nil
}

// Len returns the number of pending replacements.
func (b *EditBuffer) Len() int { return len(b.edits) }

// Discard drops every pending replacement.
func (b *EditBuffer) Discard() { b.edits = nil }

// String renders the edited content in one pass over the original.
func (b *EditBuffer) String() string {
	if len(b.edits) == 0 {
		return b.original
	}
	var sb strings.Builder
	grow := len(b.original)
	for _, e := range b.edits {
		grow += len(e.Text) - e.Length
	}
	if grow > 0 {
		sb.Grow(grow)
	}
	pos := 0
	for _, e := range b.edits {
		sb.WriteString(b.original[pos:e.Offset])
		sb.WriteString(e.Text)
		pos = e.Offset + e.Length
	}
	sb.WriteString(b.original[pos:])
	return sb.String()
}
