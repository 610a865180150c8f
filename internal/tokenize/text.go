package tokenize

import "context"

var textFormats = map[string]string{
	".txt":      "",
	".text":     "",
	".md":       "markdown",
	".markdown": "markdown",
	".rst":      "rst",
}

// Text hands a whole prose file over as one Doc span.
type Text struct {
	Markup string
}

func (t *Text) Language() string {
	if t.Markup == "" {
		return "text"
	}
	return t.Markup
}

func (t *Text) Tokenize(_ context.Context, content []byte) ([]Span, error) {
	if len(content) == 0 {
		return nil, nil
	}
	return []Span{{Kind: Doc, Start: 0, End: len(content), Text: string(content), Markup: t.Markup}}, nil
}
