// Package output renders run events as text, ndjson or json.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

var Formats = []string{"text", "ndjson", "json"}

func ValidateFormat(v string) error {
	for _, f := range Formats {
		if v == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s (use %s)", v, strings.Join(Formats, "/"))
}

func Write(w io.Writer, format string, events []map[string]any) error {
	switch format {
	case "text":
		for _, e := range events {
			line, ok := TextLine(e)
			if !ok {
				continue
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case "ndjson":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	case "json":
		obj := map[string]any{"events": events}
		b, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TextLine renders finding and error events as one line each. Other events
// have no text form.
func TextLine(e map[string]any) (string, bool) {
	path, _ := e["path"].(string)
	switch e["type"] {
	case "finding":
		word, _ := e["word"].(string)
		line := fmt.Sprintf("%s - Ln %v Col %v: %s", path, e["line"], e["column"], word)
		if sugg, _ := e["suggestions"].([]string); len(sugg) > 0 {
			line += " (" + strings.Join(sugg, ", ") + ")"
		}
		return line, true
	case "error":
		label, _ := e["kind"].(string)
		if label == "" {
			label, _ = e["code"].(string)
		}
		detail, _ := e["detail"].(string)
		return fmt.Sprintf("%s: %s: %s", path, strings.ReplaceAll(label, "_", " "), detail), true
	}
	return "", false
}
