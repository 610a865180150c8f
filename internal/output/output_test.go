package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteNDJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	events := []map[string]any{{"type": "meta"}, {"type": "summary"}}
	if err := Write(buf, "ndjson", events); err != nil {
		t.Fatalf("write ndjson failed: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected lines: %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	events := []map[string]any{{"type": "meta"}}
	if err := Write(buf, "json", events); err != nil {
		t.Fatalf("write json failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\"events\"") {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestWriteText(t *testing.T) {
	buf := &bytes.Buffer{}
	events := []map[string]any{
		{"type": "meta"},
		{"type": "finding", "path": "demo.py", "line": 1, "column": 25, "word": "spulling", "suggestions": []string{"spilling", "spelling"}},
		{"type": "finding", "path": "demo.py", "line": 3, "column": 1, "word": "qzx", "suggestions": []string{}},
		{"type": "error", "path": "bad.txt", "kind": "decode_error", "code": "decode_failed", "detail": "couldn't decode with 'utf-8' codec"},
		{"type": "summary"},
	}
	if err := Write(buf, "text", events); err != nil {
		t.Fatalf("write text failed: %v", err)
	}
	want := "demo.py - Ln 1 Col 25: spulling (spilling, spelling)\n" +
		"demo.py - Ln 3 Col 1: qzx\n" +
		"bad.txt: decode error: couldn't decode with 'utf-8' codec\n"
	if buf.String() != want {
		t.Fatalf("unexpected text:\n%s", buf.String())
	}
}

func TestWriteTextCleanRun(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, "text", []map[string]any{{"type": "meta"}, {"type": "summary"}}); err != nil {
		t.Fatalf("write text failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("clean run should print nothing: %q", buf.String())
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"text", "ndjson", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Fatalf("%s should pass: %v", f, err)
		}
	}
	if err := ValidateFormat("xml"); err == nil {
		t.Fatalf("xml should fail")
	}
	if err := Write(&bytes.Buffer{}, "bad", nil); err == nil {
		t.Fatalf("expected format error")
	}
}
