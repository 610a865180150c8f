package dict

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFuzzyCheck(t *testing.T) {
	f := NewFuzzy([]string{"this", "is", "a", "line", "with", "spelling", "spilling", "pulling", "error"})
	if ok, _ := f.Check("spelling"); !ok {
		t.Fatalf("expected spelling to be known")
	}
	ok, sugg := f.Check("spulling")
	if ok {
		t.Fatalf("expected spulling to be misspelled")
	}
	want := []string{"pulling", "spelling", "spilling"}
	if strings.Join(sugg, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected suggestions: %v", sugg)
	}
	_, again := f.Check("spulling")
	if strings.Join(again, ",") != strings.Join(sugg, ",") {
		t.Fatalf("suggestions not stable: %v vs %v", again, sugg)
	}
}

func TestFuzzyCheckKeepsCase(t *testing.T) {
	f := NewFuzzy([]string{"spelling"})
	_, sugg := f.Check("Speling")
	if len(sugg) == 0 || sugg[0] != "Spelling" {
		t.Fatalf("expected capitalised suggestion, got %v", sugg)
	}
	_, sugg = f.Check("SPELING")
	if len(sugg) == 0 || sugg[0] != "SPELLING" {
		t.Fatalf("expected upper-case suggestion, got %v", sugg)
	}
}

func TestFuzzyKnown(t *testing.T) {
	f := NewFuzzy([]string{"file", "  ", "two words", "123"})
	cases := []struct {
		word string
		want bool
	}{
		{"file", true},
		{"File", true},
		{"file's", true},
		{"file’s", true},
		{"x", true},
		{"fille", false},
		{"two", false},
	}
	for _, tc := range cases {
		if got := f.Known(tc.word); got != tc.want {
			t.Fatalf("Known(%q)=%v want %v", tc.word, got, tc.want)
		}
	}
	if f.Size() != 1 {
		t.Fatalf("malformed entries should not be trained, size=%d", f.Size())
	}
}

func TestLoadEmbeddedAndExtraList(t *testing.T) {
	saved := SystemWordLists
	SystemWordLists = nil
	t.Cleanup(func() { SystemWordLists = saved })

	tmp := t.TempDir()
	p := filepath.Join(tmp, "project.words")
	if err := os.WriteFile(p, []byte("sourcespell\n\nzerolog\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Load(p)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	for _, w := range []string{"this", "line", "spelling", "sourcespell", "zerolog"} {
		if !f.Known(w) {
			t.Fatalf("expected %q to be known", w)
		}
	}
	ok, sugg := f.Check("spulling")
	if ok || len(sugg) == 0 {
		t.Fatalf("expected spulling to be misspelled with suggestions, got %v %v", ok, sugg)
	}
	if _, err := Load(filepath.Join(tmp, "missing.words")); err == nil {
		t.Fatalf("expected error for missing explicit word list")
	}
}

func TestValidateEntry(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"word", true},
		{"  padded  ", true},
		{"don't", true},
		{"", false},
		{"two words", false},
		{"1234", false},
		{string([]byte{0xff, 'a'}), false},
	}
	for _, tc := range cases {
		_, err := validateEntry(tc.in)
		if (err == nil) != tc.valid {
			t.Fatalf("validateEntry(%q) err=%v", tc.in, err)
		}
	}
}
