package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("MAX_SUGG", "9")
	src := "max_suggestions: ${MAX_SUGG}\nencoding: ${SPELL_ENC:-utf-8}\n"
	got, err := expandEnv(src)
	if err != nil {
		t.Fatalf("expand env failed: %v", err)
	}
	if got != "max_suggestions: 9\nencoding: utf-8\n" {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if _, err := expandEnv("encoding: ${SOURCESPELL_TEST_UNSET_VAR}\n"); err == nil {
		t.Fatalf("expected error for unset variable without default")
	}
}

func TestLoadKnownFields(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "c.yaml")
	body := "min_length: 3\nskip_acronyms: false\ndictionaries:\n  - words/project.txt\nignore_patterns:\n  - \"*.lock\"\nmax_file_size: 2MB\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MinLength == nil || *cfg.MinLength != 3 {
		t.Fatalf("unexpected min length: %#v", cfg.MinLength)
	}
	if cfg.SkipAcronyms == nil || *cfg.SkipAcronyms {
		t.Fatalf("unexpected skip_acronyms: %#v", cfg.SkipAcronyms)
	}
	if len(cfg.Dictionaries) != 1 || len(cfg.IgnorePatterns) != 1 {
		t.Fatalf("unexpected lists: %#v", cfg)
	}
	if cfg.MaxSuggestions != nil {
		t.Fatalf("unset field should stay nil")
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "c.yaml")
	if err := os.WriteFile(p, []byte("max_lines: 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadValidates(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "c.yaml")
	if err := os.WriteFile(p, []byte("min_length: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "c.yaml")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err != nil {
		t.Fatalf("empty config should load: %v", err)
	}
}

func TestParseSizeToBytes(t *testing.T) {
	cases := map[string]int64{"": 0, "512": 512, "1KB": 1024, "1.5mb": 1572864, "2GB": 2 << 30}
	for in, want := range cases {
		got, err := ParseSizeToBytes(in)
		if err != nil || got != want {
			t.Fatalf("ParseSizeToBytes(%q)=%d,%v want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"abc", "-1", "12XB"} {
		if _, err := ParseSizeToBytes(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
