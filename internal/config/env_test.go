package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, EnvPrefix) {
			t.Skip("SOURCESPELL_* variables already set, skipping")
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOURCESPELL_MAX_SUGGESTIONS", "8")
	t.Setenv("SOURCESPELL_CHECK_STRINGS", "no")
	t.Setenv("SOURCESPELL_DICTIONARIES", "a.txt, b.txt,")
	t.Setenv("SOURCESPELL_ENCODING", " latin1 ")
	c, ok, err := LoadFromEnv(EnvPrefix)
	if err != nil {
		t.Fatalf("load from env failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected env settings present")
	}
	if c.MaxSuggestions == nil || *c.MaxSuggestions != 8 {
		t.Fatalf("bad max suggestions: %#v", c.MaxSuggestions)
	}
	if c.CheckStrings == nil || *c.CheckStrings {
		t.Fatalf("expected check_strings=false")
	}
	if len(c.Dictionaries) != 2 || c.Encoding != "latin1" {
		t.Fatalf("unexpected env config: %#v", c)
	}
}

func TestLoadFromEnvInvalidValue(t *testing.T) {
	t.Setenv("SSX_MIN_LENGTH", "abc")
	if _, _, err := LoadFromEnv("SSX_"); err == nil {
		t.Fatalf("expected invalid int error")
	}
	t.Setenv("SSX_MIN_LENGTH", "2")
	t.Setenv("SSX_SKIP_ACRONYMS", "maybe")
	if _, _, err := LoadFromEnv("SSX_"); err == nil {
		t.Fatalf("expected invalid bool error")
	}
}

func TestResolvePrecedence(t *testing.T) {
	clearEnv(t)
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, DefaultFile), []byte("min_length: 2\nmax_suggestions: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SOURCESPELL_MAX_SUGGESTIONS", "7")
	cfg, src, err := Resolve("", tmp)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if *cfg.MinLength != 2 || *cfg.MaxSuggestions != 7 {
		t.Fatalf("env should override file: %#v", cfg)
	}
	if !strings.Contains(src, DefaultFile) || !strings.Contains(src, "env://") {
		t.Fatalf("unexpected source: %s", src)
	}
}

func TestResolveNothing(t *testing.T) {
	clearEnv(t)
	cfg, src, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if src != "" || cfg.MinLength != nil {
		t.Fatalf("expected empty config, got %#v from %q", cfg, src)
	}
	if _, _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"), "."); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}
