package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const EnvPrefix = "SOURCESPELL_"

// Resolve loads the effective configuration: the explicit file if given,
// otherwise DefaultFile in base when present, then SOURCESPELL_* variables on
// top. The second result names the sources that contributed.
func Resolve(configPath, base string) (Config, string, error) {
	var cfg Config
	var sources []string
	path := strings.TrimSpace(configPath)
	if path == "" {
		candidate := filepath.Join(base, DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		c, err := Load(path)
		if err != nil {
			return Config{}, "", err
		}
		cfg = c
		sources = append(sources, path)
	}
	env, ok, err := LoadFromEnv(EnvPrefix)
	if err != nil {
		return Config{}, "", err
	}
	if ok {
		cfg = cfg.Merge(env)
		sources = append(sources, "env://"+EnvPrefix+"*")
	}
	return cfg, strings.Join(sources, ","), nil
}

// LoadFromEnv reads settings from environment variables, e.g.
// SOURCESPELL_MAX_SUGGESTIONS=8 or SOURCESPELL_DICTIONARIES=a.txt,b.txt.
func LoadFromEnv(prefix string) (Config, bool, error) {
	c := Config{}
	has := false

	setIntPtr := func(key string, dst **int) error {
		v, ok := os.LookupEnv(prefix + key)
		if !ok {
			return nil
		}
		has = true
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("environment variable %s%s is not a valid integer", prefix, key)
		}
		*dst = &n
		return nil
	}
	setBoolPtr := func(key string, dst **bool) error {
		v, ok := os.LookupEnv(prefix + key)
		if !ok {
			return nil
		}
		has = true
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("environment variable %s%s is not a valid boolean", prefix, key)
		}
		*dst = &b
		return nil
	}
	setString := func(key string, dst *string) {
		v, ok := os.LookupEnv(prefix + key)
		if !ok {
			return
		}
		has = true
		*dst = strings.TrimSpace(v)
	}
	setList := func(key string, dst *[]string) {
		v, ok := os.LookupEnv(prefix + key)
		if !ok {
			return
		}
		has = true
		*dst = splitCSV(v)
	}

	for key, dst := range map[string]**int{
		"MIN_LENGTH":        &c.MinLength,
		"MAX_SUGGESTIONS":   &c.MaxSuggestions,
		"STRING_MIN_LENGTH": &c.StringMinLength,
	} {
		if err := setIntPtr(key, dst); err != nil {
			return Config{}, false, err
		}
	}
	for key, dst := range map[string]**bool{
		"SKIP_ACRONYMS":             &c.SkipAcronyms,
		"SKIP_IDENTIFIERS":          &c.SkipIdentifiers,
		"CHECK_STRINGS":             &c.CheckStrings,
		"CASE_SENSITIVE_EXCLUSIONS": &c.CaseSensitiveExclusions,
	} {
		if err := setBoolPtr(key, dst); err != nil {
			return Config{}, false, err
		}
	}
	setString("ENCODING", &c.Encoding)
	setString("EXCLUDED_WORDS", &c.ExcludedWords)
	setString("MAX_FILE_SIZE", &c.MaxFileSize)
	setList("DICTIONARIES", &c.Dictionaries)
	setList("IGNORE_PATTERNS", &c.IgnorePatterns)

	if err := c.Validate(); err != nil {
		return Config{}, false, fmt.Errorf("environment: %w", err)
	}
	return c, has, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func parseBool(v string) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool")
	}
}
