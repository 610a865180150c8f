// Package config loads the optional project file (.sourcespell.yaml) and the
// SOURCESPELL_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the base directory when no --config is given.
const DefaultFile = ".sourcespell.yaml"

// Config mirrors the project file. Unset fields leave the built-in default
// (or the command-line flag) in charge.
type Config struct {
	MinLength               *int     `yaml:"min_length"`
	MaxSuggestions          *int     `yaml:"max_suggestions"`
	StringMinLength         *int     `yaml:"string_min_length"`
	SkipAcronyms            *bool    `yaml:"skip_acronyms"`
	SkipIdentifiers         *bool    `yaml:"skip_identifiers"`
	CheckStrings            *bool    `yaml:"check_strings"`
	CaseSensitiveExclusions *bool    `yaml:"case_sensitive_exclusions"`
	Encoding                string   `yaml:"encoding"`
	ExcludedWords           string   `yaml:"excluded_words"`
	Dictionaries            []string `yaml:"dictionaries"`
	IgnorePatterns          []string `yaml:"ignore_patterns"`
	MaxFileSize             string   `yaml:"max_file_size"`
}

func Load(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	expanded, err := expandEnv(string(b))
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no run could use.
func (c Config) Validate() error {
	check := func(name string, v *int, min int) error {
		if v != nil && *v < min {
			return fmt.Errorf("%s must be >= %d", name, min)
		}
		return nil
	}
	if err := check("min_length", c.MinLength, 1); err != nil {
		return err
	}
	if err := check("max_suggestions", c.MaxSuggestions, 0); err != nil {
		return err
	}
	if err := check("string_min_length", c.StringMinLength, 0); err != nil {
		return err
	}
	if _, err := ParseSizeToBytes(c.MaxFileSize); err != nil {
		return err
	}
	return nil
}

// Merge returns c with every field set in o taking precedence.
func (c Config) Merge(o Config) Config {
	if o.MinLength != nil {
		c.MinLength = o.MinLength
	}
	if o.MaxSuggestions != nil {
		c.MaxSuggestions = o.MaxSuggestions
	}
	if o.StringMinLength != nil {
		c.StringMinLength = o.StringMinLength
	}
	if o.SkipAcronyms != nil {
		c.SkipAcronyms = o.SkipAcronyms
	}
	if o.SkipIdentifiers != nil {
		c.SkipIdentifiers = o.SkipIdentifiers
	}
	if o.CheckStrings != nil {
		c.CheckStrings = o.CheckStrings
	}
	if o.CaseSensitiveExclusions != nil {
		c.CaseSensitiveExclusions = o.CaseSensitiveExclusions
	}
	if o.Encoding != "" {
		c.Encoding = o.Encoding
	}
	if o.ExcludedWords != "" {
		c.ExcludedWords = o.ExcludedWords
	}
	if o.Dictionaries != nil {
		c.Dictionaries = o.Dictionaries
	}
	if o.IgnorePatterns != nil {
		c.IgnorePatterns = o.IgnorePatterns
	}
	if o.MaxFileSize != "" {
		c.MaxFileSize = o.MaxFileSize
	}
	return c
}

var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func expandEnv(src string) (string, error) {
	var out strings.Builder
	last := 0
	for _, idx := range envExpr.FindAllStringSubmatchIndex(src, -1) {
		out.WriteString(src[last:idx[0]])
		name := src[idx[2]:idx[3]]
		hasDefault := idx[4] >= 0 && idx[5] >= 0
		defVal := ""
		if hasDefault && idx[6] >= 0 && idx[7] >= 0 {
			defVal = src[idx[6]:idx[7]]
		}
		if v, ok := os.LookupEnv(name); ok {
			out.WriteString(v)
		} else if hasDefault {
			out.WriteString(defVal)
		} else {
			return "", fmt.Errorf("config references unset environment variable: %s", name)
		}
		last = idx[1]
	}
	out.WriteString(src[last:])
	return out.String(), nil
}

// ParseSizeToBytes reads sizes such as "512KB" or "1.5MB". A bare number is
// bytes and "" is zero.
func ParseSizeToBytes(s string) (int64, error) {
	v := strings.TrimSpace(strings.ToUpper(s))
	if v == "" {
		return 0, nil
	}
	units := []struct {
		U string
		M int64
	}{
		{"GB", 1024 * 1024 * 1024},
		{"MB", 1024 * 1024},
		{"KB", 1024},
		{"B", 1},
	}
	for _, unit := range units {
		if strings.HasSuffix(v, unit.U) {
			n := strings.TrimSpace(strings.TrimSuffix(v, unit.U))
			f, err := strconv.ParseFloat(n, 64)
			if err != nil || f < 0 {
				return 0, fmt.Errorf("invalid size: %s", s)
			}
			return int64(f * float64(unit.M)), nil
		}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size: %s", s)
	}
	return n, nil
}
