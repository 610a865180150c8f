package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" INFO ":  zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"":        zerolog.WarnLevel,
		"bogus":   zerolog.WarnLevel,
		"off":     zerolog.Disabled,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"warning": zerolog.WarnLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if ValidLevel("bogus") {
		t.Fatalf("bogus should be invalid")
	}
	if !ValidLevel("Debug") {
		t.Fatalf("Debug should be valid")
	}
}

func TestNamedWritesComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Level: "debug", Format: "json", Writer: buf})
	defer Init(Options{Level: "off"})

	Named("scan").Debug().Str("path", "a.go").Msg("skipped")
	out := buf.String()
	if !strings.Contains(out, `"component":"scan"`) || !strings.Contains(out, `"path":"a.go"`) {
		t.Fatalf("unexpected log line: %q", out)
	}
}
