package cmd

import (
	"io"
	"strings"

	"sourcespell/internal/output"
)

type cliErrorHint struct {
	NextAction  string
	FixExample  string
	DocKey      string
	Recoverable bool
}

// writeCLIError reports a failure that stopped the run before any file was
// read, framed by the same meta and summary events as a normal run.
func writeCLIError(w io.Writer, format string, args []string, code, detail string, exitCode int) {
	h := cliHintByCode(code)
	events := []map[string]any{
		{
			"type":          "meta",
			"tool":          "sourcespell",
			"version":       Version,
			"args":          args,
			"output_format": format,
		},
		{
			"type":        "error",
			"code":        code,
			"category":    "argument",
			"path":        "",
			"detail":      detail,
			"next_action": h.NextAction,
			"fix_example": h.FixExample,
			"doc_key":     h.DocKey,
			"recoverable": h.Recoverable,
		},
		{
			"type":            "summary",
			"total_files":     0,
			"processed_files": 0,
			"skipped_files":   0,
			"finding_count":   0,
			"error_count":     1,
			"exit_code":       exitCode,
		},
	}
	_ = output.Write(w, normalizeFormat(format), events)
}

func normalizeFormat(format string) string {
	switch format {
	case "json", "ndjson":
		return format
	}
	return "text"
}

// detectFormatFromArgs finds --format without relying on cobra, which may
// have failed before the flag was parsed. An invalid value falls back to text.
func detectFormatFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		a := strings.TrimSpace(args[i])
		if a == "--" {
			break
		}
		if a == "--format" {
			if i+1 < len(args) {
				return normalizeFormat(args[i+1])
			}
			continue
		}
		if strings.HasPrefix(a, "--format=") {
			return normalizeFormat(strings.TrimPrefix(a, "--format="))
		}
	}
	return "text"
}

func cliHintByCode(code string) cliErrorHint {
	switch code {
	case "invalid_output_format":
		return cliErrorHint{
			NextAction:  "set --format to text, ndjson or json",
			FixExample:  "sourcespell -d /path/to/project --format ndjson",
			DocKey:      "arg.invalid_output_format",
			Recoverable: true,
		}
	case "invalid_flag":
		return cliErrorHint{
			NextAction:  "check the flag name and value against --help",
			FixExample:  "sourcespell --help",
			DocKey:      "arg.invalid_flag",
			Recoverable: true,
		}
	case "invalid_log_level":
		return cliErrorHint{
			NextAction:  "set --log-level to trace, debug, info, warn, error or off",
			FixExample:  "sourcespell -d /path/to/project --log-level debug",
			DocKey:      "arg.invalid_log_level",
			Recoverable: true,
		}
	case "invalid_arguments":
		return cliErrorHint{
			NextAction:  "make sure --directory exists and --encoding, --min-length and --max-suggestions are valid",
			FixExample:  "sourcespell -d /path/to/project -E utf-8",
			DocKey:      "arg.invalid_arguments",
			Recoverable: true,
		}
	case "config_invalid":
		return cliErrorHint{
			NextAction:  "fix the project config, the SOURCESPELL_* variables or the word lists it names",
			FixExample:  "sourcespell -d /path/to/project --config /path/to/.sourcespell.yaml",
			DocKey:      "config.invalid",
			Recoverable: true,
		}
	case "cwd_failed":
		return cliErrorHint{
			NextAction:  "run from a readable working directory",
			FixExample:  "cd /path/to/project && sourcespell",
			DocKey:      "runtime.cwd_failed",
			Recoverable: true,
		}
	case "output_write_failed":
		return cliErrorHint{
			NextAction:  "check that the output pipe or redirect target is writable",
			FixExample:  "sourcespell -d /path/to/project --format ndjson > findings.ndjson",
			DocKey:      "runtime.output_write_failed",
			Recoverable: true,
		}
	case "unknown_command":
		return cliErrorHint{
			NextAction:  "check the command spelling or see the help",
			FixExample:  "sourcespell --help",
			DocKey:      "arg.unknown_command",
			Recoverable: true,
		}
	default:
		return cliErrorHint{
			NextAction:  "fix the arguments or config according to detail and retry",
			FixExample:  "sourcespell --help",
			DocKey:      "general.error",
			Recoverable: true,
		}
	}
}
