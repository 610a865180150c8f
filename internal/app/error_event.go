package app

import "sourcespell/internal/collect"

type errorHint struct {
	NextAction  string
	FixExample  string
	DocKey      string
	Recoverable bool
}

func buildErrorEvent(category, code, path, detail string) map[string]any {
	h := hintByCode(code)
	return map[string]any{
		"type":        "error",
		"code":        code,
		"category":    category,
		"path":        path,
		"detail":      detail,
		"next_action": h.NextAction,
		"fix_example": h.FixExample,
		"doc_key":     h.DocKey,
		"recoverable": h.Recoverable,
	}
}

func fileErrorEvent(fe *collect.FileError, path string) map[string]any {
	code := "file_error"
	switch fe.Kind {
	case collect.DecodeError:
		code = "decode_failed"
	case collect.ParseError:
		code = "parse_failed"
	case collect.IOError:
		code = "io_failed"
	}
	e := buildErrorEvent("file", code, path, fe.Message)
	e["kind"] = string(fe.Kind)
	return e
}

func hintByCode(code string) errorHint {
	switch code {
	case "input_path_not_found", "input_not_directory":
		return errorHint{
			NextAction:  "check that the base directory exists and is spelled correctly",
			FixExample:  "sourcespell -d /path/to/project",
			DocKey:      "input.path_not_found",
			Recoverable: true,
		}
	case "input_abs_failed", "input_stat_failed", "walk_error", "symlink_broken", "file_stat_failed":
		return errorHint{
			NextAction:  "check permissions on the path or ignore it",
			FixExample:  "sourcespell -d /path/to/project -I path/to/unreadable",
			DocKey:      "input.path_access",
			Recoverable: true,
		}
	case "io_failed":
		return errorHint{
			NextAction:  "check that the file is readable and writable, then run again",
			FixExample:  "chmod u+rw path/to/file && sourcespell -i",
			DocKey:      "file.io_failed",
			Recoverable: true,
		}
	case "decode_failed":
		return errorHint{
			NextAction:  "pass the encoding the files are written in, or convert the file to utf-8",
			FixExample:  "sourcespell -E latin1   # or: -E auto",
			DocKey:      "file.decode_failed",
			Recoverable: true,
		}
	case "parse_failed":
		return errorHint{
			NextAction:  "fix the syntax error at the reported line or ignore the file",
			FixExample:  "sourcespell -I path/to/broken.py",
			DocKey:      "file.parse_failed",
			Recoverable: true,
		}
	default:
		return errorHint{
			NextAction:  "correct the input or config according to detail and run again",
			FixExample:  "sourcespell --help",
			DocKey:      "general.error",
			Recoverable: true,
		}
	}
}
