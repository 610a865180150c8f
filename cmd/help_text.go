package cmd

import "strings"

func rootLongHelp() string {
	return strings.TrimSpace(`
Checks the spelling of comments and string literals in source code.

Every file under the base directory (-d) is tokenized by language. Words in
comments, docstrings and string literals are looked up in an English word
list; identifiers, acronyms and words in .excluded-words are left alone.

Two ways to run:
1. Batch (default)
   - command: sourcespell -d /path/to/project
   - prints one line per finding: path - Ln L Col C: word (suggestions)
2. Interactive (-i)
   - command: sourcespell -d /path/to/project -i
   - shows each finding in context and waits for a single key:
     0-9  replace with that suggestion
     a    add the word to .excluded-words
     n    skip the rest of this file
     q    quit; files already finished keep their fixes
     any other key skips the word
   - a file is rewritten once, after its last finding

Scanning:
- .gitignore in the base directory is honored
- hidden files and directories, images, archives and binaries are skipped
- -I adds paths or globs to ignore; ignore_patterns in the config adds globs
- files with no grammar (README, unknown extensions) are checked as plain text

Configuration:
- .sourcespell.yaml in the base directory, or --config
- SOURCESPELL_* environment variables override the file
- flags override both

Output formats (--format):
- text: findings and errors only; nothing for a clean tree
- ndjson / json: meta, finding, skip, warning, error, corrected, summary
  events; error events carry next_action, fix_example, doc_key, recoverable

Exit codes:
- 0 no findings left and no errors
- 1 findings reported (batch), findings left unresolved (interactive), or a
    file could not be read, decoded, parsed or written
- 2 invalid arguments or config
`)
}

func rootExampleHelp() string {
	return strings.TrimSpace(`
  # check the current directory
  sourcespell

  # check a project, ignoring a vendored tree and generated files
  sourcespell -d /path/to/project -I third_party -I '**/*_gen.go'

  # fix findings one by one
  sourcespell -d /path/to/project -i

  # machine-readable output
  sourcespell -d /path/to/project --format ndjson

  # latin-1 sources and a project word list
  sourcespell -d /path/to/project -E windows-1252 -D words/project.txt

  # serve the spellcheck tool over MCP
  sourcespell mcp
`)
}
