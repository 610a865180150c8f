package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"sourcespell/internal/app"
	"sourcespell/internal/logging"
	"sourcespell/internal/output"
)

type rootFlags struct {
	Directory      string
	Ignore         []string
	ExcludedWords  string
	Interactive    bool
	Encoding       string
	Dictionaries   []string
	Format         string
	Config         string
	MaxSuggestions int
	MinLength      int
	LogLevel       string
	ShowVersion    bool
}

func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes the root command and turns its error into an exit code. In
// ndjson and json mode errors are also written to stdout as events.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(args, stdout, stderr)
	root.SetIn(stdin)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if !errors.As(err, &ee) {
		ee = &ExitError{Code: ExitArg, Kind: classifyCobraError(err), Msg: err.Error()}
	}
	if ee.Kind != "" {
		if format := detectFormatFromArgs(args); format != "text" {
			writeCLIError(stdout, format, args, ee.Kind, ee.Msg, ee.Code)
			return ee.Code
		}
	}
	if ee.Msg != "" {
		fmt.Fprintf(stderr, "sourcespell: %s\n", ee.Msg)
	}
	return ee.Code
}

func classifyCobraError(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown command"):
		return "unknown_command"
	case strings.Contains(msg, "flag"):
		return "invalid_flag"
	}
	return "invalid_arguments"
}

// NewRootCmd builds the command tree. argv is recorded in the meta event.
func NewRootCmd(argv []string, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "sourcespell",
		Short:         "Spell-check comments and strings in source code",
		Long:          rootLongHelp(),
		Example:       rootExampleHelp(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !logging.ValidLevel(flags.LogLevel) {
				return &ExitError{Code: ExitArg, Kind: "invalid_log_level", Msg: fmt.Sprintf("unknown log level: %s", flags.LogLevel)}
			}
			logging.Init(logging.Options{Level: flags.LogLevel, Writer: stderr})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ShowVersion {
				printVersion(stdout)
				return nil
			}
			return runCheck(cmd, stdout, flags, argv)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: ExitArg, Kind: "invalid_flag", Msg: err.Error()}
	})
	bindFlags(root, flags)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(stdout)
		},
	})
	root.AddCommand(newMCPCmd())
	return root
}

func bindFlags(cmd *cobra.Command, flags *rootFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.Directory, "directory", "d", ".", "base directory to check")
	f.StringArrayVarP(&flags.Ignore, "ignore", "I", nil, "path or glob to ignore, relative to the base directory (repeatable)")
	f.StringVarP(&flags.ExcludedWords, "excluded-words", "x", "", "excluded-words file (default .excluded-words in the base directory)")
	f.BoolVarP(&flags.Interactive, "interactive", "i", false, "walk findings one by one and fix them in place")
	f.StringVarP(&flags.Encoding, "encoding", "E", "", "text encoding of the source files (default utf-8, auto to detect)")
	f.StringArrayVarP(&flags.Dictionaries, "dictionary", "D", nil, "extra word-list file, one word per line (repeatable)")
	f.StringVar(&flags.Format, "format", "text", "output format: text/ndjson/json")
	f.StringVar(&flags.Config, "config", "", "project config file (default .sourcespell.yaml in the base directory)")
	f.IntVar(&flags.MaxSuggestions, "max-suggestions", 0, "maximum suggestions per finding (default 5)")
	f.IntVar(&flags.MinLength, "min-length", 0, "shortest word that is checked (default 1)")
	f.BoolVarP(&flags.ShowVersion, "version", "v", false, "print version information")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", os.Getenv("SOURCESPELL_LOG_LEVEL"), "diagnostic log level: trace/debug/info/warn/error/off")
}

func runCheck(cmd *cobra.Command, stdout io.Writer, flags *rootFlags, argv []string) error {
	if err := output.ValidateFormat(flags.Format); err != nil {
		return &ExitError{Code: ExitArg, Kind: "invalid_output_format", Msg: err.Error()}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: ExitArg, Kind: "cwd_failed", Msg: fmt.Sprintf("reading the working directory: %v", err)}
	}
	opts := app.Options{
		Mode:          app.ModeBatch,
		Base:          flags.Directory,
		CWD:           cwd,
		Ignore:        flags.Ignore,
		ExcludedWords: flags.ExcludedWords,
		Encoding:      flags.Encoding,
		Dictionaries:  flags.Dictionaries,
		ConfigPath:    flags.Config,
		Format:        flags.Format,
		Version:       Version,
		Args:          argv,
	}
	if cmd.Flags().Changed("max-suggestions") {
		opts.MaxSuggestions = &flags.MaxSuggestions
	}
	if cmd.Flags().Changed("min-length") {
		opts.MinLength = &flags.MinLength
	}
	if flags.Interactive {
		opts.Mode = app.ModeInteractive
		opts.Stdin = cmd.InOrStdin()
		opts.Stdout = stdout
		opts.Color = isTerminal(stdout)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := app.Run(ctx, opts)
	if err != nil {
		var argErr *app.ArgErr
		var cfgErr *app.ConfigErr
		switch {
		case errors.As(err, &argErr):
			return &ExitError{Code: ExitArg, Kind: "invalid_arguments", Msg: err.Error()}
		case errors.As(err, &cfgErr):
			return &ExitError{Code: ExitArg, Kind: "config_invalid", Msg: err.Error()}
		default:
			return &ExitError{Code: ExitFindings, Kind: "run_failed", Msg: err.Error()}
		}
	}
	// Interactive text mode has already shown everything on the terminal.
	if !(flags.Interactive && flags.Format == "text") {
		if werr := output.Write(stdout, flags.Format, res.Events); werr != nil {
			return &ExitError{Code: ExitFindings, Kind: "output_write_failed", Msg: fmt.Sprintf("writing output: %v", werr)}
		}
	}
	if res.ExitCode != ExitOK {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
