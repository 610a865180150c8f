package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"sourcespell/internal/app"
	"sourcespell/internal/logging"
	"sourcespell/internal/output"
)

const mcpInstructions = "Checks the spelling of comments and string literals in a source tree. " +
	"Call spellcheck with a directory; findings come back as json events."

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the spellcheck tool over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Named("mcp").Info().Str("version", Version).Msg("serving on stdio")
			if err := server.ServeStdio(newMCPServer()); err != nil {
				return &ExitError{Code: ExitFindings, Msg: fmt.Sprintf("mcp server: %v", err)}
			}
			return nil
		},
	}
}

func newMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"sourcespell",
		Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithInstructions(mcpInstructions),
	)
	s.AddTool(spellcheckTool(), handleSpellcheck)
	return s
}

func spellcheckTool() mcp.Tool {
	return mcp.NewTool("spellcheck",
		mcp.WithDescription("Finds misspelled words in comments and string literals of the source files under a directory, with suggested corrections. Honors .gitignore, .excluded-words and .sourcespell.yaml in that directory."),
		mcp.WithString("directory",
			mcp.Description("Base directory to check (absolute or relative to the server's working directory)"),
			mcp.Required(),
		),
		mcp.WithString("encoding",
			mcp.Description("Text encoding of the source files (default: utf-8; auto to detect)"),
		),
		mcp.WithNumber("max_suggestions",
			mcp.Description("Maximum suggestions per finding (default: 5)"),
		),
		mcp.WithArray("ignore",
			mcp.Description("Paths or globs to ignore, relative to the directory"),
		),
	)
}

// handleSpellcheck runs one batch check and returns its events as json.
// Argument and config problems come back as tool errors, not protocol errors.
func handleSpellcheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments
	dir, ok := arguments["directory"].(string)
	if !ok || dir == "" {
		return nil, errors.New("directory must be a non-empty string")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("reading the working directory: %w", err)
	}
	opts := app.Options{
		Mode:    app.ModeBatch,
		Base:    dir,
		CWD:     cwd,
		Format:  "json",
		Version: Version,
		Args:    []string{"mcp", "spellcheck", dir},
	}
	if enc, ok := arguments["encoding"].(string); ok {
		opts.Encoding = enc
	}
	if n, ok := arguments["max_suggestions"].(float64); ok {
		v := int(n)
		opts.MaxSuggestions = &v
	}
	if raw, ok := arguments["ignore"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				opts.Ignore = append(opts.Ignore, s)
			}
		}
	}

	result := &mcp.CallToolResult{}
	res, err := app.Run(ctx, opts)
	if err != nil {
		var argErr *app.ArgErr
		var cfgErr *app.ConfigErr
		if !errors.As(err, &argErr) && !errors.As(err, &cfgErr) {
			return nil, err
		}
		result.IsError = true
		result.Content = append(result.Content, mcp.TextContent{Type: "text", Text: err.Error()})
		return result, nil
	}
	var buf bytes.Buffer
	if err := output.Write(&buf, "json", res.Events); err != nil {
		return nil, fmt.Errorf("encoding events: %w", err)
	}
	result.Content = append(result.Content, mcp.TextContent{Type: "text", Text: buf.String()})
	return result, nil
}
