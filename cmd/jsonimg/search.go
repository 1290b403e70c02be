package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	"github.com/lucas-albers-lz4/jsonimg/pkg/highlight"
)

// newSearchCmd creates the search command
func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search FILE QUERY",
		Short: "Find text in the pretty-printed document, skipping embedded image data",
		Long: `Search prints the document with 2-space indentation and reports every
case-insensitive occurrence of QUERY. Matches inside base64 image data are
left out. With --raw the file text is searched as-is.`,
		Args: requireArgs(cobra.ExactArgs(2)),
		RunE: runSearch,
	}
	cmd.Flags().Bool("raw", false, "Search the file text as-is instead of re-printing it")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get raw flag: %w", err),
		}
	}

	f, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	query := args[1]

	var (
		text    string
		matches []highlight.Match
	)
	if raw {
		text = string(f.Content)
		matches = highlight.ScanMatches(text, query)
	} else {
		r, err := highlight.Render(f.Root)
		if err != nil {
			return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: err}
		}
		text = r.Text
		matches = highlight.Matches(r, query)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, m := range matches {
		line, col, content := lineAt(text, m.Start)
		fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", line, col, m.Path, strings.TrimSpace(content))
	}
	return tw.Flush()
}

// lineAt returns the 1-based line and column of offset and that line's text.
func lineAt(text string, offset int) (line, col int, content string) {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	return strings.Count(text[:offset], "\n") + 1, offset - start + 1, text[start:end]
}
