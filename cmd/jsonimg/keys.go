package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	"github.com/lucas-albers-lz4/jsonimg/pkg/keys"
)

// newKeysCmd creates the keys command
func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys FILE",
		Short: "List every distinct object key in a document",
		Long: `Keys prints the distinct object keys found anywhere in the document, sorted.
This is the key set offered to the field suggester.`,
		Args: requireArgs(cobra.ExactArgs(1)),
		RunE: runKeys,
	}
	cmd.Flags().Bool("json", false, "Print the keys as a JSON array")
	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get json flag: %w", err),
		}
	}

	f, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	sorted := keys.Sorted(f.Root)

	var out string
	if asJSON {
		b, err := json.Marshal(sorted)
		if err != nil {
			return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: err}
		}
		out = string(b) + "\n"
	} else if len(sorted) > 0 {
		out = strings.Join(sorted, "\n") + "\n"
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
