package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	"github.com/lucas-albers-lz4/jsonimg/pkg/jsonpath"
)

// newParentCmd creates the parent command
func newParentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parent FILE PATH",
		Short: "Print the object or array that holds the value at PATH",
		Long: `Parent resolves a path such as "user.photos[2].url" and prints the object or
array containing it. With --value the value itself is printed instead.`,
		Args: requireArgs(cobra.ExactArgs(2)),
		RunE: runParent,
	}
	cmd.Flags().Bool("value", false, "Print the value at PATH rather than its parent")
	cmd.Flags().Bool("yaml", false, "Print YAML instead of JSON")
	return cmd
}

func runParent(cmd *cobra.Command, args []string) error {
	valueOnly, err := cmd.Flags().GetBool("value")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get value flag: %w", err),
		}
	}
	asYAML, err := cmd.Flags().GetBool("yaml")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get yaml flag: %w", err),
		}
	}

	path := args[1]
	if path == "" && !valueOnly {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInvalidPath, Err: jsonpath.ErrEmptyPath}
	}

	f, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	var (
		target any
		ok     bool
	)
	if valueOnly {
		target, ok = jsonpath.GetValueAtPath(f.Root, path)
	} else {
		target, ok = jsonpath.GetParentObject(f.Root, path)
	}
	if !ok {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInvalidPath,
			Err:  fmt.Errorf("%w: %s in %s", jsonpath.ErrPathNotFound, path, f.Path),
		}
	}

	var out []byte
	if asYAML {
		out, err = document.MarshalYAML(target)
	} else {
		out, err = document.MarshalIndent(target)
		out = append(out, '\n')
	}
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: err}
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
