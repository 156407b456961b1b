package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cdoc/internal/source"
)

const stdinName = "<stdin>"

// isStdin reports whether args ask for a single body on standard input.
func isStdin(args []string) bool {
	return len(args) == 1 && args[0] == "-"
}

// loadBody loads one comment body from a file or, for "-", from stdin.
func loadBody(cmd *cobra.Command, fs *source.FileSet, arg string) (source.FileID, error) {
	if arg != "-" {
		id, err := fs.Load(arg)
		if err != nil {
			return 0, fmt.Errorf("failed to load %s: %w", arg, err)
		}
		return id, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return 0, fmt.Errorf("failed to read stdin: %w", err)
	}
	return fs.AddVirtual(stdinName, data), nil
}
