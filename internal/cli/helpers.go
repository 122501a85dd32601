package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/catalog"
)

// newFormatter builds the output formatter for one command invocation.
// Verbose logs go to stderr to avoid corrupting JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// failMutation reports a failed mutation result and maps it to exit code 1.
func failMutation(f *OutputFormatter, message string) error {
	_ = f.Error("FAILED", message, nil)
	return NewExitError(ExitFailure, message)
}

// failLookup reports a failed read. Domain errors (typically not-found)
// keep their code and exit 1; anything else is a command error.
func failLookup(f *OutputFormatter, err error) error {
	var de *catalog.Error
	if errors.As(err, &de) {
		_ = f.Error(string(de.Code), de.Message, nil)
		return NewExitError(ExitFailure, de.Message)
	}
	return WrapExitError(ExitCommandError, "query failed", err)
}
