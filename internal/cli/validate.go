package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/fixture"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixture-file>",
		Short: "Validate a fixture file without writing anything",
		Long: `Validate a YAML fixture file against the catalog schema.

Checks shape and value constraints (non-empty names, positive prices,
non-negative stock, non-empty order product lists) and rejects unknown
fields. The database is not touched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading fixture", err)
	}
	if _, err := fixture.Parse(data); err != nil {
		_ = formatter.Error("VALIDATION", err.Error(), nil)
		return WrapExitError(ExitFailure, "fixture invalid", err)
	}

	return formatter.Success(fmt.Sprintf("%s is valid", path))
}
