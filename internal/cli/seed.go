package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/fixture"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog from a fixture file",
		Long: `Seed the catalog from a YAML fixture file.

Seeding is idempotent: customers are matched by email, products by name,
and orders are only created for customers who have none yet. Seeded
orders reserve stock exactly like live ones.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "seed.yaml", "fixture file to apply")

	return cmd
}

func runSeed(opts *SeedOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := fixture.Load(opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading fixture", err)
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res, err := fixture.Seed(cmd.Context(), s, coord, f)
	if err != nil {
		return WrapExitError(ExitFailure, "seeding failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	lines := []string{fmt.Sprintf("Seeded %d customers, %d products, %d orders",
		res.CustomersCreated, res.ProductsCreated, res.OrdersCreated)}
	lines = append(lines, res.Skipped...)
	return formatter.Success(lines)
}
