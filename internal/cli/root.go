// Package cli implements the backoffice command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/order"
	"github.com/Stev1000/storefront/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// defaultDBPath resolves the database path: --db flag, then the
// STOREFRONT_DB environment variable, then ./storefront.db.
func defaultDBPath() string {
	if env := os.Getenv("STOREFRONT_DB"); env != "" {
		return env
	}
	return "storefront.db"
}

// NewRootCommand creates the root command for the backoffice CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Storefront back-office",
		Long:  "Manage the storefront catalog: customers, products, and orders with inventory-consistent fulfillment.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", defaultDBPath(), "path to the catalog database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewCustomerCommand(opts))
	cmd.AddCommand(NewProductCommand(opts))
	cmd.AddCommand(NewOrderCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore opens the catalog database for a command invocation.
func openStore(opts *RootOptions) (*store.Store, error) {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening database", err)
	}
	return s, nil
}

// newCoordinator builds a coordinator for a command invocation.
// Verbose mode routes coordinator logs to stderr; otherwise they are
// discarded so text output stays clean.
func newCoordinator(s *store.Store, opts *RootOptions, errWriter io.Writer, coordOpts ...order.Option) *order.Coordinator {
	logW := io.Discard
	if opts.Verbose {
		logW = errWriter
	}
	base := []order.Option{
		order.WithLogger(slog.New(slog.NewTextHandler(logW, nil))),
		order.WithIDGenerator(catalog.UUIDv7Generator{}),
	}
	return order.New(s, append(base, coordOpts...)...)
}
