package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/fixture"
	"github.com/Stev1000/storefront/internal/order"
)

// CustomerOptions holds flags for the customer subcommands.
type CustomerOptions struct {
	*RootOptions
	Name  string
	Email string
	Phone string
}

// NewCustomerCommand creates the customer command group.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CustomerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	create := &cobra.Command{
		Use:           "create",
		Short:         "Create a customer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerCreate(opts, cmd)
		},
	}
	create.Flags().StringVar(&opts.Name, "name", "", "customer name")
	create.Flags().StringVar(&opts.Email, "email", "", "customer email (unique)")
	create.Flags().StringVar(&opts.Phone, "phone", "", "customer phone (optional)")

	update := &cobra.Command{
		Use:           "update <customer-id>",
		Short:         "Update customer fields",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerUpdate(opts, args[0], cmd)
		},
	}
	update.Flags().StringVar(&opts.Name, "name", "", "new name")
	update.Flags().StringVar(&opts.Email, "email", "", "new email")
	update.Flags().StringVar(&opts.Phone, "phone", "", "new phone")

	cmd.AddCommand(create)
	cmd.AddCommand(update)
	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List customers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "get <customer-id>",
		Short:         "Show one customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerGet(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <customer-id>",
		Short:         "Delete a customer (blocked while orders exist)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerDelete(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "import <fixture-file>",
		Short:         "Bulk-create customers from a fixture file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerImport(opts, args[0], cmd)
		},
	})

	return cmd
}

func runCustomerCreate(opts *CustomerOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.CreateCustomer(cmd.Context(), order.CustomerInput{
		Name:  opts.Name,
		Email: opts.Email,
		Phone: opts.Phone,
	})
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(fmt.Sprintf("%s: %s", res.Message, res.Customer.ID))
}

func runCustomerUpdate(opts *CustomerOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	in := order.UpdateCustomerInput{ID: id}
	if cmd.Flags().Changed("name") {
		in.Name = &opts.Name
	}
	if cmd.Flags().Changed("email") {
		in.Email = &opts.Email
	}
	if cmd.Flags().Changed("phone") {
		in.Phone = &opts.Phone
	}

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.UpdateCustomer(cmd.Context(), in)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(res.Message)
}

func runCustomerList(opts *CustomerOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	customers, err := s.ListCustomers(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing customers", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(customers)
	}
	lines := make([]string, 0, len(customers))
	for _, c := range customers {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%s", c.ID, c.Name, c.Email, c.Phone))
	}
	return formatter.Success(lines)
}

func runCustomerGet(opts *CustomerOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.GetCustomer(cmd.Context(), id)
	if err != nil {
		return failLookup(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(c)
	}
	return formatter.Success([]string{
		"ID:    " + c.ID,
		"Name:  " + c.Name,
		"Email: " + c.Email,
		"Phone: " + c.Phone,
	})
}

func runCustomerDelete(opts *CustomerOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.DeleteCustomer(cmd.Context(), id)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(res.Message)
}

func runCustomerImport(opts *CustomerOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := fixture.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading fixture", err)
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	items := make([]order.CustomerInput, 0, len(f.Customers))
	for _, c := range f.Customers {
		items = append(items, order.CustomerInput{Name: c.Name, Email: c.Email, Phone: c.Phone})
	}

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.BulkCreateCustomers(cmd.Context(), items)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	lines := []string{res.Message}
	lines = append(lines, res.Errors...)
	return formatter.Success(lines)
}
