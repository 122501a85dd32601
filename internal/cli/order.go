package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/order"
)

// OrderOptions holds flags for the order subcommands.
type OrderOptions struct {
	*RootOptions
	CustomerID string
	Products   []string
	Add        []string
	Remove     []string
}

// NewOrderCommand creates the order command group.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}

	create := &cobra.Command{
		Use:           "create",
		Short:         "Create an order, reserving one unit of each product",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderCreate(opts, cmd)
		},
	}
	create.Flags().StringVar(&opts.CustomerID, "customer", "", "customer id")
	create.Flags().StringSliceVar(&opts.Products, "product", nil, "product id (repeatable)")

	update := &cobra.Command{
		Use:           "update <order-id>",
		Short:         "Update an order, rebalancing stock and total",
		Long: `Update an order inside one transaction.

Changes apply in a fixed sequence: --customer reassignment, --products
full replace, --add, --remove, then total recomputation. The first
failing step aborts the whole update with no stock movement.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderUpdate(opts, args[0], cmd)
		},
	}
	update.Flags().StringVar(&opts.CustomerID, "customer", "", "reassign to customer id")
	update.Flags().StringSliceVar(&opts.Products, "products", nil, "full replacement product set")
	update.Flags().StringSliceVar(&opts.Add, "add", nil, "product ids to add")
	update.Flags().StringSliceVar(&opts.Remove, "remove", nil, "product ids to remove")

	cmd.AddCommand(create)
	cmd.AddCommand(update)
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <order-id>",
		Short:         "Delete an order, releasing its reservations",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderDelete(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List orders",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "get <order-id>",
		Short:         "Show one order",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderGet(opts, args[0], cmd)
		},
	})

	return cmd
}

func runOrderCreate(opts *OrderOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.CreateOrder(cmd.Context(), opts.CustomerID, opts.Products)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(fmt.Sprintf("%s: %s (total %s)", res.Message, res.Order.ID, res.Order.Total.StringFixed(2)))
}

func runOrderUpdate(opts *OrderOptions, orderID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	in := order.UpdateOrderInput{OrderID: orderID}
	if cmd.Flags().Changed("customer") {
		in.CustomerID = &opts.CustomerID
	}
	if cmd.Flags().Changed("products") {
		in.ProductIDs = opts.Products
	}
	in.AddProductIDs = opts.Add
	in.RemoveProductIDs = opts.Remove

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.UpdateOrder(cmd.Context(), in)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(fmt.Sprintf("%s (total %s)", res.Message, res.Order.Total.StringFixed(2)))
}

func runOrderDelete(opts *OrderOptions, orderID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.DeleteOrder(cmd.Context(), orderID)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(res.Message)
}

func runOrderList(opts *OrderOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	orders, err := s.ListOrders(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing orders", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(orders)
	}
	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%d products\t%s",
			o.ID, o.CustomerID, len(o.ProductIDs), o.Total.StringFixed(2)))
	}
	return formatter.Success(lines)
}

func runOrderGet(opts *OrderOptions, orderID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	o, err := s.GetOrder(cmd.Context(), orderID)
	if err != nil {
		return failLookup(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(o)
	}
	return formatter.Success([]string{
		"ID:       " + o.ID,
		"Customer: " + o.CustomerID,
		"Products: " + strings.Join(o.ProductIDs, ", "),
		"Total:    " + o.Total.StringFixed(2),
	})
}
