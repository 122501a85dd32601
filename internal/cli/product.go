package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Stev1000/storefront/internal/fixture"
	"github.com/Stev1000/storefront/internal/order"
)

// ProductOptions holds flags for the product subcommands.
type ProductOptions struct {
	*RootOptions
	Name  string
	Price string
	Stock int
}

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	create := &cobra.Command{
		Use:           "create",
		Short:         "Create a product",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductCreate(opts, cmd)
		},
	}
	create.Flags().StringVar(&opts.Name, "name", "", "product name")
	create.Flags().StringVar(&opts.Price, "price", "", "product price (e.g. 19.99)")
	create.Flags().IntVar(&opts.Stock, "stock", 0, "initial stock")

	update := &cobra.Command{
		Use:           "update <product-id>",
		Short:         "Update product fields",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductUpdate(opts, args[0], cmd)
		},
	}
	update.Flags().StringVar(&opts.Name, "name", "", "new name")
	update.Flags().StringVar(&opts.Price, "price", "", "new price")
	update.Flags().IntVar(&opts.Stock, "stock", 0, "new absolute stock")

	cmd.AddCommand(create)
	cmd.AddCommand(update)
	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List products",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductList(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "get <product-id>",
		Short:         "Show one product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductGet(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <product-id>",
		Short:         "Delete a product (blocked while referenced by orders)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductDelete(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "import <fixture-file>",
		Short:         "Bulk-create products from a fixture file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductImport(opts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "restock <product-id>=<stock> [<product-id>=<stock>...]",
		Short:         "Bulk-set absolute stock values",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductRestock(opts, args, cmd)
		},
	})

	return cmd
}

func runProductCreate(opts *ProductOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	price, err := decimal.NewFromString(opts.Price)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --price %q", opts.Price), err)
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.CreateProduct(cmd.Context(), order.ProductInput{
		Name:  opts.Name,
		Price: price,
		Stock: opts.Stock,
	})
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(fmt.Sprintf("%s: %s", res.Message, res.Product.ID))
}

func runProductUpdate(opts *ProductOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	in := order.UpdateProductInput{ID: id}
	if cmd.Flags().Changed("name") {
		in.Name = &opts.Name
	}
	if cmd.Flags().Changed("price") {
		price, err := decimal.NewFromString(opts.Price)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --price %q", opts.Price), err)
		}
		in.Price = &price
	}
	if cmd.Flags().Changed("stock") {
		in.Stock = &opts.Stock
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.UpdateProduct(cmd.Context(), in)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(res.Message)
}

func runProductList(opts *ProductOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	products, err := s.ListProducts(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing products", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(products)
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%d", p.ID, p.Name, p.Price.StringFixed(2), p.Stock))
	}
	return formatter.Success(lines)
}

func runProductGet(opts *ProductOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.GetProduct(cmd.Context(), id)
	if err != nil {
		return failLookup(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(p)
	}
	return formatter.Success([]string{
		"ID:    " + p.ID,
		"Name:  " + p.Name,
		"Price: " + p.Price.StringFixed(2),
		"Stock: " + strconv.Itoa(p.Stock),
	})
}

func runProductDelete(opts *ProductOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.DeleteProduct(cmd.Context(), id)
	if !res.Success {
		return failMutation(formatter, res.Message)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	return formatter.Success(res.Message)
}

func runProductImport(opts *ProductOptions, path string, cmd *cobra.Command) error {
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

	items := make([]order.ProductInput, 0, len(f.Products))
	for _, p := range f.Products {
		items = append(items, order.ProductInput{
			Name:  p.Name,
			Price: decimal.NewFromFloat(p.Price),
			Stock: p.Stock,
		})
	}

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.BulkCreateProducts(cmd.Context(), items)
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

func runProductRestock(opts *ProductOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	items := make([]order.StockUpdate, 0, len(args))
	for _, arg := range args {
		id, stockStr, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid restock item %q: want <product-id>=<stock>", arg))
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid stock in %q", arg), err)
		}
		items = append(items, order.StockUpdate{ID: id, Stock: stock})
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	coord := newCoordinator(s, opts.RootOptions, cmd.ErrOrStderr())
	res := coord.BulkUpdateProductStock(cmd.Context(), items)
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
