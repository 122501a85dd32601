package fixture

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/order"
	"github.com/Stev1000/storefront/internal/store"
)

// SeedResult reports what a seeding run actually did.
type SeedResult struct {
	CustomersCreated int
	ProductsCreated  int
	OrdersCreated    int

	// Skipped lists entities that already existed, one line each.
	Skipped []string
}

// Seed applies a fixture file with get-or-create semantics: customers are
// matched by email, products by name, and an order is only created for a
// customer who has none yet. Running Seed twice with the same file is a
// no-op the second time.
//
// Mutations go through the coordinator so seeded orders reserve stock
// exactly like live ones.
func Seed(ctx context.Context, st *store.Store, coord *order.Coordinator, f *File) (*SeedResult, error) {
	res := &SeedResult{}

	for _, c := range f.Customers {
		if _, err := st.GetCustomerByEmail(ctx, c.Email); err == nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("customer %s already exists", c.Email))
			continue
		} else if !catalog.IsNotFound(err) {
			return nil, err
		}
		r := coord.CreateCustomer(ctx, order.CustomerInput{Name: c.Name, Email: c.Email, Phone: c.Phone})
		if !r.Success {
			return nil, fmt.Errorf("seed customer %s: %s", c.Email, r.Message)
		}
		res.CustomersCreated++
	}

	for _, p := range f.Products {
		if _, err := st.GetProductByName(ctx, p.Name); err == nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("product %s already exists", p.Name))
			continue
		} else if !catalog.IsNotFound(err) {
			return nil, err
		}
		r := coord.CreateProduct(ctx, order.ProductInput{
			Name:  p.Name,
			Price: decimal.NewFromFloat(p.Price),
			Stock: p.Stock,
		})
		if !r.Success {
			return nil, fmt.Errorf("seed product %s: %s", p.Name, r.Message)
		}
		res.ProductsCreated++
	}

	for _, o := range f.Orders {
		customer, err := st.GetCustomerByEmail(ctx, o.CustomerEmail)
		if err != nil {
			return nil, fmt.Errorf("seed order: customer %s: %w", o.CustomerEmail, err)
		}

		n, err := st.CountOrdersForCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			res.Skipped = append(res.Skipped, fmt.Sprintf("order for %s already exists", o.CustomerEmail))
			continue
		}

		productIDs := make([]string, 0, len(o.Products))
		for _, name := range o.Products {
			p, err := st.GetProductByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("seed order: product %s: %w", name, err)
			}
			productIDs = append(productIDs, p.ID)
		}

		r := coord.CreateOrder(ctx, customer.ID, productIDs)
		if !r.Success {
			return nil, fmt.Errorf("seed order for %s: %s", o.CustomerEmail, r.Message)
		}
		res.OrdersCreated++
	}

	return res, nil
}
