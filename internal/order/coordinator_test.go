package order_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Stev1000/storefront/internal/order"
	"github.com/Stev1000/storefront/internal/store"
)

func newTestCoordinator(t *testing.T) (*order.Coordinator, *store.Store) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	coord := order.New(s, order.WithClock(func() time.Time { return fixed }))
	return coord, s
}

func mustCreateCustomer(t *testing.T, c *order.Coordinator, email string) string {
	t.Helper()

	res := c.CreateCustomer(context.Background(), order.CustomerInput{
		Name:  "Test Customer",
		Email: email,
		Phone: "123456789",
	})
	require.True(t, res.Success, "CreateCustomer: %s", res.Message)
	return res.Customer.ID
}

func mustCreateProduct(t *testing.T, c *order.Coordinator, name, price string, stock int) string {
	t.Helper()

	res := c.CreateProduct(context.Background(), order.ProductInput{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	require.True(t, res.Success, "CreateProduct: %s", res.Message)
	return res.Product.ID
}

func currentStock(t *testing.T, s *store.Store, id string) int {
	t.Helper()

	p, err := s.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func currentTotal(t *testing.T, s *store.Store, orderID string) decimal.Decimal {
	t.Helper()

	o, err := s.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	return o.Total
}
