package order_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stev1000/storefront/internal/order"
)

func TestCreateProduct(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.CreateProduct(context.Background(), order.ProductInput{
		Name:  "Laptop",
		Price: decimal.RequireFromString("999.99"),
		Stock: 10,
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Product created", res.Message)
	assert.Equal(t, "Laptop", res.Product.Name)
	assert.Equal(t, 10, res.Product.Stock)
}

func TestCreateProduct_PriceRoundedAtWrite(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.CreateProduct(context.Background(), order.ProductInput{
		Name:  "Widget",
		Price: decimal.RequireFromString("9.999"),
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "10", res.Product.Price.String())
}

func TestCreateProduct_Invalid(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   order.ProductInput
		message string
	}{
		{
			name:    "empty name",
			input:   order.ProductInput{Price: decimal.NewFromInt(10)},
			message: "Name cannot be empty",
		},
		{
			name:    "zero price",
			input:   order.ProductInput{Name: "Widget"},
			message: "Price must be positive",
		},
		{
			name:    "negative price",
			input:   order.ProductInput{Name: "Widget", Price: decimal.NewFromInt(-1)},
			message: "Price must be positive",
		},
		{
			name:    "negative stock",
			input:   order.ProductInput{Name: "Widget", Price: decimal.NewFromInt(10), Stock: -1},
			message: "Stock cannot be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := coord.CreateProduct(ctx, tt.input)
			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Message)
			assert.Nil(t, res.Product)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	id := mustCreateProduct(t, coord, "Laptop", "1000.00", 10)

	name := "Laptop Pro"
	price := decimal.RequireFromString("1299.999")
	stock := 4
	res := coord.UpdateProduct(ctx, order.UpdateProductInput{
		ID:    id,
		Name:  &name,
		Price: &price,
		Stock: &stock,
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Product updated", res.Message)
	assert.Equal(t, "Laptop Pro", res.Product.Name)
	assert.Equal(t, "1300", res.Product.Price.String())
	assert.Equal(t, 4, res.Product.Stock)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.UpdateProduct(context.Background(), order.UpdateProductInput{ID: "nope"})
	assert.False(t, res.Success)
	assert.Equal(t, "Product not found", res.Message)
}

func TestDeleteProduct(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	id := mustCreateProduct(t, coord, "Laptop", "1000.00", 10)
	res := coord.DeleteProduct(ctx, id)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Product deleted", res.Message)
}

func TestDeleteProduct_ReferencedBlocked(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	customerID := mustCreateCustomer(t, coord, "alice@example.com")
	laptop := mustCreateProduct(t, coord, "Laptop", "1000.00", 10)
	phone := mustCreateProduct(t, coord, "Phone", "500.00", 20)
	created := coord.CreateOrder(ctx, customerID, []string{laptop, phone})
	require.True(t, created.Success, created.Message)

	res := coord.DeleteProduct(ctx, laptop)
	assert.False(t, res.Success)
	assert.Equal(t, "Product is referenced by existing orders", res.Message)

	// Removing the product from the order unblocks deletion.
	upd := coord.UpdateOrder(ctx, order.UpdateOrderInput{
		OrderID:          created.Order.ID,
		RemoveProductIDs: []string{laptop},
	})
	require.True(t, upd.Success, upd.Message)

	res = coord.DeleteProduct(ctx, laptop)
	assert.True(t, res.Success, res.Message)
}

func TestBulkCreateProducts_PerItemIsolation(t *testing.T) {
	coord, s := newTestCoordinator(t)
	ctx := context.Background()

	res := coord.BulkCreateProducts(ctx, []order.ProductInput{
		{Name: "Laptop", Price: decimal.RequireFromString("1000.00"), Stock: 10},
		{Name: "Broken", Price: decimal.RequireFromString("-5"), Stock: 1},
		{Name: "Phone", Price: decimal.RequireFromString("500.00"), Stock: 20},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Created 2 products", res.Message)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"item 2: Price must be positive"}, res.Errors)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestBulkUpdateProductStock(t *testing.T) {
	coord, s := newTestCoordinator(t)
	ctx := context.Background()

	laptop := mustCreateProduct(t, coord, "Laptop", "1000.00", 10)
	phone := mustCreateProduct(t, coord, "Phone", "500.00", 20)

	res := coord.BulkUpdateProductStock(ctx, []order.StockUpdate{
		{ID: laptop, Stock: 3},
		{ID: phone, Stock: 0},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Updated stock for 2 products", res.Message)
	assert.Equal(t, 2, res.Count)

	assert.Equal(t, 3, currentStock(t, s, laptop))
	assert.Equal(t, 0, currentStock(t, s, phone))
}

func TestBulkUpdateProductStock_PerItemIsolation(t *testing.T) {
	coord, s := newTestCoordinator(t)
	ctx := context.Background()

	laptop := mustCreateProduct(t, coord, "Laptop", "1000.00", 10)

	res := coord.BulkUpdateProductStock(ctx, []order.StockUpdate{
		{ID: "ghost", Stock: 5},
		{ID: laptop, Stock: -1},
		{ID: laptop, Stock: 7},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Updated stock for 1 products", res.Message)
	assert.Equal(t, []string{
		"item 1: Product not found",
		"item 2: Stock cannot be negative",
	}, res.Errors)
	assert.Equal(t, 7, currentStock(t, s, laptop))
}
