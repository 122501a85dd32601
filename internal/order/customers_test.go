package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stev1000/storefront/internal/order"
)

func TestCreateCustomer(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.CreateCustomer(context.Background(), order.CustomerInput{
		Name:  "Alice",
		Email: "Alice@Example.COM",
		Phone: "123456789",
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Customer created", res.Message)
	assert.NotEmpty(t, res.Customer.ID)
	// Stored form is the normalized address.
	assert.Equal(t, "alice@example.com", res.Customer.Email)
}

func TestCreateCustomer_Invalid(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   order.CustomerInput
		message string
	}{
		{
			name:    "empty name",
			input:   order.CustomerInput{Email: "a@example.com"},
			message: "Name cannot be empty",
		},
		{
			name:    "bad email",
			input:   order.CustomerInput{Name: "Alice", Email: "not-an-email"},
			message: "Invalid email address",
		},
		{
			name:    "bad phone",
			input:   order.CustomerInput{Name: "Alice", Email: "a@example.com", Phone: "abc"},
			message: "Invalid phone number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := coord.CreateCustomer(ctx, tt.input)
			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Message)
			assert.Nil(t, res.Customer)
		})
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	mustCreateCustomer(t, coord, "alice@example.com")

	res := coord.CreateCustomer(ctx, order.CustomerInput{
		Name:  "Other Alice",
		Email: "ALICE@example.com",
	})
	assert.False(t, res.Success)
	assert.Equal(t, "Email already exists", res.Message)
}

func TestUpdateCustomer(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	id := mustCreateCustomer(t, coord, "alice@example.com")

	name := "Alice Renamed"
	phone := "987654321"
	res := coord.UpdateCustomer(ctx, order.UpdateCustomerInput{
		ID:    id,
		Name:  &name,
		Phone: &phone,
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Customer updated", res.Message)
	assert.Equal(t, "Alice Renamed", res.Customer.Name)
	assert.Equal(t, "987654321", res.Customer.Phone)
	// Untouched field stays.
	assert.Equal(t, "alice@example.com", res.Customer.Email)
}

func TestUpdateCustomer_OwnEmailIsNotAConflict(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	id := mustCreateCustomer(t, coord, "alice@example.com")

	email := "ALICE@example.com"
	res := coord.UpdateCustomer(ctx, order.UpdateCustomerInput{ID: id, Email: &email})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "alice@example.com", res.Customer.Email)
}

func TestUpdateCustomer_EmailConflict(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	mustCreateCustomer(t, coord, "alice@example.com")
	bob := mustCreateCustomer(t, coord, "bob@example.com")

	email := "alice@example.com"
	res := coord.UpdateCustomer(ctx, order.UpdateCustomerInput{ID: bob, Email: &email})
	assert.False(t, res.Success)
	assert.Equal(t, "Email already exists", res.Message)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.UpdateCustomer(context.Background(), order.UpdateCustomerInput{ID: "nope"})
	assert.False(t, res.Success)
	assert.Equal(t, "Customer not found", res.Message)
}

func TestDeleteCustomer(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	id := mustCreateCustomer(t, coord, "alice@example.com")

	res := coord.DeleteCustomer(ctx, id)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Customer deleted", res.Message)
}

func TestDeleteCustomer_WithOrdersBlocked(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	id := mustCreateCustomer(t, coord, "alice@example.com")
	laptop := mustCreateProduct(t, coord, "Laptop", "1000.00", 10)
	created := coord.CreateOrder(ctx, id, []string{laptop})
	require.True(t, created.Success, created.Message)

	res := coord.DeleteCustomer(ctx, id)
	assert.False(t, res.Success)
	assert.Equal(t, "Customer has existing orders", res.Message)

	// Deleting the order unblocks the customer.
	del := coord.DeleteOrder(ctx, created.Order.ID)
	require.True(t, del.Success, del.Message)

	res = coord.DeleteCustomer(ctx, id)
	assert.True(t, res.Success, res.Message)
}

func TestBulkCreateCustomers(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.BulkCreateCustomers(context.Background(), []order.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Created 2 customers", res.Message)
	assert.Equal(t, 2, res.Count)
	assert.Empty(t, res.Errors)
}

func TestBulkCreateCustomers_PerItemIsolation(t *testing.T) {
	coord, s := newTestCoordinator(t)
	ctx := context.Background()

	res := coord.BulkCreateCustomers(ctx, []order.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "", Email: "broken@example.com"},
		{Name: "Alice Again", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Created 2 customers", res.Message)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{
		"item 2: Name cannot be empty",
		"item 3: Email already exists",
	}, res.Errors)

	// The good siblings really committed.
	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestBulkCreateCustomers_Empty(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	res := coord.BulkCreateCustomers(context.Background(), nil)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Created 0 customers", res.Message)
	assert.Zero(t, res.Count)
}
