package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Customer not found", NewNotFound("Customer", "c1").Message)
	assert.Equal(t, "Products not found: [p1 p2]", NewMissingProducts([]string{"p1", "p2"}).Message)
	assert.Equal(t, "Products out of stock: Laptop, Phone", NewOutOfStock([]string{"Laptop", "Phone"}).Message)
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("Order", "o1")))
	assert.True(t, IsValidation(NewValidation("bad")))
	assert.True(t, IsStockError(NewOutOfStock([]string{"Laptop"})))
	assert.True(t, IsConflict(NewConflict("dup")))
	assert.True(t, IsTransaction(NewTransaction(errors.New("boom"))))

	// Predicates are exclusive per code.
	assert.False(t, IsNotFound(NewValidation("bad")))
	assert.False(t, IsStockError(NewNotFound("Product", "p1")))

	// Wrapped errors still match.
	wrapped := fmt.Errorf("create order: %w", NewOutOfStock([]string{"Phone"}))
	assert.True(t, IsStockError(wrapped))

	// Plain errors match nothing.
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestErrorString(t *testing.T) {
	err := NewOutOfStock([]string{"Laptop"})
	assert.Equal(t, "STOCK: Products out of stock: Laptop", err.Error())
}
