package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/order"
)

func TestComputeTotal(t *testing.T) {
	products := []catalog.Product{
		{Price: decimal.RequireFromString("1000.00")},
		{Price: decimal.RequireFromString("0.10")},
		{Price: decimal.RequireFromString("0.20")},
	}
	assert.Equal(t, "1000.3", order.ComputeTotal(products).String())
}

func TestComputeTotal_Empty(t *testing.T) {
	assert.True(t, order.ComputeTotal(nil).IsZero())
}
