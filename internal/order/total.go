package order

import (
	"github.com/shopspring/decimal"

	"github.com/Stev1000/storefront/internal/catalog"
)

// ComputeTotal derives an order total: the sum of the current prices of
// the given products. The empty set yields zero. Prices are already
// rounded to two decimal places at write time, so the sum needs no
// further rounding.
func ComputeTotal(products []catalog.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
