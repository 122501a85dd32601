// Package catalog defines the storefront domain entities and the shared
// error taxonomy used across the store, ledger, and order packages.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a storefront customer. Email is unique across the catalog
// (case-normalized, see NormalizeEmail). Phone is optional.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Product is a sellable item. Price is always strictly positive and
// rounded to two decimal places at write time. Stock never goes negative.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
}

// Order references one customer and a non-empty set of products.
// Quantity is fixed at one unit per order-product link: each link holds
// exactly one stock reservation.
//
// Total is a cached derived value. It equals the sum of the products'
// prices as of the last successful mutation of the order; later price
// changes do not rewrite it.
type Order struct {
	ID         string
	CustomerID string
	ProductIDs []string
	Total      decimal.Decimal
	CreatedAt  time.Time
}

// HasProduct reports whether the order currently references the product.
func (o *Order) HasProduct(productID string) bool {
	for _, id := range o.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// RoundPrice normalizes a monetary amount to the currency's two decimal
// places. Applied once at write time; totals are sums of already-rounded
// prices and need no further rounding.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
