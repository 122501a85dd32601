package order

import "github.com/Stev1000/storefront/internal/catalog"

// Every mutation returns a uniform shape: the affected entity (nil on
// failure), a success flag, and a human-readable message. Bulk results
// additionally carry the per-item error list; partial success exists only
// for bulk calls.

// OrderResult is the outcome of a single-order mutation.
type OrderResult struct {
	Order   *catalog.Order `json:"order,omitempty"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
}

// CustomerResult is the outcome of a single-customer mutation.
type CustomerResult struct {
	Customer *catalog.Customer `json:"customer,omitempty"`
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
}

// ProductResult is the outcome of a single-product mutation.
type ProductResult struct {
	Product *catalog.Product `json:"product,omitempty"`
	Success bool             `json:"success"`
	Message string           `json:"message"`
}

// BulkCustomersResult is the outcome of a bulk customer create.
// Success reports whether the batch transaction committed; individual
// item failures live in Errors and do not clear it.
type BulkCustomersResult struct {
	Created []catalog.Customer `json:"created"`
	Count   int                `json:"count"`
	Errors  []string           `json:"errors,omitempty"`
	Success bool               `json:"success"`
	Message string             `json:"message"`
}

// BulkProductsResult is the outcome of a bulk product create.
type BulkProductsResult struct {
	Created []catalog.Product `json:"created"`
	Count   int               `json:"count"`
	Errors  []string          `json:"errors,omitempty"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
}

// BulkStockResult is the outcome of a bulk stock update.
type BulkStockResult struct {
	Updated []catalog.Product `json:"updated"`
	Count   int               `json:"count"`
	Errors  []string          `json:"errors,omitempty"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
}

// DeleteResult is the outcome of a delete mutation.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
