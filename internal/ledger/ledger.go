// Package ledger applies batches of signed stock deltas to products as a
// single unit. Every stock movement in the storefront - reservations on
// order create, releases on order delete, the rebalance inside an order
// update - goes through Apply, so stock and order membership never drift
// independently.
package ledger

import (
	"context"
	"sort"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/store"
)

// Apply applies the given stock deltas within tx, all or nothing.
//
// Deltas map product id to a signed quantity: -1 reserves one unit, +1
// releases one. A delta of zero is allowed and is a no-op for that product
// (it still requires the product to exist).
//
// Precondition: for every product whose delta is negative, the resulting
// stock must be >= 0. If any product fails, nothing is applied and the
// returned error is a stock error naming every violating product. If any
// delta references an unknown product id, nothing is applied and the
// returned error is a validation error listing the missing ids.
//
// Apply is NOT idempotent: deltas are movements, not target values, and
// re-applying a batch after a successful commit double-counts it. The
// caller owns exactly-once semantics via its transaction boundary.
func Apply(ctx context.Context, tx *store.Tx, deltas map[string]int) error {
	if len(deltas) == 0 {
		return nil
	}

	// Deterministic order: violation messages and write order must not
	// depend on map iteration.
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products, missing, err := tx.GetProducts(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return catalog.NewMissingProducts(missing)
	}

	// Check every precondition before touching any row.
	var violations []string
	for _, p := range products {
		if deltas[p.ID] < 0 && p.Stock+deltas[p.ID] < 0 {
			violations = append(violations, p.Name)
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		return catalog.NewOutOfStock(violations)
	}

	for _, p := range products {
		if deltas[p.ID] == 0 {
			continue
		}
		if err := tx.SetStock(ctx, p.ID, p.Stock+deltas[p.ID]); err != nil {
			return err
		}
	}
	return nil
}

// Reserve builds the delta batch for taking one unit of each product.
// Duplicate ids collapse to a single reservation (set semantics).
func Reserve(productIDs []string) map[string]int {
	deltas := make(map[string]int, len(productIDs))
	for _, id := range productIDs {
		deltas[id] = -1
	}
	return deltas
}

// Release builds the delta batch for returning one unit of each product.
func Release(productIDs []string) map[string]int {
	deltas := make(map[string]int, len(productIDs))
	for _, id := range productIDs {
		deltas[id] = 1
	}
	return deltas
}

// Rebalance builds the combined delta batch for a full replace: one
// release per current product plus one reservation per new product.
// Products present in both sets net to zero, so a kept product can never
// fail the under-stock precondition.
func Rebalance(current, next []string) map[string]int {
	deltas := make(map[string]int, len(current)+len(next))
	for _, id := range current {
		deltas[id] = 1
	}
	for _, id := range next {
		deltas[id] += -1
	}
	return deltas
}
