package order

import (
	"context"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/ledger"
	"github.com/Stev1000/storefront/internal/store"
)

// CreateOrder creates an order for the customer holding the given product
// set, inside one transaction:
//
//  1. Resolve the customer.
//  2. Resolve every product id; any miss fails the whole call with the
//     full missing list - no partial order is ever created.
//  3. Reserve one unit of every product through the ledger; any
//     under-stock product fails the whole call before a single decrement.
//  4. Insert the order row, attach the product set, cache the total.
//
// Failures come back as (order=nil, success=false, message); nothing is
// applied on failure.
func (c *Coordinator) CreateOrder(ctx context.Context, customerID string, productIDs []string) OrderResult {
	if len(productIDs) == 0 {
		return OrderResult{Message: "Product list cannot be empty"}
	}

	var ord *catalog.Order
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		customer, err := tx.GetCustomer(ctx, customerID)
		if err != nil {
			return err
		}

		ids := dedupe(productIDs)
		products, missing, err := tx.GetProducts(ctx, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return catalog.NewMissingProducts(missing)
		}

		if err := ledger.Apply(ctx, tx, ledger.Reserve(ids)); err != nil {
			return err
		}

		ord = &catalog.Order{
			ID:         c.ids.NewID(),
			CustomerID: customer.ID,
			ProductIDs: ids,
			Total:      ComputeTotal(products),
			CreatedAt:  c.now(),
		}
		if err := tx.InsertOrder(ctx, ord); err != nil {
			return err
		}
		for _, id := range ids {
			if err := tx.AttachProduct(ctx, ord.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return OrderResult{Message: failureMessage(err)}
	}

	c.logger.Info("order created",
		"order_id", ord.ID, "customer_id", ord.CustomerID,
		"products", len(ord.ProductIDs), "total", ord.Total.String())
	return OrderResult{Order: ord, Success: true, Message: "Order created"}
}

// UpdateOrderInput carries the optional fields of an order update.
// Nil fields are skipped. A non-nil ProductIDs is a full replace and must
// be non-empty.
type UpdateOrderInput struct {
	OrderID          string
	CustomerID       *string
	ProductIDs       []string
	AddProductIDs    []string
	RemoveProductIDs []string
}

// UpdateOrder applies the given changes in a fixed sequence inside one
// transaction: customer reassignment, full replace, incremental add,
// incremental remove, then total recomputation from the final product set.
// The first failing step aborts the whole call with nothing applied.
//
// Full replace is stock-neutral on failure: the ledger nets the release
// of the current set against the reservation of the new set in one batch,
// so an under-stock new product rejects the batch with the original
// reservations intact.
//
// Removing a non-member product is a no-op; removing every remaining
// member is rejected - an active order never holds zero products.
func (c *Coordinator) UpdateOrder(ctx context.Context, in UpdateOrderInput) OrderResult {
	var ord *catalog.Order
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		ord, err = tx.GetOrder(ctx, in.OrderID)
		if err != nil {
			return err
		}

		if in.CustomerID != nil {
			customer, err := tx.GetCustomer(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if err := tx.SetOrderCustomer(ctx, ord.ID, customer.ID); err != nil {
				return err
			}
			ord.CustomerID = customer.ID
		}

		if in.ProductIDs != nil {
			if err := c.replaceProducts(ctx, tx, ord, in.ProductIDs); err != nil {
				return err
			}
		}

		if len(in.AddProductIDs) > 0 {
			if err := c.addProducts(ctx, tx, ord, in.AddProductIDs); err != nil {
				return err
			}
		}

		if len(in.RemoveProductIDs) > 0 {
			if err := c.removeProducts(ctx, tx, ord, in.RemoveProductIDs); err != nil {
				return err
			}
		}

		// Recompute the cached total from the final set.
		products, missing, err := tx.GetProducts(ctx, ord.ProductIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return catalog.NewMissingProducts(missing)
		}
		ord.Total = ComputeTotal(products)
		return tx.SetOrderTotal(ctx, ord.ID, ord.Total)
	})
	if err != nil {
		return OrderResult{Message: failureMessage(err)}
	}

	c.logger.Info("order updated",
		"order_id", ord.ID, "products", len(ord.ProductIDs), "total", ord.Total.String())
	return OrderResult{Order: ord, Success: true, Message: "Order updated"}
}

// replaceProducts swaps the order's entire product set for next in one
// ledger batch.
func (c *Coordinator) replaceProducts(ctx context.Context, tx *store.Tx, ord *catalog.Order, productIDs []string) error {
	next := dedupe(productIDs)
	if len(next) == 0 {
		return catalog.NewValidation("Product list cannot be empty")
	}

	_, missing, err := tx.GetProducts(ctx, next)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return catalog.NewMissingProducts(missing)
	}

	if err := ledger.Apply(ctx, tx, ledger.Rebalance(ord.ProductIDs, next)); err != nil {
		return err
	}

	for _, id := range ord.ProductIDs {
		if _, err := tx.DetachProduct(ctx, ord.ID, id); err != nil {
			return err
		}
	}
	for _, id := range next {
		if err := tx.AttachProduct(ctx, ord.ID, id); err != nil {
			return err
		}
	}
	ord.ProductIDs = next
	return nil
}

// addProducts attaches new members and reserves one unit for each.
// Ids already in the order are skipped: each link carries exactly one
// reservation, so re-adding a member must not reserve a second unit.
func (c *Coordinator) addProducts(ctx context.Context, tx *store.Tx, ord *catalog.Order, productIDs []string) error {
	var adds []string
	for _, id := range dedupe(productIDs) {
		if !ord.HasProduct(id) {
			adds = append(adds, id)
		}
	}
	if len(adds) == 0 {
		return nil
	}

	_, missing, err := tx.GetProducts(ctx, adds)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return catalog.NewMissingProducts(missing)
	}

	if err := ledger.Apply(ctx, tx, ledger.Reserve(adds)); err != nil {
		return err
	}

	for _, id := range adds {
		if err := tx.AttachProduct(ctx, ord.ID, id); err != nil {
			return err
		}
	}
	ord.ProductIDs = append(ord.ProductIDs, adds...)
	return nil
}

// removeProducts detaches members and releases their reservations.
// Non-members are ignored without error.
func (c *Coordinator) removeProducts(ctx context.Context, tx *store.Tx, ord *catalog.Order, productIDs []string) error {
	var removals []string
	for _, id := range dedupe(productIDs) {
		if ord.HasProduct(id) {
			removals = append(removals, id)
		}
	}
	if len(removals) == 0 {
		return nil
	}
	if len(ord.ProductIDs)-len(removals) <= 0 {
		return catalog.NewValidation("Cannot remove all products from an order")
	}

	for _, id := range removals {
		detached, err := tx.DetachProduct(ctx, ord.ID, id)
		if err != nil {
			return err
		}
		if !detached {
			// Membership was checked above inside the same transaction.
			return catalog.NewValidation("Product membership changed during update")
		}
	}
	if err := ledger.Apply(ctx, tx, ledger.Release(removals)); err != nil {
		return err
	}

	kept := ord.ProductIDs[:0:0]
	for _, id := range ord.ProductIDs {
		removed := false
		for _, r := range removals {
			if r == id {
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, id)
		}
	}
	ord.ProductIDs = kept
	return nil
}

// DeleteOrder releases every reservation held by the order and removes
// the record, atomically.
func (c *Coordinator) DeleteOrder(ctx context.Context, orderID string) DeleteResult {
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		ord, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := ledger.Apply(ctx, tx, ledger.Release(ord.ProductIDs)); err != nil {
			return err
		}
		return tx.DeleteOrder(ctx, ord.ID)
	})
	if err != nil {
		return DeleteResult{Message: failureMessage(err)}
	}

	c.logger.Info("order deleted", "order_id", orderID)
	return DeleteResult{Success: true, Message: "Order deleted"}
}
