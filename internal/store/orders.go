package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Stev1000/storefront/internal/catalog"
)

// GetOrder fetches an order with its full product id set.
// Returns a catalog not-found error if the id does not exist.
func (q queries) GetOrder(ctx context.Context, id string) (*catalog.Order, error) {
	row := q.q.QueryRowContext(ctx, `
		SELECT id, customer_id, total, created_at FROM orders WHERE id = ?
	`, id)

	var o catalog.Order
	var total, createdAt string
	err := row.Scan(&o.ID, &o.CustomerID, &total, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.NewNotFound("Order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	o.Total = d

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse order created_at: %w", err)
	}
	o.CreatedAt = t

	o.ProductIDs, err = q.OrderProductIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderProductIDs returns the product ids linked to an order, in link
// insertion order (rowid).
func (q queries) OrderProductIDs(ctx context.Context, orderID string) ([]string, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT product_id FROM order_products WHERE order_id = ? ORDER BY rowid
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order product ids: %w", err)
	}
	return ids, nil
}

// InsertOrder inserts the order row only; links go through AttachProduct.
func (q queries) InsertOrder(ctx context.Context, o *catalog.Order) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, total, created_at)
		VALUES (?, ?, ?, ?)
	`, o.ID, o.CustomerID, o.Total.String(), o.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// SetOrderCustomer reassigns an order to a different customer.
func (q queries) SetOrderCustomer(ctx context.Context, orderID, customerID string) error {
	_, err := q.q.ExecContext(ctx, `
		UPDATE orders SET customer_id = ? WHERE id = ?
	`, customerID, orderID)
	if err != nil {
		return fmt.Errorf("set order customer: %w", err)
	}
	return nil
}

// SetOrderTotal writes the recomputed cached total.
func (q queries) SetOrderTotal(ctx context.Context, orderID string, total decimal.Decimal) error {
	_, err := q.q.ExecContext(ctx, `
		UPDATE orders SET total = ? WHERE id = ?
	`, total.String(), orderID)
	if err != nil {
		return fmt.Errorf("set order total: %w", err)
	}
	return nil
}

// AttachProduct links a product to an order. Attaching an already-linked
// product is an error: each link carries exactly one stock reservation,
// so a silent duplicate would desync stock and membership.
func (q queries) AttachProduct(ctx context.Context, orderID, productID string) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO order_products (order_id, product_id) VALUES (?, ?)
	`, orderID, productID)
	if err != nil {
		return fmt.Errorf("attach product: %w", err)
	}
	return nil
}

// DetachProduct unlinks a product from an order. Returns whether a link
// row was actually removed so callers can skip the matching stock release
// for non-members.
func (q queries) DetachProduct(ctx context.Context, orderID, productID string) (bool, error) {
	res, err := q.q.ExecContext(ctx, `
		DELETE FROM order_products WHERE order_id = ? AND product_id = ?
	`, orderID, productID)
	if err != nil {
		return false, fmt.Errorf("detach product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("detach product: rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteOrder removes the order row; links go with it via ON DELETE CASCADE.
func (q queries) DeleteOrder(ctx context.Context, id string) error {
	_, err := q.q.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// ListOrders returns all orders with their product sets, ordered by creation.
func (q queries) ListOrders(ctx context.Context) ([]catalog.Order, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, customer_id, total, created_at FROM orders ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []catalog.Order
	for rows.Next() {
		var o catalog.Order
		var total, createdAt string
		if err := rows.Scan(&o.ID, &o.CustomerID, &total, &createdAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parse order total: %w", err)
		}
		o.Total = d
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse order created_at: %w", err)
		}
		o.CreatedAt = t
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range out {
		ids, err := q.OrderProductIDs(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].ProductIDs = ids
	}
	return out, nil
}
