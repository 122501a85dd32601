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

func scanProductRow(scan func(dest ...any) error) (*catalog.Product, error) {
	var p catalog.Product
	var price, createdAt string
	if err := scan(&p.ID, &p.Name, &price, &p.Stock, &createdAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse product price: %w", err)
	}
	p.Price = d
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse product created_at: %w", err)
	}
	p.CreatedAt = t
	return &p, nil
}

// GetProduct fetches a product by id.
// Returns a catalog not-found error if the id does not exist.
func (q queries) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	row := q.q.QueryRowContext(ctx, `
		SELECT id, name, price, stock, created_at FROM products WHERE id = ?
	`, id)
	p, err := scanProductRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.NewNotFound("Product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetProductByName fetches a product by name. Names are not unique in the
// schema; the first match by creation order is returned. Used by seeding
// for get-or-create semantics.
func (q queries) GetProductByName(ctx context.Context, name string) (*catalog.Product, error) {
	row := q.q.QueryRowContext(ctx, `
		SELECT id, name, price, stock, created_at FROM products
		WHERE name = ? ORDER BY created_at, id LIMIT 1
	`, name)
	p, err := scanProductRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.NewNotFound("Product", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// GetProducts resolves a batch of product ids. Products come back in the
// order of the requested ids; ids with no row are reported in missing.
// Duplicate ids resolve to the same product once.
func (q queries) GetProducts(ctx context.Context, ids []string) (found []catalog.Product, missing []string, err error) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, err := q.GetProduct(ctx, id)
		if catalog.IsNotFound(err) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		found = append(found, *p)
	}
	return found, missing, nil
}

// InsertProduct inserts a product row. Price must be pre-rounded to two
// decimal places.
func (q queries) InsertProduct(ctx context.Context, p *catalog.Product) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Price.String(), p.Stock, p.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct persists name and price for an existing product.
// Stock changes go through SetStock so they stay visible to the ledger.
func (q queries) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	_, err := q.q.ExecContext(ctx, `
		UPDATE products SET name = ?, price = ? WHERE id = ?
	`, p.Name, p.Price.String(), p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetStock writes an absolute stock value for a product. The schema CHECK
// constraint rejects negative values as a backstop; callers validate first.
func (q queries) SetStock(ctx context.Context, productID string, stock int) error {
	res, err := q.q.ExecContext(ctx, `
		UPDATE products SET stock = ? WHERE id = ?
	`, stock, productID)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set stock: rows affected: %w", err)
	}
	if n == 0 {
		return catalog.NewNotFound("Product", productID)
	}
	return nil
}

// DeleteProduct removes a product row. Referential blocking (products
// referenced by orders) is the coordinator's responsibility; the foreign
// key on order_products.product_id is the backstop.
func (q queries) DeleteProduct(ctx context.Context, id string) error {
	_, err := q.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CountOrdersForProduct returns how many orders currently reference the
// product, via the reverse index on order_products.
func (q queries) CountOrdersForProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM order_products WHERE product_id = ?
	`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders for product: %w", err)
	}
	return n, nil
}

// ListProducts returns all products ordered by creation.
func (q queries) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, name, price, stock, created_at FROM products ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProductRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}
