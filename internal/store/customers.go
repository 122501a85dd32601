package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Stev1000/storefront/internal/catalog"
)

// Timestamps are stored as RFC 3339 text in UTC.
const timeLayout = time.RFC3339Nano

func scanCustomer(row *sql.Row) (*catalog.Customer, error) {
	var c catalog.Customer
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse customer created_at: %w", err)
	}
	c.CreatedAt = t
	return &c, nil
}

// GetCustomer fetches a customer by id.
// Returns a catalog not-found error if the id does not exist.
func (q queries) GetCustomer(ctx context.Context, id string) (*catalog.Customer, error) {
	row := q.q.QueryRowContext(ctx, `
		SELECT id, name, email, phone, created_at FROM customers WHERE id = ?
	`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.NewNotFound("Customer", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetCustomerByEmail fetches a customer by normalized email.
// Returns a catalog not-found error if no customer has the address.
func (q queries) GetCustomerByEmail(ctx context.Context, email string) (*catalog.Customer, error) {
	row := q.q.QueryRowContext(ctx, `
		SELECT id, name, email, phone, created_at FROM customers WHERE email = ?
	`, catalog.NormalizeEmail(email))
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.NewNotFound("Customer", email)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

// InsertCustomer inserts a customer row. The email must already be
// normalized; uniqueness is enforced by the schema.
func (q queries) InsertCustomer(ctx context.Context, c *catalog.Customer) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Phone, c.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// UpdateCustomer persists name, email, and phone for an existing customer.
func (q queries) UpdateCustomer(ctx context.Context, c *catalog.Customer) error {
	_, err := q.q.ExecContext(ctx, `
		UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?
	`, c.Name, c.Email, c.Phone, c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// DeleteCustomer removes a customer row. Referential blocking (customers
// with orders) is the coordinator's responsibility; the foreign key on
// orders.customer_id is the backstop.
func (q queries) DeleteCustomer(ctx context.Context, id string) error {
	_, err := q.q.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// CountOrdersForCustomer returns the number of orders owned by the customer.
func (q queries) CountOrdersForCustomer(ctx context.Context, customerID string) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE customer_id = ?
	`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders for customer: %w", err)
	}
	return n, nil
}

// ListCustomers returns all customers ordered by creation.
func (q queries) ListCustomers(ctx context.Context) ([]catalog.Customer, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, name, email, phone, created_at FROM customers ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []catalog.Customer
	for rows.Next() {
		var c catalog.Customer
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse customer created_at: %w", err)
		}
		c.CreatedAt = t
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}
