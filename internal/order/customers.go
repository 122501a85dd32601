package order

import (
	"context"
	"fmt"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/store"
)

// CustomerInput is the payload for creating a customer.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// validateCustomerInput checks field-level constraints. Pure; reporting
// is the caller's concern.
func validateCustomerInput(in CustomerInput) *catalog.Error {
	if in.Name == "" {
		return catalog.NewValidation("Name cannot be empty")
	}
	if !catalog.ValidateEmail(in.Email) {
		return catalog.NewValidation("Invalid email address")
	}
	if !catalog.ValidatePhone(in.Phone) {
		return catalog.NewValidation("Invalid phone number")
	}
	return nil
}

// createCustomerTx inserts one validated customer inside tx, enforcing
// email uniqueness against the normalized address. Shared by the
// single-unit and per-item-isolated strategies.
func (c *Coordinator) createCustomerTx(ctx context.Context, tx *store.Tx, in CustomerInput) (*catalog.Customer, error) {
	if verr := validateCustomerInput(in); verr != nil {
		return nil, verr
	}

	email := catalog.NormalizeEmail(in.Email)
	if _, err := tx.GetCustomerByEmail(ctx, email); err == nil {
		return nil, catalog.NewConflict("Email already exists")
	} else if !catalog.IsNotFound(err) {
		return nil, err
	}

	customer := &catalog.Customer{
		ID:        c.ids.NewID(),
		Name:      in.Name,
		Email:     email,
		Phone:     in.Phone,
		CreatedAt: c.now(),
	}
	if err := tx.InsertCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateCustomer inserts one validated customer.
func (c *Coordinator) CreateCustomer(ctx context.Context, in CustomerInput) CustomerResult {
	var customer *catalog.Customer
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		customer, err = c.createCustomerTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return CustomerResult{Message: failureMessage(err)}
	}

	c.logger.Info("customer created", "customer_id", customer.ID, "email", customer.Email)
	return CustomerResult{Customer: customer, Success: true, Message: "Customer created"}
}

// UpdateCustomerInput carries the optional fields of a partial customer
// update. Nil fields are left unchanged.
type UpdateCustomerInput struct {
	ID    string
	Name  *string
	Email *string
	Phone *string
}

// UpdateCustomer applies a partial-field update to an existing customer.
func (c *Coordinator) UpdateCustomer(ctx context.Context, in UpdateCustomerInput) CustomerResult {
	var customer *catalog.Customer
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		customer, err = tx.GetCustomer(ctx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if *in.Name == "" {
				return catalog.NewValidation("Name cannot be empty")
			}
			customer.Name = *in.Name
		}
		if in.Email != nil {
			if !catalog.ValidateEmail(*in.Email) {
				return catalog.NewValidation("Invalid email address")
			}
			email := catalog.NormalizeEmail(*in.Email)
			if other, err := tx.GetCustomerByEmail(ctx, email); err == nil {
				if other.ID != customer.ID {
					return catalog.NewConflict("Email already exists")
				}
			} else if !catalog.IsNotFound(err) {
				return err
			}
			customer.Email = email
		}
		if in.Phone != nil {
			if !catalog.ValidatePhone(*in.Phone) {
				return catalog.NewValidation("Invalid phone number")
			}
			customer.Phone = *in.Phone
		}

		return tx.UpdateCustomer(ctx, customer)
	})
	if err != nil {
		return CustomerResult{Message: failureMessage(err)}
	}

	c.logger.Info("customer updated", "customer_id", customer.ID)
	return CustomerResult{Customer: customer, Success: true, Message: "Customer updated"}
}

// DeleteCustomer removes a customer. Deletion is blocked while the
// customer owns any order.
func (c *Coordinator) DeleteCustomer(ctx context.Context, id string) DeleteResult {
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetCustomer(ctx, id); err != nil {
			return err
		}
		n, err := tx.CountOrdersForCustomer(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return catalog.NewConflict("Customer has existing orders")
		}
		return tx.DeleteCustomer(ctx, id)
	})
	if err != nil {
		return DeleteResult{Message: failureMessage(err)}
	}

	c.logger.Info("customer deleted", "customer_id", id)
	return DeleteResult{Success: true, Message: "Customer deleted"}
}

// BulkCreateCustomers inserts customers with per-item isolation inside
// one transaction scope: a bad item (invalid shape, duplicate email) is
// collected as a labeled error and its siblings still commit. Only a
// store-level failure aborts the whole batch.
func (c *Coordinator) BulkCreateCustomers(ctx context.Context, items []CustomerInput) BulkCustomersResult {
	var created []catalog.Customer
	var itemErrors []string

	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		for i, in := range items {
			customer, err := c.createCustomerTx(ctx, tx, in)
			if err != nil {
				if catalog.IsValidation(err) || catalog.IsConflict(err) {
					itemErrors = append(itemErrors, fmt.Sprintf("item %d: %s", i+1, failureMessage(err)))
					continue
				}
				return err // fatal: abort the batch
			}
			created = append(created, *customer)
		}
		return nil
	})
	if err != nil {
		return BulkCustomersResult{Message: failureMessage(err)}
	}

	c.logger.Info("bulk customers created", "count", len(created), "errors", len(itemErrors))
	return BulkCustomersResult{
		Created: created,
		Count:   len(created),
		Errors:  itemErrors,
		Success: true,
		Message: fmt.Sprintf("Created %d customers", len(created)),
	}
}
