package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Stev1000/storefront/internal/catalog"
	"github.com/Stev1000/storefront/internal/store"
)

// ProductInput is the payload for creating a product.
// Stock defaults to zero when omitted by the caller.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

func validateProductInput(in ProductInput) *catalog.Error {
	if in.Name == "" {
		return catalog.NewValidation("Name cannot be empty")
	}
	if !catalog.ValidatePrice(in.Price) {
		return catalog.NewValidation("Price must be positive")
	}
	if !catalog.ValidateStock(in.Stock) {
		return catalog.NewValidation("Stock cannot be negative")
	}
	return nil
}

// createProductTx inserts one validated product inside tx. Price is
// rounded to two decimal places here - the single write-time rounding
// point for money entering the catalog.
func (c *Coordinator) createProductTx(ctx context.Context, tx *store.Tx, in ProductInput) (*catalog.Product, error) {
	if verr := validateProductInput(in); verr != nil {
		return nil, verr
	}

	product := &catalog.Product{
		ID:        c.ids.NewID(),
		Name:      in.Name,
		Price:     catalog.RoundPrice(in.Price),
		Stock:     in.Stock,
		CreatedAt: c.now(),
	}
	if err := tx.InsertProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateProduct inserts one validated product.
func (c *Coordinator) CreateProduct(ctx context.Context, in ProductInput) ProductResult {
	var product *catalog.Product
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		product, err = c.createProductTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return ProductResult{Message: failureMessage(err)}
	}

	c.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return ProductResult{Product: product, Success: true, Message: "Product created"}
}

// UpdateProductInput carries the optional fields of a partial product
// update. Nil fields are left unchanged. A price change does not rewrite
// existing order totals: totals are cached values recomputed only when
// their order is mutated.
type UpdateProductInput struct {
	ID    string
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// UpdateProduct applies a partial-field update to an existing product.
func (c *Coordinator) UpdateProduct(ctx context.Context, in UpdateProductInput) ProductResult {
	var product *catalog.Product
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		var err error
		product, err = tx.GetProduct(ctx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if *in.Name == "" {
				return catalog.NewValidation("Name cannot be empty")
			}
			product.Name = *in.Name
		}
		if in.Price != nil {
			if !catalog.ValidatePrice(*in.Price) {
				return catalog.NewValidation("Price must be positive")
			}
			product.Price = catalog.RoundPrice(*in.Price)
		}
		if err := tx.UpdateProduct(ctx, product); err != nil {
			return err
		}

		if in.Stock != nil {
			if !catalog.ValidateStock(*in.Stock) {
				return catalog.NewValidation("Stock cannot be negative")
			}
			if err := tx.SetStock(ctx, product.ID, *in.Stock); err != nil {
				return err
			}
			product.Stock = *in.Stock
		}
		return nil
	})
	if err != nil {
		return ProductResult{Message: failureMessage(err)}
	}

	c.logger.Info("product updated", "product_id", product.ID)
	return ProductResult{Product: product, Success: true, Message: "Product updated"}
}

// DeleteProduct removes a product. Deletion is blocked while any order
// references the product.
func (c *Coordinator) DeleteProduct(ctx context.Context, id string) DeleteResult {
	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.GetProduct(ctx, id); err != nil {
			return err
		}
		n, err := tx.CountOrdersForProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return catalog.NewConflict("Product is referenced by existing orders")
		}
		return tx.DeleteProduct(ctx, id)
	})
	if err != nil {
		return DeleteResult{Message: failureMessage(err)}
	}

	c.logger.Info("product deleted", "product_id", id)
	return DeleteResult{Success: true, Message: "Product deleted"}
}

// BulkCreateProducts inserts products with per-item isolation inside one
// transaction scope. A bad payload is collected as a labeled error; its
// siblings still commit.
func (c *Coordinator) BulkCreateProducts(ctx context.Context, items []ProductInput) BulkProductsResult {
	var created []catalog.Product
	var itemErrors []string

	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		for i, in := range items {
			product, err := c.createProductTx(ctx, tx, in)
			if err != nil {
				if catalog.IsValidation(err) {
					itemErrors = append(itemErrors, fmt.Sprintf("item %d: %s", i+1, failureMessage(err)))
					continue
				}
				return err // fatal: abort the batch
			}
			created = append(created, *product)
		}
		return nil
	})
	if err != nil {
		return BulkProductsResult{Message: failureMessage(err)}
	}

	c.logger.Info("bulk products created", "count", len(created), "errors", len(itemErrors))
	return BulkProductsResult{
		Created: created,
		Count:   len(created),
		Errors:  itemErrors,
		Success: true,
		Message: fmt.Sprintf("Created %d products", len(created)),
	}
}

// StockUpdate is one item of a bulk stock update: an absolute stock value
// for a product. Absolute, not a delta - bulk restock resets the baseline
// the ledger reserves against.
type StockUpdate struct {
	ID    string
	Stock int
}

// BulkUpdateProductStock applies absolute stock values with per-item
// isolation inside one transaction scope. Unknown ids and negative stock
// values are collected as labeled errors; sibling items still commit.
func (c *Coordinator) BulkUpdateProductStock(ctx context.Context, items []StockUpdate) BulkStockResult {
	var updated []catalog.Product
	var itemErrors []string

	err := c.store.WithTx(ctx, func(tx *store.Tx) error {
		for i, in := range items {
			if !catalog.ValidateStock(in.Stock) {
				itemErrors = append(itemErrors, fmt.Sprintf("item %d: Stock cannot be negative", i+1))
				continue
			}
			product, err := tx.GetProduct(ctx, in.ID)
			if catalog.IsNotFound(err) {
				itemErrors = append(itemErrors, fmt.Sprintf("item %d: Product not found", i+1))
				continue
			}
			if err != nil {
				return err // fatal: abort the batch
			}
			if err := tx.SetStock(ctx, product.ID, in.Stock); err != nil {
				return err
			}
			product.Stock = in.Stock
			updated = append(updated, *product)
		}
		return nil
	})
	if err != nil {
		return BulkStockResult{Message: failureMessage(err)}
	}

	c.logger.Info("bulk stock updated", "count", len(updated), "errors", len(itemErrors))
	return BulkStockResult{
		Updated: updated,
		Count:   len(updated),
		Errors:  itemErrors,
		Success: true,
		Message: fmt.Sprintf("Updated stock for %d products", len(updated)),
	}
}
