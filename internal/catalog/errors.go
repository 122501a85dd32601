package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes domain errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a referenced customer, product, or order
	// id does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeValidation indicates a malformed or missing field, an empty
	// product set, or an operation that would empty an order.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeStock indicates insufficient stock for one or more products.
	ErrCodeStock ErrorCode = "STOCK"

	// ErrCodeConflict indicates a duplicate email or an attempt to delete
	// an entity that is still referenced.
	ErrCodeConflict ErrorCode = "CONFLICT"

	// ErrCodeTransaction indicates an underlying store failure not
	// otherwise classified.
	ErrCodeTransaction ErrorCode = "TRANSACTION"
)

// Error is the single error type crossing package boundaries in the
// storefront core. The coordinator converts every Error into the uniform
// (entity=nil, success=false, message) mutation result; nothing throws
// past the operation boundary.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is the human-readable message surfaced to callers verbatim.
	Message string

	// IDs lists the offending entity ids (not-found, validation).
	IDs []string

	// Products lists the offending product names (stock errors).
	Products []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// codeIs reports whether err is a *Error with the given code.
// Uses errors.As to handle wrapped errors.
func codeIs(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return codeIs(err, ErrCodeNotFound) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return codeIs(err, ErrCodeValidation) }

// IsStockError reports whether err is an insufficient-stock error.
func IsStockError(err error) bool { return codeIs(err, ErrCodeStock) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return codeIs(err, ErrCodeConflict) }

// IsTransaction reports whether err is an unclassified store failure.
func IsTransaction(err error) bool { return codeIs(err, ErrCodeTransaction) }

// NewNotFound creates a not-found error for a single entity.
// Kind is the entity name as shown to users ("Customer", "Product", "Order").
func NewNotFound(kind, id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", kind),
		IDs:     []string{id},
	}
}

// NewValidation creates a validation error with a fixed message.
func NewValidation(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

// NewMissingProducts creates a validation error listing every product id
// that could not be resolved. No partial resolution is ever reported.
func NewMissingProducts(ids []string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("Products not found: %v", ids),
		IDs:     ids,
	}
}

// NewOutOfStock creates a stock error naming every product whose stock
// would go negative. Names, not ids: the message is user-facing.
func NewOutOfStock(names []string) *Error {
	return &Error{
		Code:     ErrCodeStock,
		Message:  "Products out of stock: " + strings.Join(names, ", "),
		Products: names,
	}
}

// NewConflict creates a conflict error with a fixed message.
func NewConflict(message string) *Error {
	return &Error{Code: ErrCodeConflict, Message: message}
}

// NewTransaction wraps an unclassified store failure.
func NewTransaction(err error) *Error {
	return &Error{
		Code:    ErrCodeTransaction,
		Message: fmt.Sprintf("Transaction failed: %v", err),
	}
}
