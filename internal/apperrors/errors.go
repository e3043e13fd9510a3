package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that forbids the requested
// transition, e.g. archiving an already archived document or converting a
// cancelled quote.
var ErrConflict = errors.New("resource state conflict")

// ErrMissingConfiguration indicates a required control account is absent from
// the chart of accounts. Administrative problem, not user-retryable; nothing
// is posted when it occurs.
var ErrMissingConfiguration = errors.New("missing configuration")

// ErrInsufficientStock indicates a document would drive an item's stock below
// zero while negative stock is disallowed.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// InsufficientStockError names the offending item and the quantity actually
// available, both in base units. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s (%s): requested %s, available %s",
		e.ItemName, e.ItemID, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
