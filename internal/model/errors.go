package model

import (
	"errors"
	"fmt"
)

// Business-rule failures for the sale and stock-receiving engines. All of
// them are raised before any store mutation, or roll the whole transaction
// back when the accessor re-asserts stock inside it.
var (
	ErrEmptySale           = errors.New("sale must contain at least one item")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidCost         = errors.New("cost per item cannot be negative")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInactive     = errors.New("product is inactive")
	ErrConcurrencyConflict = errors.New("concurrent update conflict, retry the operation")
)

// InsufficientStockError reports how much stock was available versus how
// much the cart requested for one product.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (available: %d, requested: %d)",
		e.ProductName, e.Available, e.Requested)
}
