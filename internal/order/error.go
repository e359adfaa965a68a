package order

import "errors"

var (
	// -- Validation --
	ErrInvalidInput = errors.New("invalid order input")

	// -- Business rules --
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidState      = errors.New("item cannot transition from its current state")

	// -- Access / existence --
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")
	ErrUnauthorized  = errors.New("unauthorized")
)
