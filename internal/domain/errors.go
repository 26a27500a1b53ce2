package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity indicates a mutation was asked to add a
	// non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
