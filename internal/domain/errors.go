package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates a checkout was attempted on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)
