package models

import "errors"

// Domain errors returned by the cart/wishlist/order core. Handlers map
// these to HTTP statuses; everything else surfaces as a 500.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyCart         = errors.New("cart is empty")
)
