// Package store holds the mutable session state of the storefront:
// the cart, the wishlist, and the order history. Stores refuse
// rule-violating mutations with the sentinel errors below and never panic.
package store

import "errors"

// Common refusals returned by the stores.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrNotInCart         = errors.New("product not in cart")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnknownStatus     = errors.New("unknown order status")
)
