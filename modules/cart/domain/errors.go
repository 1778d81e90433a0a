package domain

import "errors"

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrBookNotFound    = errors.New("book not found")
)
