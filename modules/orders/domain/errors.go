package domain

import "errors"

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrLineNotFound           = errors.New("order line not found")
	ErrOrderEmpty             = errors.New("order has no lines")
	ErrCartNotFound           = errors.New("cart not found")
	ErrBlankShippingAddress   = errors.New("shipping address is required")
	ErrShippingAddressTooLong = errors.New("shipping address is too long")
	ErrInvalidStatus          = errors.New("invalid order status")
)
