package fee

import "errors"

// Service errors
var (
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
)
