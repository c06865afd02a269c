package registration

import "errors"

// Service errors
var (
	ErrMissingFields      = errors.New("name, email, phone and password are required")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain special characters")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInsufficientAmount = errors.New("amount does not cover the pack price")
	ErrCardRequired       = errors.New("card details are required for card payments")
)
