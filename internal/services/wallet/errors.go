package wallet

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletLocked        = errors.New("wallet is locked")
	ErrSelfTransfer        = errors.New("cannot transfer to self")
	ErrWalletNotFound      = errors.New("wallet not found")
)
