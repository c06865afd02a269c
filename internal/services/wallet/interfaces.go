package wallet

import (
	"context"

	"solifin/internal/models"
)

// Service handles wallet balances, member-to-member transfers and
// withdrawals. Transfers and withdrawals run through the fee pipeline so
// their fee math matches the public quote endpoints exactly.
type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	Transfer(ctx context.Context, senderID, receiverID uint, amount float64, paymentMethod string, paymentType *string, description string) (*models.Transaction, error)
	Withdraw(ctx context.Context, userID uint, amount float64, paymentMethod string, paymentType *string) (*models.Transaction, error)
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
}

// Notifier is used to notify members about completed operations.
type Notifier interface {
	SendTransactionNotification(ctx context.Context, userID uint, tx *models.Transaction) error
}

// Cache is the subset of caching operations the wallet service needs.
type Cache interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}
