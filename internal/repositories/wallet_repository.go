package repositories

import (
	"errors"

	"solifin/internal/models"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrTransactionFailed = errors.New("transaction failed")
)

// WalletRepository defines the interface for wallet-related database operations
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	CreateTransaction(tx *models.Transaction) error
	GetTransactionHistory(userID uint, limit, offset int) ([]models.Transaction, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
