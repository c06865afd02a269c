package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"solifin/internal/models"
	"solifin/internal/repositories"
	"solifin/internal/services/fee"
)

const statusActive = "active"

type service struct {
	repo     repositories.WalletRepository
	cache    Cache
	fees     fee.Service
	notifier Notifier
}

// NewService creates a new wallet service. cache and notifier are optional.
func NewService(repo repositories.WalletRepository, cache Cache, fees fee.Service, notifier Notifier) Service {
	if repo == nil {
		panic("repo is required")
	}
	if fees == nil {
		panic("fee service is required")
	}
	return &service{repo: repo, cache: cache, fees: fees, notifier: notifier}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, wallet); err != nil {
			log.Printf("failed to cache wallet for user %d: %v", userID, err)
		}
	}
	return wallet, nil
}

// Transfer moves funds between member wallets. The sender pays the
// transferred amount plus the transfer fee; the receiver gets the amount.
func (s *service) Transfer(ctx context.Context, senderID, receiverID uint, amount float64, paymentMethod string, paymentType *string, description string) (*models.Transaction, error) {
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	quote, err := s.fees.TransferFee(ctx, paymentMethod, paymentType, amount)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Type:          models.TransactionTypeTransfer,
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Amount:        amount,
		Fee:           quote.Fee,
		Currency:      "USD",
		Description:   description,
		Status:        models.TransactionStatusPending,
		PaymentMethod: quote.PaymentMethod,
		Reference:     fmt.Sprintf("TRF-%d-%d-%d", senderID, receiverID, time.Now().UnixNano()),
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		sender, err := tx.GetByUserID(senderID)
		if err != nil {
			return err
		}
		receiver, err := tx.GetByUserID(receiverID)
		if err != nil {
			return err
		}
		if sender.Status != statusActive || receiver.Status != statusActive {
			return ErrWalletLocked
		}
		if sender.Balance < quote.Total {
			return ErrInsufficientBalance
		}

		sender.Balance -= quote.Total
		receiver.Balance += amount
		if err := tx.Update(sender); err != nil {
			return err
		}
		if err := tx.Update(receiver); err != nil {
			return err
		}

		txn.Status = models.TransactionStatusCompleted
		return tx.CreateTransaction(txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, senderID, receiverID)
	s.notify(ctx, txn, senderID, receiverID)
	return txn, nil
}

// Withdraw debits the amount from the wallet; the member receives the net
// after the withdrawal fee.
func (s *service) Withdraw(ctx context.Context, userID uint, amount float64, paymentMethod string, paymentType *string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	quote, err := s.fees.WithdrawalFee(ctx, paymentMethod, paymentType, amount)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Type:          models.TransactionTypeWithdrawal,
		SenderID:      userID,
		ReceiverID:    userID,
		Amount:        amount,
		Fee:           quote.Fee,
		Currency:      "USD",
		Description:   fmt.Sprintf("Withdrawal via %s, net %.2f", paymentMethod, quote.Net),
		Status:        models.TransactionStatusPending,
		PaymentMethod: paymentMethod,
		Reference:     fmt.Sprintf("WDR-%d-%d", userID, time.Now().UnixNano()),
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserID(userID)
		if err != nil {
			return err
		}
		if wallet.Status != statusActive {
			return ErrWalletLocked
		}
		if wallet.Balance < amount {
			return ErrInsufficientBalance
		}

		wallet.Balance -= amount
		if err := tx.Update(wallet); err != nil {
			return err
		}

		txn.Status = models.TransactionStatusCompleted
		return tx.CreateTransaction(txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.notify(ctx, txn, userID)
	return txn, nil
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.GetTransactionHistory(userID, limit, offset)
}

func (s *service) notify(ctx context.Context, txn *models.Transaction, userIDs ...uint) {
	if s.notifier == nil {
		return
	}
	for _, id := range userIDs {
		if err := s.notifier.SendTransactionNotification(ctx, id, txn); err != nil {
			log.Printf("failed to notify user %d: %v", id, err)
		}
	}
}

func (s *service) invalidate(ctx context.Context, userIDs ...uint) {
	if s.cache == nil {
		return
	}
	for _, id := range userIDs {
		if err := s.cache.InvalidateWallet(ctx, id); err != nil {
			log.Printf("failed to invalidate wallet cache for user %d: %v", id, err)
		}
	}
}
