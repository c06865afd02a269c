// Package packs lists membership tiers and processes pack purchases for
// existing members. The purchase path shares registration's semantics:
// normalize to USD, verify the net covers the price, record, distribute
// commissions.
package packs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solifin/internal/models"
	"solifin/internal/repositories"
	"solifin/internal/services/cards"
	"solifin/internal/services/commission"
	"solifin/internal/services/currency"

	"gorm.io/gorm"
)

// Service errors
var (
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInsufficientAmount  = errors.New("amount does not cover the pack price")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrCardRequired        = errors.New("card details are required for card payments")
)

// PurchaseInput is a pack purchase request from an authenticated member.
type PurchaseInput struct {
	UserID        uint
	PackID        uint
	Amount        float64
	Fees          float64
	Currency      string
	PaymentMethod string
	PaymentType   *string
	Card          *cards.CardDetails
}

// Service lists and sells packs.
type Service interface {
	List(ctx context.Context) ([]models.Pack, error)
	Purchase(ctx context.Context, in PurchaseInput) (*models.UserPack, error)
}

type service struct {
	db          *gorm.DB
	packs       repositories.PackRepository
	normalizer  *currency.Normalizer
	distributor commission.Distributor
	tokenizer   cards.Tokenizer
}

// NewService creates a pack service.
func NewService(
	db *gorm.DB,
	packs repositories.PackRepository,
	normalizer *currency.Normalizer,
	distributor commission.Distributor,
	tokenizer cards.Tokenizer,
) Service {
	return &service{
		db:          db,
		packs:       packs,
		normalizer:  normalizer,
		distributor: distributor,
		tokenizer:   tokenizer,
	}
}

func (s *service) List(ctx context.Context) ([]models.Pack, error) {
	return s.packs.ListActive()
}

func (s *service) Purchase(ctx context.Context, in PurchaseInput) (*models.UserPack, error) {
	if in.Amount <= 0 || in.Fees < 0 {
		return nil, ErrInvalidAmount
	}

	pack, err := s.packs.GetActiveByID(in.PackID)
	if err != nil {
		return nil, err
	}

	cur := in.Currency
	if cur == "" {
		cur = currency.BaseCurrency
	}

	// Same whole-USD rounding as registration.
	amountUSD := currency.RoundTo(s.normalizer.ToUSD(ctx, in.Amount, cur), 0)
	feesUSD := currency.RoundTo(s.normalizer.ToUSD(ctx, in.Fees, cur), 0)
	netUSD := amountUSD - feesUSD

	if netUSD < pack.PriceUSD {
		return nil, ErrInsufficientAmount
	}

	method := models.NormalizePaymentMethod(in.PaymentMethod)

	paymentRef := ""
	if method == models.PaymentMethodCard {
		if in.Card == nil {
			return nil, ErrCardRequired
		}
		token, err := s.tokenizer.Tokenize(*in.Card)
		if err != nil {
			return nil, err
		}
		paymentRef = token.ID
	}

	purchase := &models.UserPack{
		UserID:        in.UserID,
		PackID:        pack.ID,
		AmountPaidUSD: netUSD,
		FeesPaidUSD:   feesUSD,
		Currency:      cur,
		PaymentMethod: method,
		Status:        "active",
		ExpiresAt:     time.Now().AddDate(0, pack.DurationMonths, 0),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Wallet-funded purchases debit the member's USD wallet in the
		// same transaction.
		if method == models.PaymentMethodSolifinWallet {
			var wallet models.Wallet
			if err := tx.Where("user_id = ?", in.UserID).First(&wallet).Error; err != nil {
				return fmt.Errorf("failed to load wallet: %w", err)
			}
			if wallet.Balance < amountUSD {
				return ErrInsufficientBalance
			}
			err := tx.Model(&models.Wallet{}).
				Where("user_id = ?", in.UserID).
				UpdateColumn("balance", gorm.Expr("balance - ?", amountUSD)).Error
			if err != nil {
				return fmt.Errorf("failed to debit wallet: %w", err)
			}
		}

		if err := tx.Create(purchase).Error; err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}

		record := &models.Transaction{
			Type:          models.TransactionTypePackPurchase,
			SenderID:      in.UserID,
			ReceiverID:    in.UserID,
			Amount:        netUSD,
			Fee:           feesUSD,
			Currency:      cur,
			Status:        models.TransactionStatusCompleted,
			PaymentMethod: method,
			Reference:     paymentRef,
			PackID:        &pack.ID,
			Description:   fmt.Sprintf("Purchase of pack %s", pack.Name),
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		return s.distributor.Distribute(ctx, tx, purchase, netUSD)
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}
