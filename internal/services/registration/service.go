// Package registration signs up new members: sponsor resolution, currency
// normalization, pack purchase and commission distribution, all inside one
// database transaction.
package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solifin/internal/models"
	"solifin/internal/repositories"
	"solifin/internal/services/cards"
	"solifin/internal/services/commission"
	"solifin/internal/services/currency"
	"solifin/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Input is a registration request.
type Input struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	Country     string
	SponsorCode string
	PackID      uint
	// Amount is the gross payment in Currency; Fees is the payment-provider
	// fee supplied alongside it. Both are normalized to USD before the net
	// amount is computed.
	Amount        float64
	Fees          float64
	Currency      string
	PaymentMethod string
	PaymentType   *string
	Card          *cards.CardDetails
}

// Result is a completed registration.
type Result struct {
	User     *models.User
	Purchase *models.UserPack
}

// Service registers new members.
type Service interface {
	Register(ctx context.Context, in Input) (*Result, error)
}

type service struct {
	db          *gorm.DB
	users       repositories.UserRepository
	packs       repositories.PackRepository
	normalizer  *currency.Normalizer
	distributor commission.Distributor
	tokenizer   cards.Tokenizer
}

// NewService creates a registration service.
func NewService(
	db *gorm.DB,
	users repositories.UserRepository,
	packs repositories.PackRepository,
	normalizer *currency.Normalizer,
	distributor commission.Distributor,
	tokenizer cards.Tokenizer,
) Service {
	return &service{
		db:          db,
		users:       users,
		packs:       packs,
		normalizer:  normalizer,
		distributor: distributor,
		tokenizer:   tokenizer,
	}
}

func (s *service) Register(ctx context.Context, in Input) (*Result, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if !validation.ValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	if in.Amount <= 0 || in.Fees < 0 {
		return nil, ErrInvalidAmount
	}

	if _, err := s.users.GetByEmail(in.Email); err == nil {
		return nil, repositories.ErrEmailTaken
	}

	var sponsorID *uint
	if in.SponsorCode != "" {
		sponsor, err := s.users.GetByReferralCode(in.SponsorCode)
		if err != nil {
			return nil, err
		}
		sponsorID = &sponsor.ID
	}

	pack, err := s.packs.GetActiveByID(in.PackID)
	if err != nil {
		return nil, err
	}

	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = currency.BaseCurrency
	}

	// Amounts are normalized to whole USD before fee subtraction; the
	// 0-decimal rounding here is deliberate and load-bearing.
	amountUSD := currency.RoundTo(s.normalizer.ToUSD(ctx, in.Amount, cur), 0)
	feesUSD := currency.RoundTo(s.normalizer.ToUSD(ctx, in.Fees, cur), 0)
	netUSD := amountUSD - feesUSD

	if netUSD < pack.PriceUSD {
		return nil, ErrInsufficientAmount
	}

	paymentRef := ""
	if in.PaymentMethod == models.PaymentMethodCard {
		if in.Card == nil {
			return nil, ErrCardRequired
		}
		token, err := s.tokenizer.Tokenize(*in.Card)
		if err != nil {
			return nil, err
		}
		paymentRef = token.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Country:      in.Country,
		Password:     string(hashed),
		ReferralCode: generateReferralCode(),
		SponsorID:    sponsorID,
		Role:         "user",
		Status:       "active",
	}

	purchase := &models.UserPack{
		PackID:        pack.ID,
		AmountPaidUSD: netUSD,
		FeesPaidUSD:   feesUSD,
		Currency:      cur,
		PaymentMethod: in.PaymentMethod,
		Status:        "active",
		ExpiresAt:     time.Now().AddDate(0, pack.DurationMonths, 0),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		wallet := &models.Wallet{UserID: user.ID, Currency: currency.BaseCurrency, Status: "active"}
		if err := tx.Create(wallet).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		user.WalletID = &wallet.ID
		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("failed to link wallet: %w", err)
		}

		purchase.UserID = user.ID
		if err := tx.Create(purchase).Error; err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}

		record := &models.Transaction{
			Type:          models.TransactionTypePackPurchase,
			SenderID:      user.ID,
			ReceiverID:    user.ID,
			Amount:        netUSD,
			Fee:           feesUSD,
			Currency:      cur,
			Status:        models.TransactionStatusCompleted,
			PaymentMethod: in.PaymentMethod,
			PaymentType:   derefString(in.PaymentType),
			Reference:     paymentRef,
			PackID:        &pack.ID,
			Description:   fmt.Sprintf("Registration with pack %s", pack.Name),
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		return s.distributor.Distribute(ctx, tx, purchase, netUSD)
	})
	if err != nil {
		return nil, err
	}

	return &Result{User: user, Purchase: purchase}, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// generateReferralCode derives a short shareable code from a UUID.
func generateReferralCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SLF-" + strings.ToUpper(id[:8])
}
