// Package fee quotes transaction fees from the fee schedule. The same
// pipeline backs the public quote endpoints, wallet transfers, withdrawals
// and pack purchases, so the fee/total/net math is identical everywhere:
// validate, resolve the schedule row, compute, shape.
package fee

import (
	"context"

	"solifin/internal/models"
	"solifin/internal/repositories"
)

// TransferQuote is the fee breakdown for a transfer. Total = Amount + Fee
// holds exactly: the fee is added on top of the transferred amount.
type TransferQuote struct {
	Amount        float64
	Fee           float64
	Percentage    float64
	Total         float64
	PaymentMethod string
	PaymentType   *string
}

// WithdrawalQuote is the fee breakdown for a withdrawal. Net = Amount - Fee
// holds exactly, with Fee <= Amount: the fee is deducted from the amount.
type WithdrawalQuote struct {
	Amount        float64
	Fee           float64
	Net           float64
	PaymentMethod string
	PaymentType   *string
}

// Service quotes transfer and withdrawal fees.
type Service interface {
	TransferFee(ctx context.Context, paymentMethod string, paymentType *string, amount float64) (*TransferQuote, error)
	WithdrawalFee(ctx context.Context, paymentMethod string, paymentType *string, amount float64) (*WithdrawalQuote, error)
}

type service struct {
	repo repositories.FeeRepository
}

// NewService creates a fee service over the given schedule repository.
func NewService(repo repositories.FeeRepository) Service {
	return &service{repo: repo}
}

// TransferFee quotes the fee added on top of a transfer. The "wallet" alias
// is rewritten to "solifin-wallet" before lookup on this path only.
func (s *service) TransferFee(ctx context.Context, paymentMethod string, paymentType *string, amount float64) (*TransferQuote, error) {
	if paymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	method := models.NormalizePaymentMethod(paymentMethod)

	schedule, err := s.repo.FindActiveFee(method, paymentType)
	if err != nil {
		return nil, err
	}

	feeAmount := schedule.CalculateTransferFee(amount)
	return &TransferQuote{
		Amount:        amount,
		Fee:           feeAmount,
		Percentage:    schedule.TransferFeePercentage,
		Total:         amount + feeAmount,
		PaymentMethod: method,
		PaymentType:   schedule.PaymentType,
	}, nil
}

// WithdrawalFee quotes the fee deducted from a withdrawal. No aliasing is
// applied on this path.
func (s *service) WithdrawalFee(ctx context.Context, paymentMethod string, paymentType *string, amount float64) (*WithdrawalQuote, error) {
	if paymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	schedule, err := s.repo.FindActiveFee(paymentMethod, paymentType)
	if err != nil {
		return nil, err
	}

	feeAmount, err := schedule.CalculateWithdrawalFee(amount)
	if err != nil {
		return nil, err
	}

	return &WithdrawalQuote{
		Amount:        amount,
		Fee:           feeAmount,
		Net:           amount - feeAmount,
		PaymentMethod: paymentMethod,
		PaymentType:   schedule.PaymentType,
	}, nil
}
