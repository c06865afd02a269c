package models

import (
	"errors"

	"gorm.io/gorm"
)

// Payment methods known to the fee schedule. "wallet" is a caller-facing
// alias for PaymentMethodSolifinWallet, rewritten before lookup.
const (
	PaymentMethodCard          = "card"
	PaymentMethodMobileMoney   = "mobile-money"
	PaymentMethodSolifinWallet = "solifin-wallet"
	PaymentMethodWalletAlias   = "wallet"
)

// ErrFeeExceedsAmount reports a withdrawal fee schedule whose parameters
// produce a fee larger than the amount being withdrawn. This is a
// configuration fault and is rejected, never clamped.
var ErrFeeExceedsAmount = errors.New("withdrawal fee exceeds amount")

// TransactionFee is one row of the fee schedule, keyed by payment method and
// optional payment type. A nil PaymentType means the row applies to every
// type of the method. Rows are maintained by back-office tooling and are
// read-only here.
type TransactionFee struct {
	gorm.Model
	PaymentMethod           string  `gorm:"index;not null"`
	PaymentType             *string `gorm:"index"`
	IsActive                bool    `gorm:"default:true"`
	TransferFeePercentage   float64 `gorm:"default:0"`
	WithdrawalFeePercentage float64 `gorm:"default:0"`
	WithdrawalFeeFixed      float64 `gorm:"default:0"`
}

// CalculateTransferFee returns the fee added on top of a transfer amount.
func (f *TransactionFee) CalculateTransferFee(amount float64) float64 {
	return amount * (f.TransferFeePercentage / 100)
}

// CalculateWithdrawalFee returns the fee deducted from a withdrawal amount.
// A schedule whose parameters yield a negative fee or a fee above the amount
// is misconfigured and rejected.
func (f *TransactionFee) CalculateWithdrawalFee(amount float64) (float64, error) {
	fee := amount*(f.WithdrawalFeePercentage/100) + f.WithdrawalFeeFixed
	if fee < 0 || fee > amount {
		return 0, ErrFeeExceedsAmount
	}
	return fee, nil
}

// NormalizePaymentMethod applies the wallet alias rewrite used by the
// transfer-fee path.
func NormalizePaymentMethod(method string) string {
	if method == PaymentMethodWalletAlias {
		return PaymentMethodSolifinWallet
	}
	return method
}
