package repositories

import (
	"errors"
	"fmt"

	"solifin/internal/models"

	"gorm.io/gorm"
)

// ErrFeeScheduleNotFound reports that no active fee schedule row matches a
// payment method/type pair. Distinct from a matched row with a zero fee.
var ErrFeeScheduleNotFound = errors.New("fee schedule not found")

// FeeRepository reads the fee schedule. Rows are written by back-office
// tooling only.
type FeeRepository interface {
	// FindActiveFee returns the first active row matching the payment
	// method, additionally filtered by payment type when given.
	FindActiveFee(paymentMethod string, paymentType *string) (*models.TransactionFee, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a FeeRepository over the given database.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) FindActiveFee(paymentMethod string, paymentType *string) (*models.TransactionFee, error) {
	query := r.db.Where("payment_method = ? AND is_active = ?", paymentMethod, true)
	if paymentType != nil && *paymentType != "" {
		query = query.Where("payment_type = ?", *paymentType)
	}

	var fee models.TransactionFee
	if err := query.First(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeScheduleNotFound
		}
		return nil, fmt.Errorf("failed to query fee schedule: %w", err)
	}
	return &fee, nil
}
