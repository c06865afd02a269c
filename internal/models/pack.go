package models

import (
	"time"

	"gorm.io/gorm"
)

// Pack is a membership subscription tier. Prices are stored in USD; payments
// in other currencies are normalized before the purchase is recorded.
type Pack struct {
	gorm.Model
	Name        string  `gorm:"uniqueIndex;not null"`
	Description string
	PriceUSD    float64 `gorm:"not null"`
	// CommissionRates holds one percentage per sponsor level, index 0 being
	// the direct sponsor. Length bounds how far up the chain commissions go.
	CommissionRates FloatList `gorm:"type:jsonb"`
	DurationMonths  int       `gorm:"default:12"`
	IsActive        bool      `gorm:"default:true"`
}

// UserPack records a member's purchase of a pack.
type UserPack struct {
	gorm.Model
	UserID        uint `gorm:"index;not null"`
	PackID        uint `gorm:"index;not null"`
	Pack          *Pack
	AmountPaidUSD float64 `gorm:"not null"`
	FeesPaidUSD   float64 `gorm:"default:0"`
	Currency      string  `gorm:"default:'USD'"` // currency the member actually paid in
	PaymentMethod string
	Status        string `gorm:"default:'active'"`
	ExpiresAt     time.Time
}
