package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypePackPurchase = "PACK_PURCHASE"
	TransactionTypeTransfer     = "TRANSFER"
	TransactionTypeWithdrawal   = "WITHDRAWAL"
	TransactionTypeCommission   = "COMMISSION"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction records every movement of value on the platform: pack
// purchases, wallet transfers, withdrawals and sponsor commissions.
// Amount and Fee are stored in USD after normalization.
type Transaction struct {
	ID            uint    `gorm:"primarykey"`
	Type          string  `gorm:"not null"`
	SenderID      uint    `gorm:"not null"`
	ReceiverID    uint    `gorm:"not null"`
	Amount        float64 `gorm:"not null"`
	Fee           float64 `gorm:"default:0"`
	Currency      string  `gorm:"default:'USD'"`
	Description   string
	Status        string `gorm:"not null;default:'pending'"`
	PaymentMethod string
	PaymentType   string
	Reference     string // external or cross-transaction reference
	Metadata      JSON   `gorm:"type:jsonb"`
	PackID        *uint  // set for pack purchases and commissions
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
