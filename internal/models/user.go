package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Phone               string `gorm:"uniqueIndex;not null"`
	Country             string `gorm:"default:''"`
	ReferralCode        string `gorm:"uniqueIndex;not null"` // code this member shares with recruits
	SponsorID           *uint  `gorm:"index"`                // nil for root members
	Sponsor             *User  `gorm:"foreignKey:SponsorID"`
	Role                string `gorm:"default:'user'"`
	Status              string `gorm:"default:'active'"`
	WalletID            *uint  `gorm:"unique;default:null"`
	Wallet              *Wallet
	LastLoginAt         time.Time
	LastLoginIP         string
	FailedLoginAttempts int `gorm:"default:0"`
	TokenVersion        int `gorm:"default:1"`
}
