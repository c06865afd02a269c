// Package commission distributes pack-purchase commissions up the sponsor
// chain. Callers depend on the Distributor interface only; registration and
// pack purchase pass their own database transaction so commission credits
// commit or roll back together with the purchase.
package commission

import (
	"context"
	"errors"
	"fmt"
	"log"

	"solifin/internal/models"

	"gorm.io/gorm"
)

// Distributor pays out commissions for a recorded pack purchase.
type Distributor interface {
	Distribute(ctx context.Context, tx *gorm.DB, purchase *models.UserPack, amountUSD float64) error
}

type distributor struct{}

// NewDistributor creates the sponsor-chain distributor.
func NewDistributor() Distributor {
	return &distributor{}
}

// Distribute walks the buyer's sponsor chain, crediting each ancestor's
// wallet with amountUSD * rate/100 for its level. The pack's commission
// rates bound how many levels are paid; a chain shorter than the rate list
// simply stops early.
func (d *distributor) Distribute(ctx context.Context, tx *gorm.DB, purchase *models.UserPack, amountUSD float64) error {
	var pack models.Pack
	if err := tx.First(&pack, purchase.PackID).Error; err != nil {
		return fmt.Errorf("failed to load pack %d: %w", purchase.PackID, err)
	}
	if len(pack.CommissionRates) == 0 {
		return nil
	}

	var buyer models.User
	if err := tx.First(&buyer, purchase.UserID).Error; err != nil {
		return fmt.Errorf("failed to load buyer %d: %w", purchase.UserID, err)
	}

	sponsorID := buyer.SponsorID
	for level, rate := range pack.CommissionRates {
		if sponsorID == nil {
			break
		}

		var sponsor models.User
		if err := tx.First(&sponsor, *sponsorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("commission: sponsor %d missing, stopping at level %d", *sponsorID, level)
				return nil
			}
			return fmt.Errorf("failed to load sponsor %d: %w", *sponsorID, err)
		}

		share := amountUSD * (rate / 100)
		if share > 0 {
			err := tx.Model(&models.Wallet{}).
				Where("user_id = ?", sponsor.ID).
				UpdateColumn("balance", gorm.Expr("balance + ?", share)).Error
			if err != nil {
				return fmt.Errorf("failed to credit sponsor %d: %w", sponsor.ID, err)
			}

			record := &models.Transaction{
				Type:        models.TransactionTypeCommission,
				SenderID:    buyer.ID,
				ReceiverID:  sponsor.ID,
				Amount:      share,
				Currency:    "USD",
				Status:      models.TransactionStatusCompleted,
				PackID:      &purchase.PackID,
				Description: fmt.Sprintf("Level %d commission on pack %s", level+1, pack.Name),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record commission: %w", err)
			}
		}

		sponsorID = sponsor.SponsorID
	}

	return nil
}
