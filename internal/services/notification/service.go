// Package notification delivers member notifications. Actual delivery
// (email, SMS) is out of scope; this implementation logs, and callers depend
// on the Notifier interface so a real sender can be swapped in.
package notification

import (
	"context"
	"log"

	"solifin/internal/models"
)

// Notifier notifies members about movements on their wallet.
type Notifier interface {
	SendTransactionNotification(ctx context.Context, userID uint, tx *models.Transaction) error
}

// Service is a minimal log-based Notifier.
type Service struct{}

// NewService creates a new notification service.
func NewService() *Service { return &Service{} }

// SendTransactionNotification logs a transaction notification.
func (s *Service) SendTransactionNotification(ctx context.Context, userID uint, tx *models.Transaction) error {
	log.Printf("Notify user %d of %s transaction %s", userID, tx.Type, tx.Reference)
	return nil
}
