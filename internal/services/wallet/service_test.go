package wallet

import (
	"context"
	"testing"

	"solifin/internal/models"
	"solifin/internal/repositories"
	"solifin/internal/services/fee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) GetByID(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) Update(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) CreateTransaction(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockWalletRepo) GetTransactionHistory(userID uint, limit, offset int) ([]models.Transaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	args := m.Called(fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	// Run the callback against this same mock so per-case expectations apply.
	return fn(m)
}

type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) TransferFee(ctx context.Context, paymentMethod string, paymentType *string, amount float64) (*fee.TransferQuote, error) {
	args := m.Called(paymentMethod, paymentType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.TransferQuote), args.Error(1)
}

func (m *MockFeeService) WithdrawalFee(ctx context.Context, paymentMethod string, paymentType *string, amount float64) (*fee.WithdrawalQuote, error) {
	args := m.Called(paymentMethod, paymentType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.WithdrawalQuote), args.Error(1)
}

func TestWalletService_Transfer(t *testing.T) {
	tests := []struct {
		name       string
		senderID   uint
		receiverID uint
		amount     float64
		setupMock  func(*MockWalletRepo, *MockFeeService)
		wantErr    error
	}{
		{
			name:       "sender debited amount plus fee",
			senderID:   1,
			receiverID: 2,
			amount:     100,
			setupMock: func(repo *MockWalletRepo, fees *MockFeeService) {
				fees.On("TransferFee", "solifin-wallet", (*string)(nil), 100.0).Return(&fee.TransferQuote{
					Amount: 100, Fee: 5, Percentage: 5, Total: 105, PaymentMethod: "solifin-wallet",
				}, nil)

				sender := &models.Wallet{UserID: 1, Balance: 200, Status: "active"}
				receiver := &models.Wallet{UserID: 2, Balance: 0, Status: "active"}
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(sender, nil)
				repo.On("GetByUserID", uint(2)).Return(receiver, nil)
				repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
					return w.UserID == 1 && w.Balance == 95
				})).Return(nil)
				repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
					return w.UserID == 2 && w.Balance == 100
				})).Return(nil)
				repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
					return tx.Amount == 100 && tx.Fee == 5 && tx.Status == models.TransactionStatusCompleted
				})).Return(nil)
			},
		},
		{
			name:       "insufficient balance for amount plus fee",
			senderID:   1,
			receiverID: 2,
			amount:     100,
			setupMock: func(repo *MockWalletRepo, fees *MockFeeService) {
				fees.On("TransferFee", "solifin-wallet", (*string)(nil), 100.0).Return(&fee.TransferQuote{
					Amount: 100, Fee: 5, Total: 105, PaymentMethod: "solifin-wallet",
				}, nil)

				// Covers the amount but not the fee on top.
				sender := &models.Wallet{UserID: 1, Balance: 100, Status: "active"}
				receiver := &models.Wallet{UserID: 2, Balance: 0, Status: "active"}
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(sender, nil)
				repo.On("GetByUserID", uint(2)).Return(receiver, nil)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:       "locked wallet",
			senderID:   1,
			receiverID: 2,
			amount:     50,
			setupMock: func(repo *MockWalletRepo, fees *MockFeeService) {
				fees.On("TransferFee", "solifin-wallet", (*string)(nil), 50.0).Return(&fee.TransferQuote{
					Amount: 50, Fee: 0, Total: 50, PaymentMethod: "solifin-wallet",
				}, nil)

				sender := &models.Wallet{UserID: 1, Balance: 100, Status: "suspended"}
				receiver := &models.Wallet{UserID: 2, Balance: 0, Status: "active"}
				repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
				repo.On("GetByUserID", uint(1)).Return(sender, nil)
				repo.On("GetByUserID", uint(2)).Return(receiver, nil)
			},
			wantErr: ErrWalletLocked,
		},
		{
			name:       "self transfer rejected",
			senderID:   1,
			receiverID: 1,
			amount:     50,
			wantErr:    ErrSelfTransfer,
		},
		{
			name:       "non-positive amount rejected",
			senderID:   1,
			receiverID: 2,
			amount:     0,
			wantErr:    ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWalletRepo)
			fees := new(MockFeeService)
			if tt.setupMock != nil {
				tt.setupMock(repo, fees)
			}

			s := NewService(repo, nil, fees, nil)
			txn, err := s.Transfer(context.Background(), tt.senderID, tt.receiverID, tt.amount, "solifin-wallet", nil, "test")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, txn)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
			}

			repo.AssertExpectations(t)
			fees.AssertExpectations(t)
		})
	}
}

func TestWalletService_Withdraw(t *testing.T) {
	t.Run("amount debited, net recorded", func(t *testing.T) {
		repo := new(MockWalletRepo)
		fees := new(MockFeeService)

		fees.On("WithdrawalFee", "mobile-money", (*string)(nil), 100.0).Return(&fee.WithdrawalQuote{
			Amount: 100, Fee: 3, Net: 97, PaymentMethod: "mobile-money",
		}, nil)

		wallet := &models.Wallet{UserID: 1, Balance: 150, Status: "active"}
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByUserID", uint(1)).Return(wallet, nil)
		repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
			return w.Balance == 50
		})).Return(nil)
		repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeWithdrawal && tx.Fee == 3
		})).Return(nil)

		s := NewService(repo, nil, fees, nil)
		txn, err := s.Withdraw(context.Background(), 1, 100, "mobile-money", nil)

		assert.NoError(t, err)
		assert.Contains(t, txn.Description, "97.00")
		repo.AssertExpectations(t)
		fees.AssertExpectations(t)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		repo := new(MockWalletRepo)
		fees := new(MockFeeService)

		fees.On("WithdrawalFee", "card", (*string)(nil), 100.0).Return(&fee.WithdrawalQuote{
			Amount: 100, Fee: 5, Net: 95, PaymentMethod: "card",
		}, nil)

		wallet := &models.Wallet{UserID: 1, Balance: 50, Status: "active"}
		repo.On("ExecuteInTransaction", mock.Anything).Return(nil)
		repo.On("GetByUserID", uint(1)).Return(wallet, nil)

		s := NewService(repo, nil, fees, nil)
		_, err := s.Withdraw(context.Background(), 1, 100, "card", nil)

		assert.ErrorIs(t, err, ErrInsufficientBalance)
		repo.AssertExpectations(t)
	})
}
