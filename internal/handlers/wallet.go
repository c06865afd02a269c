package handlers

import (
	"errors"

	"solifin/internal/repositories"
	"solifin/internal/services/fee"
	"solifin/internal/services/wallet"
	"solifin/internal/utils/response"
	"solifin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler exposes wallet balance, transfer and withdrawal endpoints.
type WalletHandler struct {
	walletService wallet.Service
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet handles GET /api/wallet.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return response.NotFound(c, "wallet not found")
		}
		return response.ServerError(c, "failed to get wallet")
	}

	return response.Success(c, "wallet", fiber.Map{"wallet": w})
}

// Transfer handles POST /api/wallet/transfer.
func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		ReceiverID    uint        `json:"receiver_id"`
		Amount        interface{} `json:"amount"`
		PaymentMethod string      `json:"payment_method"`
		PaymentType   *string     `json:"payment_type"`
		Description   string      `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	amount, ok := validation.ParseAmount(req.Amount)
	if !ok {
		return response.BadRequest(c, "amount must be a number")
	}

	method := req.PaymentMethod
	if method == "" {
		method = "wallet" // internal transfers default to the wallet method
	}

	txn, err := h.walletService.Transfer(c.Context(), claims.UserID, req.ReceiverID, amount, method, req.PaymentType, req.Description)
	if err != nil {
		return transferError(c, err)
	}
	return response.Success(c, "transfer completed", txn)
}

// Withdraw handles POST /api/wallet/withdraw.
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		Amount        interface{} `json:"amount"`
		PaymentMethod string      `json:"payment_method"`
		PaymentType   *string     `json:"payment_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	amount, ok := validation.ParseAmount(req.Amount)
	if !ok {
		return response.BadRequest(c, "amount must be a number")
	}
	if req.PaymentMethod == "" {
		return response.BadRequest(c, "payment_method is required")
	}

	txn, err := h.walletService.Withdraw(c.Context(), claims.UserID, amount, req.PaymentMethod, req.PaymentType)
	if err != nil {
		return transferError(c, err)
	}
	return response.Success(c, "withdrawal completed", txn)
}

// GetTransactions handles GET /api/wallet/transactions.
func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	txs, err := h.walletService.GetTransactionHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return response.ServerError(c, "failed to get transactions")
	}
	return response.Success(c, "transactions", txs)
}

func transferError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrFeeScheduleNotFound):
		return response.NotFound(c, "no active fee schedule for this payment method")
	case errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrSelfTransfer),
		errors.Is(err, wallet.ErrInsufficientBalance),
		errors.Is(err, wallet.ErrWalletLocked),
		errors.Is(err, fee.ErrMissingPaymentMethod),
		errors.Is(err, fee.ErrInvalidAmount):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, repositories.ErrWalletNotFound):
		return response.NotFound(c, "wallet not found")
	default:
		return response.ServerError(c, "operation failed")
	}
}
