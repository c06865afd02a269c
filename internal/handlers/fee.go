// Package handlers exposes the HTTP layer: thin fiber handlers that parse
// requests, call services and shape responses. The fee and currency
// endpoints keep their historical response envelopes, including the
// divergent success/status keys, for client compatibility.
package handlers

import (
	"errors"
	"log"

	"solifin/internal/repositories"
	"solifin/internal/services/fee"
	"solifin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// FeeHandler exposes fee quote endpoints.
type FeeHandler struct {
	fees fee.Service
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(fees fee.Service) *FeeHandler {
	return &FeeHandler{fees: fees}
}

type feeRequest struct {
	PaymentMethod string  `json:"payment_method"`
	PaymentType   *string `json:"payment_type"`
	// Amount arrives as a JSON number or a numeric string; it is parsed
	// strictly, never silently cast.
	Amount interface{} `json:"amount"`
	// Currency is accepted for forward compatibility but unused here.
	Currency string `json:"currency"`
}

// CalculateTransferFee handles POST /api/fees/transfer.
// Response: {success, fee, percentage, total, payment_method, payment_type}.
func (h *FeeHandler) CalculateTransferFee(c *fiber.Ctx) error {
	var req feeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Requête invalide",
		})
	}

	if req.PaymentMethod == "" || req.Amount == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Les paramètres payment_method et amount sont requis",
		})
	}

	amount, ok := validation.ParseAmount(req.Amount)
	if !ok || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Le montant doit être un nombre positif",
		})
	}

	quote, err := h.fees.TransferFee(c.Context(), req.PaymentMethod, req.PaymentType, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Aucun frais actif trouvé pour cette méthode de paiement",
			})
		}
		log.Printf("transfer fee calculation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Une erreur est survenue lors du calcul des frais",
		})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"fee":            quote.Fee,
		"percentage":     quote.Percentage,
		"total":          quote.Total,
		"payment_method": quote.PaymentMethod,
		"payment_type":   quote.PaymentType,
	})
}

// CalculateWithdrawalFee handles POST /api/fees/withdrawal.
// Response: {status, data: {amount, fee, total, payment_method,
// payment_type}}. The envelope differs from the transfer endpoint and
// "total" carries the net amount; both quirks are kept for compatibility.
func (h *FeeHandler) CalculateWithdrawalFee(c *fiber.Ctx) error {
	var req feeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Requête invalide",
		})
	}

	if req.PaymentMethod == "" || req.Amount == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Les paramètres payment_method et amount sont requis",
		})
	}

	amount, ok := validation.ParseAmount(req.Amount)
	if !ok || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Le montant doit être un nombre positif",
		})
	}

	quote, err := h.fees.WithdrawalFee(c.Context(), req.PaymentMethod, req.PaymentType, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Aucun frais actif trouvé pour cette méthode de paiement",
			})
		}
		log.Printf("withdrawal fee calculation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Une erreur est survenue lors du calcul des frais",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"amount":         quote.Amount,
			"fee":            quote.Fee,
			"total":          quote.Net,
			"payment_method": quote.PaymentMethod,
			"payment_type":   quote.PaymentType,
		},
	})
}
