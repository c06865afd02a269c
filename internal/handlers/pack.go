package handlers

import (
	"errors"

	"solifin/internal/repositories"
	"solifin/internal/services/cards"
	"solifin/internal/services/packs"
	"solifin/internal/utils/response"
	"solifin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PackHandler exposes membership pack endpoints.
type PackHandler struct {
	service packs.Service
}

// NewPackHandler creates a new PackHandler.
func NewPackHandler(service packs.Service) *PackHandler {
	return &PackHandler{service: service}
}

// ListPacks handles GET /api/packs.
func (h *PackHandler) ListPacks(c *fiber.Ctx) error {
	list, err := h.service.List(c.Context())
	if err != nil {
		return response.ServerError(c, "failed to list packs")
	}
	return response.Success(c, "packs", list)
}

// PurchasePack handles POST /api/packs/purchase.
func (h *PackHandler) PurchasePack(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req struct {
		PackID        uint               `json:"pack_id"`
		Amount        interface{}        `json:"amount"`
		Fees          interface{}        `json:"fees"`
		Currency      string             `json:"currency"`
		PaymentMethod string             `json:"payment_method"`
		PaymentType   *string            `json:"payment_type"`
		Card          *cards.CardDetails `json:"card"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	amount, ok := validation.ParseAmount(req.Amount)
	if !ok {
		return response.BadRequest(c, "amount must be a number")
	}
	fees := 0.0
	if req.Fees != nil {
		if fees, ok = validation.ParseAmount(req.Fees); !ok {
			return response.BadRequest(c, "fees must be a number")
		}
	}

	purchase, err := h.service.Purchase(c.Context(), packs.PurchaseInput{
		UserID:        claims.UserID,
		PackID:        req.PackID,
		Amount:        amount,
		Fees:          fees,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		PaymentType:   req.PaymentType,
		Card:          req.Card,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPackNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, packs.ErrInvalidAmount),
			errors.Is(err, packs.ErrInsufficientAmount),
			errors.Is(err, packs.ErrInsufficientBalance),
			errors.Is(err, packs.ErrCardRequired):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "purchase failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "purchase successful",
		"data":    purchase,
	})
}
