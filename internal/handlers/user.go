package handlers

import (
	"errors"

	"solifin/internal/models"
	"solifin/internal/repositories"
	"solifin/internal/services/cards"
	"solifin/internal/services/registration"
	"solifin/internal/utils"
	"solifin/internal/utils/response"
	"solifin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes member registration and profile endpoints.
type UserHandler struct {
	registration registration.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(reg registration.Service) *UserHandler {
	return &UserHandler{registration: reg}
}

type registerRequest struct {
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Password      string             `json:"password"`
	Country       string             `json:"country"`
	SponsorCode   string             `json:"sponsor_code"`
	PackID        uint               `json:"pack_id"`
	Amount        interface{}        `json:"amount"`
	Fees          interface{}        `json:"fees"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"payment_method"`
	PaymentType   *string            `json:"payment_type"`
	Card          *cards.CardDetails `json:"card"`
}

// Register handles POST /api/register: creates the member, their wallet and
// their first pack purchase, and distributes sponsor commissions.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
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

	result, err := h.registration.Register(c.Context(), registration.Input{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      req.Password,
		Country:       req.Country,
		SponsorCode:   req.SponsorCode,
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
		case errors.Is(err, repositories.ErrEmailTaken),
			errors.Is(err, repositories.ErrSponsorNotFound),
			errors.Is(err, repositories.ErrPackNotFound),
			errors.Is(err, registration.ErrMissingFields),
			errors.Is(err, registration.ErrWeakPassword),
			errors.Is(err, registration.ErrInvalidAmount),
			errors.Is(err, registration.ErrInsufficientAmount),
			errors.Is(err, registration.ErrCardRequired):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "registration failed")
		}
	}

	user := result.User
	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		return response.ServerError(c, "failed to generate tokens")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":            user.ID,
				"name":          user.Name,
				"email":         user.Email,
				"referral_code": user.ReferralCode,
			},
			"pack_id":       result.Purchase.PackID,
			"expires_at":    result.Purchase.ExpiresAt,
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	})
}
