package handlers

import (
	"errors"
	"strings"

	"solifin/internal/services/currency"
	"solifin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CurrencyHandler exposes the direct conversion endpoint.
type CurrencyHandler struct {
	normalizer *currency.Normalizer
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(normalizer *currency.Normalizer) *CurrencyHandler {
	return &CurrencyHandler{normalizer: normalizer}
}

type convertRequest struct {
	Amount interface{} `json:"amount"`
	From   string      `json:"from"`
	To     string      `json:"to"`
}

// Convert handles POST /api/currency/convert.
// Response: {success, convertedAmount, from, to, rate}. Unlike the
// registration normalizer this path fails loudly with a 400 when the target
// currency is not available.
func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	var req convertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Requête invalide",
		})
	}

	fieldErrors := fiber.Map{}

	amount, ok := validation.ParseAmount(req.Amount)
	if !ok || amount < 0 {
		fieldErrors["amount"] = "Le montant doit être un nombre positif ou nul"
	}

	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))
	if !validation.ValidCurrencyCode(from) {
		fieldErrors["from"] = "Code devise invalide"
	}
	if !validation.ValidCurrencyCode(to) {
		fieldErrors["to"] = "Code devise invalide"
	}

	if len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Paramètres de conversion invalides",
			"errors":  fieldErrors,
		})
	}

	converted, rate, err := h.normalizer.Convert(c.Context(), amount, from, to)
	if err != nil {
		if errors.Is(err, currency.ErrUnsupportedCurrency) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Conversion non disponible pour la devise " + to,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Une erreur est survenue lors de la conversion",
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"convertedAmount": converted,
		"from":            from,
		"to":              to,
		"rate":            rate,
	})
}
