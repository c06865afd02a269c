package handlers

import (
	"context"
	"net/http"
	"testing"

	"solifin/internal/services/currency"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// stubRateSource serves fixed tables without touching the network.
type stubRateSource struct {
	tables map[string]map[string]float64
}

func (s *stubRateSource) GetRates(ctx context.Context, base string) map[string]float64 {
	if table, ok := s.tables[base]; ok {
		return table
	}
	return map[string]float64{}
}

func (s *stubRateSource) EstimateToUSD(c string) (float64, bool) { return 0, false }

func currencyTestApp(src currency.RateSource) *fiber.App {
	app := fiber.New()
	h := NewCurrencyHandler(currency.NewNormalizer(src))
	app.Post("/api/currency/convert", h.Convert)
	return app
}

func TestCurrencyHandler_Convert(t *testing.T) {
	src := &stubRateSource{tables: map[string]map[string]float64{
		"USD": {"XOF": 602.5, "EUR": 0.92},
	}}

	t.Run("success envelope", func(t *testing.T) {
		app := currencyTestApp(src)
		resp, body := postJSON(t, app, "/api/currency/convert", `{"amount":10,"from":"usd","to":"xof"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, 6025.0, body["convertedAmount"])
		assert.Equal(t, "USD", body["from"])
		assert.Equal(t, "XOF", body["to"])
		assert.Equal(t, 602.5, body["rate"])
	})

	t.Run("same currency skips lookup and echoes rate 1", func(t *testing.T) {
		app := currencyTestApp(&stubRateSource{})
		resp, body := postJSON(t, app, "/api/currency/convert", `{"amount":99.5,"from":"GBP","to":"GBP"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 99.5, body["convertedAmount"])
		assert.Equal(t, 1.0, body["rate"])
	})

	t.Run("unsupported target fails with 400", func(t *testing.T) {
		app := currencyTestApp(src)
		resp, body := postJSON(t, app, "/api/currency/convert", `{"amount":10,"from":"USD","to":"ZZZ"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Conversion non disponible pour la devise ZZZ", body["message"])
	})

	t.Run("field errors collected per parameter", func(t *testing.T) {
		app := currencyTestApp(src)
		resp, body := postJSON(t, app, "/api/currency/convert", `{"amount":"abc","from":"","to":"EURO"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "amount")
		assert.Contains(t, errs, "from")
		assert.Contains(t, errs, "to")
	})

	t.Run("zero amount is accepted", func(t *testing.T) {
		app := currencyTestApp(src)
		resp, body := postJSON(t, app, "/api/currency/convert", `{"amount":0,"from":"USD","to":"EUR"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 0.0, body["convertedAmount"])
	})
}
