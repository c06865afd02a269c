// Package currency converts amounts between currencies. Two distinct entry
// points exist and their semantics must stay separate: ToUSD (inverted
// lookup, silent fallback chain) feeds registration and purchases, Convert
// (direct lookup, loud failure) backs the public conversion endpoint.
package currency

import (
	"context"
	"errors"
	"log"
	"math"
)

// BaseCurrency is the reference currency all amounts are normalized to
// before fee math.
const BaseCurrency = "USD"

// ErrUnsupportedCurrency reports a conversion target absent from both the
// live rate table and the fallback table.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// RateSource supplies rate tables and fixed USD estimates.
type RateSource interface {
	GetRates(ctx context.Context, base string) map[string]float64
	EstimateToUSD(currency string) (float64, bool)
}

// Normalizer converts amounts using a RateSource.
type Normalizer struct {
	rates RateSource
}

// NewNormalizer creates a Normalizer over the given rate source.
func NewNormalizer(rates RateSource) *Normalizer {
	return &Normalizer{rates: rates}
}

// ToUSD converts an amount to USD. The lookup is inverted: it fetches the
// USD-based rate table and divides by rates[from]. When the currency is
// missing from the table it falls back to the fixed estimate table, and when
// entirely unknown it returns the amount unchanged. That identity fallback is
// intentional and financially lossy; registration accepts it rather than
// rejecting the member. No rounding happens here.
func (n *Normalizer) ToUSD(ctx context.Context, amount float64, from string) float64 {
	if from == BaseCurrency {
		return amount
	}

	rates := n.rates.GetRates(ctx, BaseCurrency)
	if rate, ok := rates[from]; ok && rate > 0 {
		return amount * (1 / rate)
	}

	if estimate, ok := n.rates.EstimateToUSD(from); ok {
		return amount * estimate
	}

	log.Printf("currency: unknown currency %s, keeping amount as-is", from)
	return amount
}

// Convert converts an amount between two arbitrary currencies using a direct
// lookup on the from-based rate table. Unlike ToUSD it fails loudly when the
// target is unsupported. The converted amount is rounded to 2 decimals as a
// user-facing value; the rate is returned unrounded.
func (n *Normalizer) Convert(ctx context.Context, amount float64, from, to string) (converted, rate float64, err error) {
	if from == to {
		return RoundTo(amount, 2), 1, nil
	}

	rates := n.rates.GetRates(ctx, from)
	rate, ok := rates[to]
	if !ok || rate <= 0 {
		return 0, 0, ErrUnsupportedCurrency
	}

	return RoundTo(amount*rate, 2), rate, nil
}

// RoundTo rounds v half away from zero to the given number of decimals.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
