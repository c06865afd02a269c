package exchange

import (
	"context"
	"log"

	"solifin/internal/config"
)

// Source resolves conversion rates for a base currency. A live fetch failure
// is absorbed here: the caller always gets a rate table, possibly the static
// fallback, possibly empty for an unknown base. Rates are fetched per call;
// they are deliberately not cached.
type Source struct {
	fetcher RateFetcher
	tables  config.RateTables
}

// NewSource creates a rate source over the given fetcher and fallback tables.
func NewSource(fetcher RateFetcher, tables config.RateTables) *Source {
	return &Source{fetcher: fetcher, tables: tables}
}

// GetRates returns the rate table for base. Never returns an error; on fetch
// failure it logs and substitutes the static fallback table for that base.
func (s *Source) GetRates(ctx context.Context, base string) map[string]float64 {
	rates, err := s.fetcher.FetchRates(ctx, base)
	if err != nil {
		log.Printf("exchange: live fetch failed for base %s: %v, using fallback", base, err)
		return s.fallbackFor(base)
	}
	return rates
}

// EstimateToUSD returns the fixed X-to-USD multiplier for a currency, used
// only as the registration normalizer's last resort.
func (s *Source) EstimateToUSD(currency string) (float64, bool) {
	rate, ok := s.tables.EstimateToUSD[currency]
	return rate, ok
}

func (s *Source) fallbackFor(base string) map[string]float64 {
	if table, ok := s.tables.APIFallback[base]; ok {
		return table
	}
	log.Printf("exchange: no fallback table for base %s", base)
	return map[string]float64{}
}
