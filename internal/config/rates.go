package config

import (
	"encoding/json"
	"log"
	"os"
)

// RateTables holds the static conversion rates used when the live exchange
// service is unreachable. The two tables are intentionally separate: the API
// table serves the direct /currency/convert path, the estimate table serves
// only the registration normalizer's last-resort branch. They have different
// currency coverage and must not be merged.
type RateTables struct {
	// APIFallback maps a base currency to target rates (units of target per
	// one unit of base).
	APIFallback map[string]map[string]float64 `json:"api_fallback"`
	// EstimateToUSD maps a currency to its USD multiplier (1 unit of the
	// currency equals this many USD).
	EstimateToUSD map[string]float64 `json:"estimate_to_usd"`
}

// defaultRateTables mirrors the values the platform shipped with. XOF and XAF
// are both CFA francs pegged to the euro, hence the shared rate.
func defaultRateTables() RateTables {
	return RateTables{
		APIFallback: map[string]map[string]float64{
			"USD": {
				"USD": 1,
				"EUR": 0.93,
				"GBP": 0.80,
				"CAD": 1.36,
				"CHF": 0.88,
				"JPY": 151.0,
				"CNY": 7.24,
				"INR": 83.5,
				"NGN": 1480.0,
				"GHS": 14.8,
				"KES": 129.0,
				"ZAR": 18.2,
				"XOF": 602.5,
				"XAF": 602.5,
				"CDF": 2850.0,
			},
		},
		EstimateToUSD: map[string]float64{
			"USD": 1,
			"EUR": 1.08,
			"XOF": 0.00166,
			"CFA": 0.00166,
		},
	}
}

// LoadRateTables returns the fallback rate tables, overridden by the JSON file
// named in RATES_FALLBACK_FILE when that file exists and parses. A broken
// override file is logged and ignored so a bad deploy cannot take down
// currency conversion entirely.
func LoadRateTables() RateTables {
	tables := defaultRateTables()

	path := GetEnv("RATES_FALLBACK_FILE", "")
	if path == "" {
		return tables
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("rate tables: cannot read %s: %v, using defaults", path, err)
		return tables
	}

	var override RateTables
	if err := json.Unmarshal(data, &override); err != nil {
		log.Printf("rate tables: cannot parse %s: %v, using defaults", path, err)
		return tables
	}

	if len(override.APIFallback) > 0 {
		tables.APIFallback = override.APIFallback
	}
	if len(override.EstimateToUSD) > 0 {
		tables.EstimateToUSD = override.EstimateToUSD
	}
	return tables
}
