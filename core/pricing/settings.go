// Package pricing computes line-item and cart prices from the canonical
// monthly baseline: billing cycle multipliers, multi-year discounts,
// currency conversion and GST.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Settings is the immutable pricing configuration an Engine is built from.
// Values are resolved once at construction; nothing mutates them afterwards.
type Settings struct {
	// CurrencyRates maps currency code to the conversion rate from INR
	CurrencyRates map[string]decimal.Decimal

	// BillingDiscounts maps multi-year cycle id to its discount factor (<1)
	BillingDiscounts map[string]decimal.Decimal

	// GSTRatePercent is the tax percentage applied to estimate subtotals
	GSTRatePercent decimal.Decimal
}

// Overrides carries optional setting overrides loaded from configuration
// or from the upstream pricing-settings record. Nil/empty fields keep the
// built-in defaults.
type Overrides struct {
	CurrencyRates    map[string]float64 `json:"currency_rates,omitempty"`
	BillingDiscounts map[string]float64 `json:"billing_discounts,omitempty"`
	GSTRatePercent   *float64           `json:"gst_rate,omitempty"`
}

// DefaultSettings returns the built-in pricing defaults.
func DefaultSettings() Settings {
	return Settings{
		CurrencyRates: map[string]decimal.Decimal{
			"INR": decimal.NewFromInt(1),
			"USD": decimal.NewFromFloat(0.012),
			"EUR": decimal.NewFromFloat(0.011),
			"GBP": decimal.NewFromFloat(0.0095),
		},
		BillingDiscounts: map[string]decimal.Decimal{
			string(CycleYearly):      decimal.NewFromFloat(0.9),
			string(CycleBiAnnually):  decimal.NewFromFloat(0.85),
			string(CycleTriAnnually): decimal.NewFromFloat(0.8),
		},
		GSTRatePercent: decimal.NewFromInt(18),
	}
}

// Merge returns a new Settings with the overrides applied on top of s.
// s itself is never modified.
func (s Settings) Merge(o Overrides) Settings {
	merged := Settings{
		CurrencyRates:    make(map[string]decimal.Decimal, len(s.CurrencyRates)),
		BillingDiscounts: make(map[string]decimal.Decimal, len(s.BillingDiscounts)),
		GSTRatePercent:   s.GSTRatePercent,
	}
	for k, v := range s.CurrencyRates {
		merged.CurrencyRates[k] = v
	}
	for k, v := range s.BillingDiscounts {
		merged.BillingDiscounts[k] = v
	}

	for k, v := range o.CurrencyRates {
		merged.CurrencyRates[k] = decimal.NewFromFloat(v)
	}
	for k, v := range o.BillingDiscounts {
		merged.BillingDiscounts[k] = decimal.NewFromFloat(v)
	}
	if o.GSTRatePercent != nil {
		merged.GSTRatePercent = decimal.NewFromFloat(*o.GSTRatePercent)
	}
	return merged
}
