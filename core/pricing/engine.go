package pricing

import (
	"github.com/shopspring/decimal"
)

// Engine prices line items against the billing cycle table and converts
// between currencies. It is immutable after construction: build a new
// Engine to apply different settings.
type Engine struct {
	cycles    []Cycle
	cycleByID map[CycleID]Cycle
	settings  Settings
}

// NewEngine builds an engine from the given settings.
func NewEngine(settings Settings) *Engine {
	cycles := buildCycleTable(settings.BillingDiscounts)
	byID := make(map[CycleID]Cycle, len(cycles))
	for _, c := range cycles {
		byID[c.ID] = c
	}
	return &Engine{
		cycles:    cycles,
		cycleByID: byID,
		settings:  settings,
	}
}

// NewDefaultEngine builds an engine from the built-in defaults.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultSettings())
}

// Cycles returns the billing cycle table in display order.
func (e *Engine) Cycles() []Cycle {
	out := make([]Cycle, len(e.cycles))
	copy(out, e.cycles)
	return out
}

// CycleFor resolves a cycle id, falling back to monthly for unknown ids.
func (e *Engine) CycleFor(id CycleID) Cycle {
	if c, ok := e.cycleByID[id]; ok {
		return c
	}
	return e.cycleByID[CycleMonthly]
}

// PriceForCycle converts a canonical monthly price to the given billing
// cycle, applying the cycle's discount factor when it has one. Negative
// monthly prices are treated as zero; unknown cycles price as monthly.
func (e *Engine) PriceForCycle(monthly decimal.Decimal, id CycleID) decimal.Decimal {
	if monthly.IsNegative() {
		monthly = decimal.Zero
	}
	cycle := e.CycleFor(id)
	price := monthly.Mul(cycle.Multiplier)
	if cycle.HasDiscount() {
		price = price.Mul(cycle.Discount)
	}
	return price
}

// Convert converts an INR amount into the requested currency. Unknown
// currencies convert at rate 1.
func (e *Engine) Convert(amount decimal.Decimal, currency string) decimal.Decimal {
	rate, ok := e.settings.CurrencyRates[currency]
	if !ok {
		rate = decimal.NewFromInt(1)
	}
	return amount.Mul(rate)
}

// Format converts and renders an amount for display: currency symbol, two
// decimal places, Indian digit grouping. Unknown currencies fall back to
// the INR symbol and rate 1.
func (e *Engine) Format(amount decimal.Decimal, currency string) string {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return Symbol(currency) + groupIndian(e.Convert(amount, currency))
}

// ComputeTax returns the GST amount for a subtotal.
func (e *Engine) ComputeTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(e.settings.GSTRatePercent).Div(decimal.NewFromInt(100))
}

// GSTPercent returns the configured GST percentage.
func (e *Engine) GSTPercent() decimal.Decimal {
	return e.settings.GSTRatePercent
}
