package pricing

import (
	"github.com/shopspring/decimal"
)

// CycleID identifies a billing cycle.
type CycleID string

const (
	CycleHourly       CycleID = "hourly"
	CycleMonthly      CycleID = "monthly"
	CycleQuarterly    CycleID = "quarterly"
	CycleSemiAnnually CycleID = "semi-annually"
	CycleYearly       CycleID = "yearly"
	CycleBiAnnually   CycleID = "bi-annually"
	CycleTriAnnually  CycleID = "tri-annually"
)

// Cycle is one row of the billing cycle table. Multiplier is relative to
// the monthly baseline; Discount is zero when the cycle carries none.
type Cycle struct {
	ID         CycleID         `json:"id"`
	Label      string          `json:"label"`
	Suffix     string          `json:"suffix"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Discount   decimal.Decimal `json:"discount,omitempty"`
}

// HasDiscount reports whether the cycle carries a multi-period discount.
func (c Cycle) HasDiscount() bool {
	return !c.Discount.IsZero()
}

// buildCycleTable constructs the cycle table with the given discount
// factors. Only multi-year cycles take a discount.
func buildCycleTable(discounts map[string]decimal.Decimal) []Cycle {
	discountFor := func(id CycleID) decimal.Decimal {
		if d, ok := discounts[string(id)]; ok {
			return d
		}
		return decimal.Zero
	}

	one := decimal.NewFromInt(1)
	return []Cycle{
		{ID: CycleHourly, Label: "Hourly", Suffix: "/hour", Multiplier: one.Div(decimal.NewFromInt(730))},
		{ID: CycleMonthly, Label: "Monthly", Suffix: "/month", Multiplier: one},
		{ID: CycleQuarterly, Label: "Quarterly", Suffix: "/quarter", Multiplier: decimal.NewFromInt(3)},
		{ID: CycleSemiAnnually, Label: "Semi-Annually", Suffix: "/6 months", Multiplier: decimal.NewFromInt(6)},
		{ID: CycleYearly, Label: "Yearly", Suffix: "/year", Multiplier: decimal.NewFromInt(12), Discount: discountFor(CycleYearly)},
		{ID: CycleBiAnnually, Label: "Bi-Annually", Suffix: "/2 years", Multiplier: decimal.NewFromInt(24), Discount: discountFor(CycleBiAnnually)},
		{ID: CycleTriAnnually, Label: "Tri-Annually", Suffix: "/3 years", Multiplier: decimal.NewFromInt(36), Discount: discountFor(CycleTriAnnually)},
	}
}
