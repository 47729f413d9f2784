package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
)

// LineEstimate is the per-item breakdown of an estimate.
type LineEstimate struct {
	ItemID       string          `json:"item_id"`
	ServiceName  string          `json:"service_name,omitempty"`
	PlanName     string          `json:"plan_name,omitempty"`
	Quantity     int             `json:"quantity"`
	Cycle        pricing.CycleID `json:"billing_cycle"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	DisplayTotal string          `json:"display_total"`
	Notes        string          `json:"notes,omitempty"`
}

// Estimate is the derived aggregate of a cart for one billing cycle and
// display currency. It is recomputed on demand and never stored.
type Estimate struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	GSTPercent        decimal.Decimal `json:"gst_percent"`
	Currency          string          `json:"currency"`
	Cycle             pricing.CycleID `json:"billing_cycle"`
	Items             []LineEstimate  `json:"items"`
	DisplaySubtotal   string          `json:"display_subtotal"`
	DisplayTaxAmount  string          `json:"display_tax_amount"`
	DisplayGrandTotal string          `json:"display_grand_total"`
}

// ComputeEstimate prices every line item at the requested billing cycle
// (honoring per-item overrides), sums the subtotal, applies GST and
// renders display values in the requested currency.
func ComputeEstimate(c *Cart, engine *pricing.Engine, cycle pricing.CycleID, currency string) Estimate {
	est := Estimate{
		Subtotal:   decimal.Zero,
		GSTPercent: engine.GSTPercent(),
		Currency:   currency,
		Cycle:      cycle,
		Items:      make([]LineEstimate, 0, c.Len()),
	}

	for _, item := range c.Items() {
		itemCycle := cycle
		if item.CycleOverride != "" {
			itemCycle = item.CycleOverride
		}

		unit := engine.PriceForCycle(item.Plan.MonthlyPrice, itemCycle)
		total := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		est.Subtotal = est.Subtotal.Add(total)

		est.Items = append(est.Items, LineEstimate{
			ItemID:       item.ID,
			ServiceName:  item.Service.Name,
			PlanName:     item.Plan.Name,
			Quantity:     item.Quantity,
			Cycle:        itemCycle,
			UnitPrice:    unit,
			Total:        total,
			DisplayTotal: engine.Format(total, currency),
			Notes:        item.Notes,
		})
	}

	est.TaxAmount = engine.ComputeTax(est.Subtotal)
	est.GrandTotal = est.Subtotal.Add(est.TaxAmount)
	est.DisplaySubtotal = engine.Format(est.Subtotal, currency)
	est.DisplayTaxAmount = engine.Format(est.TaxAmount, currency)
	est.DisplayGrandTotal = engine.Format(est.GrandTotal, currency)
	return est
}
