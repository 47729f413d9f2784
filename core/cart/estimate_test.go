package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
)

func TestComputeEstimateMonthly(t *testing.T) {
	c := New()
	c.AddItem(Item{
		Service:  ServiceRef{Slug: "virtual-machines", Name: "Virtual Machines"},
		Plan:     PlanRef{ID: "10", Name: "VM 2GB", MonthlyPrice: decimal.NewFromInt(500)},
		Quantity: 2,
	})
	c.AddItem(Item{
		Service:  ServiceRef{Slug: "block-storage", Name: "Block Storage"},
		Plan:     PlanRef{ID: "20", Name: "100GB Volume", MonthlyPrice: decimal.NewFromInt(300)},
		Quantity: 1,
	})

	engine := pricing.NewDefaultEngine()
	est := ComputeEstimate(c, engine, pricing.CycleMonthly, "INR")

	assert.Equal(t, "1300", est.Subtotal.String())
	assert.Equal(t, "234", est.TaxAmount.String())
	assert.Equal(t, "1534", est.GrandTotal.String())
	assert.Equal(t, "18", est.GSTPercent.String())

	assert.Equal(t, "₹1,300.00", est.DisplaySubtotal)
	assert.Equal(t, "₹234.00", est.DisplayTaxAmount)
	assert.Equal(t, "₹1,534.00", est.DisplayGrandTotal)

	require.Len(t, est.Items, 2)
	assert.Equal(t, "1000", est.Items[0].Total.String())
	assert.Equal(t, "300", est.Items[1].Total.String())
}

func TestComputeEstimateYearly(t *testing.T) {
	c := New()
	c.AddItem(Item{
		Service:  ServiceRef{Slug: "virtual-machines"},
		Plan:     PlanRef{ID: "10", MonthlyPrice: decimal.NewFromInt(1000)},
		Quantity: 1,
	})

	engine := pricing.NewDefaultEngine()
	est := ComputeEstimate(c, engine, pricing.CycleYearly, "INR")

	assert.Equal(t, "10800", est.Subtotal.String())
	assert.Equal(t, "1944", est.TaxAmount.String())
	assert.Equal(t, "12744", est.GrandTotal.String())
}

func TestComputeEstimateCycleOverride(t *testing.T) {
	c := New()
	c.AddItem(Item{
		Service:  ServiceRef{Slug: "virtual-machines"},
		Plan:     PlanRef{ID: "10", MonthlyPrice: decimal.NewFromInt(1000)},
		Quantity: 1,
	})
	c.AddItem(Item{
		Service:       ServiceRef{Slug: "block-storage"},
		Plan:          PlanRef{ID: "20", MonthlyPrice: decimal.NewFromInt(100)},
		Quantity:      1,
		CycleOverride: pricing.CycleYearly,
	})

	engine := pricing.NewDefaultEngine()
	est := ComputeEstimate(c, engine, pricing.CycleMonthly, "INR")

	// 1000 priced monthly, 100 priced at its own yearly override.
	assert.Equal(t, "2080", est.Subtotal.String())
	require.Len(t, est.Items, 2)
	assert.Equal(t, pricing.CycleMonthly, est.Items[0].Cycle)
	assert.Equal(t, pricing.CycleYearly, est.Items[1].Cycle)
}

func TestComputeEstimateCurrencyConversion(t *testing.T) {
	c := New()
	c.AddItem(Item{
		Service:  ServiceRef{Slug: "virtual-machines"},
		Plan:     PlanRef{ID: "10", MonthlyPrice: decimal.NewFromInt(1000)},
		Quantity: 1,
	})

	engine := pricing.NewDefaultEngine()
	est := ComputeEstimate(c, engine, pricing.CycleMonthly, "USD")

	// Totals stay in INR; only the display values convert.
	assert.Equal(t, "1000", est.Subtotal.String())
	assert.Equal(t, "$12.00", est.DisplaySubtotal)
	assert.Equal(t, "USD", est.Currency)
}

func TestComputeEstimateEmptyCart(t *testing.T) {
	engine := pricing.NewDefaultEngine()
	est := ComputeEstimate(New(), engine, pricing.CycleMonthly, "INR")

	assert.True(t, est.Subtotal.IsZero())
	assert.True(t, est.GrandTotal.IsZero())
	assert.Empty(t, est.Items)
	assert.Equal(t, "₹0.00", est.DisplayGrandTotal)
}
