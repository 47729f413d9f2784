package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vmItem(quantity int) Item {
	return Item{
		Service:  ServiceRef{Slug: "virtual-machines", Name: "Virtual Machines"},
		Plan:     PlanRef{ID: "10", Name: "VM 2GB", MonthlyPrice: decimal.NewFromInt(500)},
		Quantity: quantity,
	}
}

func TestAddItemClampsQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero clamps to minimum", 0, 1},
		{"negative clamps to minimum", -5, 1},
		{"over maximum clamps to maximum", 150, 99},
		{"in range passes through", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddItem(vmItem(tt.in))
			require.Equal(t, 1, c.Len())
			assert.Equal(t, tt.want, c.Items()[0].Quantity)
		})
	}
}

func TestAddItemMergesMatchingLines(t *testing.T) {
	c := New()
	first := c.AddItem(vmItem(2))
	second := c.AddItem(vmItem(3))

	assert.Equal(t, first, second)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Items()[0].Quantity)
}

func TestAddItemDifferentCycleStaysSeparate(t *testing.T) {
	c := New()
	c.AddItem(vmItem(1))

	yearly := vmItem(1)
	yearly.CycleOverride = "yearly"
	c.AddItem(yearly)

	assert.Equal(t, 2, c.Len())
}

func TestAddItemMergeClampsAtMaximum(t *testing.T) {
	c := New()
	c.AddItem(vmItem(60))
	c.AddItem(vmItem(60))

	assert.Equal(t, 99, c.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	id := c.AddItem(vmItem(1))

	assert.True(t, c.RemoveItem(id))
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.RemoveItem(id))
}

func TestSetQuantity(t *testing.T) {
	c := New()
	id := c.AddItem(vmItem(1))

	assert.True(t, c.SetQuantity(id, 7))
	assert.Equal(t, 7, c.Items()[0].Quantity)

	assert.True(t, c.SetQuantity(id, 0))
	assert.Equal(t, 1, c.Items()[0].Quantity)

	assert.True(t, c.SetQuantity(id, 500))
	assert.Equal(t, 99, c.Items()[0].Quantity)

	assert.False(t, c.SetQuantity("missing", 2))
}

func TestSetNotes(t *testing.T) {
	c := New()
	id := c.AddItem(vmItem(1))

	assert.True(t, c.SetNotes(id, "production web tier"))
	assert.Equal(t, "production web tier", c.Items()[0].Notes)
	assert.False(t, c.SetNotes("missing", "x"))
}

func TestClearAllAndCounts(t *testing.T) {
	c := New()
	c.AddItem(vmItem(2))

	other := vmItem(3)
	other.Plan.ID = "11"
	c.AddItem(other)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 5, c.ItemCount())

	c.ClearAll()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.ItemCount())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(vmItem(1))

	items := c.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
