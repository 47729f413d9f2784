// Package cart holds a single session's estimate cart: an ordered list of
// priced line items with mutation operations, aggregate estimation and a
// reversible shareable encoding.
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
)

const (
	// MinQuantity and MaxQuantity bound a line item's quantity; out of
	// range values clamp rather than error.
	MinQuantity = 1
	MaxQuantity = 99
)

// ServiceRef identifies the service a line item belongs to.
type ServiceRef struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// PlanRef carries the priced plan selection of a line item.
type PlanRef struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name,omitempty"`
	Slug         string          `json:"slug,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	HourlyPrice  decimal.Decimal `json:"hourly_price,omitempty"`
}

// Selection is an optional sub-selection (location, disk, addon, licence,
// operating system).
type Selection struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Item is one line of the cart. Items are owned exclusively by the Cart;
// accessors hand out copies.
type Item struct {
	ID            string          `json:"id"`
	Service       ServiceRef      `json:"service"`
	Plan          PlanRef         `json:"plan"`
	Location      *Selection      `json:"location,omitempty"`
	Disk          *Selection      `json:"disk,omitempty"`
	Addon         *Selection      `json:"addon,omitempty"`
	Licence       *Selection      `json:"licence,omitempty"`
	OS            *Selection      `json:"os,omitempty"`
	Network       string          `json:"network,omitempty"`
	Quantity      int             `json:"quantity"`
	CycleOverride pricing.CycleID `json:"billing_cycle,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	AddedAt       time.Time       `json:"added_at"`
}

// Cart is an ordered collection of line items for one user session.
// It is not safe for concurrent use; a cart belongs to a single writer.
type Cart struct {
	items []Item
	now   func() time.Time
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{now: time.Now}
}

// AddItem appends an item and returns its assigned id. Adding a line that
// matches an existing one (same plan, service and billing cycle) merges
// into it by summing quantities instead of duplicating the line.
func (c *Cart) AddItem(item Item) string {
	if item.Quantity < MinQuantity {
		item.Quantity = MinQuantity
	}
	item.Quantity = clampQuantity(item.Quantity)

	for i := range c.items {
		existing := &c.items[i]
		if existing.Plan.ID == item.Plan.ID &&
			existing.Service.Slug == item.Service.Slug &&
			existing.CycleOverride == item.CycleOverride {
			existing.Quantity = clampQuantity(existing.Quantity + item.Quantity)
			return existing.ID
		}
	}

	if item.ID == "" {
		item.ID = fmt.Sprintf("%s-%s-%d", item.Service.Slug, item.Plan.ID, c.now().UnixNano())
	}
	item.AddedAt = c.now()
	c.items = append(c.items, item)
	return item.ID
}

// RemoveItem deletes the item with the given id. It reports whether an
// item was removed.
func (c *Cart) RemoveItem(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity sets an item's quantity, clamped to [MinQuantity,
// MaxQuantity]. It reports whether the item exists.
func (c *Cart) SetQuantity(id string, quantity int) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = clampQuantity(quantity)
			return true
		}
	}
	return false
}

// SetNotes sets an item's free-text notes. It reports whether the item
// exists.
func (c *Cart) SetNotes(id, notes string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Notes = notes
			return true
		}
	}
	return false
}

// ClearAll empties the cart.
func (c *Cart) ClearAll() {
	c.items = nil
}

// Items returns a copy of the cart's line items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// ItemCount returns the total quantity across all line items.
func (c *Cart) ItemCount() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

func clampQuantity(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
