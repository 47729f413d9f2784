package cart

import (
	"encoding/base64"
	"encoding/json"

	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
	"github.com/Sudheer128/cloud4india-sub003/internal/errors"
)

// SharedItem is the minimal projection of a line item captured by a
// share token: enough to rebuild the selection against a live catalog,
// deliberately not a full cart restore.
type SharedItem struct {
	ServiceSlug string `json:"s,omitempty"`
	LocationID  string `json:"l,omitempty"`
	Plan        string `json:"p,omitempty"`
	Disk        string `json:"d,omitempty"`
	Quantity    int    `json:"q"`
	Cycle       string `json:"b,omitempty"`
	Network     string `json:"n,omitempty"`
	OSName      string `json:"os,omitempty"`
}

// Project reduces the cart to its shareable projection. Plan and disk
// prefer the id and fall back to the name; the item's cycle override
// falls back to the cart-level cycle.
func Project(c *Cart, defaultCycle pricing.CycleID) []SharedItem {
	items := c.Items()
	out := make([]SharedItem, 0, len(items))
	for _, item := range items {
		shared := SharedItem{
			ServiceSlug: item.Service.Slug,
			Plan:        idOrName(item.Plan.ID, item.Plan.Name),
			Quantity:    item.Quantity,
			Cycle:       string(defaultCycle),
			Network:     item.Network,
		}
		if item.CycleOverride != "" {
			shared.Cycle = string(item.CycleOverride)
		}
		if item.Location != nil {
			shared.LocationID = item.Location.ID
		}
		if item.Disk != nil {
			shared.Disk = idOrName(item.Disk.ID, item.Disk.Name)
		}
		if item.OS != nil {
			shared.OSName = item.OS.Name
		}
		out = append(out, shared)
	}
	return out
}

// EncodeShareable serializes the cart's minimal projection into a
// URL-safe token. The same logical cart always yields the same token.
func EncodeShareable(c *Cart, defaultCycle pricing.CycleID) (string, error) {
	data, err := json.Marshal(Project(c, defaultCycle))
	if err != nil {
		return "", errors.Internal("encoding shareable cart", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShareable reverses EncodeShareable, reconstructing the minimal
// projection exactly.
func DecodeShareable(token string) ([]SharedItem, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.Parsing("share token is not valid base64", err)
	}
	var items []SharedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Parsing("share token payload is not valid", err)
	}
	return items, nil
}

func idOrName(id, name string) string {
	if id != "" {
		return id
	}
	return name
}
