package catalog

import (
	"strings"
)

// Category groups services for the estimator UI.
type Category string

const (
	CategoryCompute     Category = "compute"
	CategoryStorage     Category = "storage"
	CategoryNetwork     Category = "network"
	CategoryBackup      Category = "backup"
	CategorySecurity    Category = "security"
	CategoryMonitoring  Category = "monitoring"
	CategoryMarketplace Category = "marketplace"
	CategoryOther       Category = "other"
)

// CategoryOrder is the canonical display order.
var CategoryOrder = []Category{
	CategoryCompute,
	CategoryStorage,
	CategoryNetwork,
	CategoryBackup,
	CategorySecurity,
	CategoryMonitoring,
	CategoryMarketplace,
	CategoryOther,
}

var categoryNames = map[Category]string{
	CategoryCompute:     "Compute",
	CategoryStorage:     "Storage",
	CategoryNetwork:     "Networking",
	CategoryBackup:      "Backup & Recovery",
	CategorySecurity:    "Security & Licensing",
	CategoryMonitoring:  "Monitoring",
	CategoryMarketplace: "Marketplace & Add-ons",
	CategoryOther:       "Other Services",
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return categoryNames[CategoryOther]
}

// categoryKeywords is checked in order; the first matching group wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryCompute, []string{"virtual machine", "virtual-machine", "kubernetes", "autoscale"}},
	{CategoryStorage, []string{"storage", "nvme", "snapshot", "template", "iso"}},
	{CategoryNetwork, []string{"router", "vpc", "ip address", "ip-address", "load balancer", "load-balancer", "bandwidth", "network", "vnf"}},
	{CategoryBackup, []string{"backup"}},
	{CategorySecurity, []string{"licence", "license"}},
	{CategoryMonitoring, []string{"monitoring"}},
	{CategoryMarketplace, []string{"addon", "marketplace", "pool card", "pool-card", "dns"}},
}

// Classify maps a service's name and slug to a category when the upstream
// record does not carry one. Matching is case-insensitive substring
// matching over ordered keyword groups; no match yields CategoryOther.
func Classify(name, slug string) Category {
	lowerName := strings.ToLower(name)
	lowerSlug := strings.ToLower(slug)

	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lowerName, kw) || strings.Contains(lowerSlug, kw) {
				return group.category
			}
		}
	}
	return CategoryOther
}
