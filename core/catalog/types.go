// Package catalog holds the normalized pricing catalog model: services,
// plans, rate cards, billing cycles and the ancillary lookup tables, plus
// the coercion and transforms that turn loosely typed upstream records
// into it.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is one sellable catalog entry.
type Service struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Status       bool                   `json:"status"`
	Category     Category               `json:"category"`
	CategoryName string                 `json:"category_name"`
	BillingRule  string                 `json:"billing_rule,omitempty"`
	Config       map[string]interface{} `json:"config,omitempty"`
	PlanCount    int                    `json:"plan_count"`
}

// Plan is a priced configuration of a service. MonthlyPrice is the
// canonical baseline every cycle price derives from.
type Plan struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Slug                string                 `json:"slug"`
	ServiceName         string                 `json:"service_name"`
	Status              bool                   `json:"status"`
	CPU                 int64                  `json:"cpu"`
	Memory              int64                  `json:"memory"`
	Storage             int64                  `json:"storage"`
	Size                int64                  `json:"size"`
	Bandwidth           int64                  `json:"bandwidth"`
	BucketLimit         int64                  `json:"bucket_limit"`
	NetworkRate         int64                  `json:"network_rate"`
	DataTransferOut     int64                  `json:"data_transfer_out"`
	HourlyPrice         decimal.Decimal        `json:"hourly_price"`
	MonthlyPrice        decimal.Decimal        `json:"monthly_price"`
	YearlyPrice         decimal.Decimal        `json:"yearly_price"`
	PlanCategoryID      string                 `json:"plan_category_id,omitempty"`
	PlanCategoryName    string                 `json:"plan_category_name,omitempty"`
	StorageCategoryID   string                 `json:"storage_category_id,omitempty"`
	StorageCategoryName string                 `json:"storage_category_name,omitempty"`
	Attribute           map[string]interface{} `json:"attribute,omitempty"`
	Prices              []PriceRow             `json:"prices,omitempty"`
}

// PriceRow is one upstream price entry scoped to a billing cycle.
type PriceRow struct {
	Amount       decimal.Decimal `json:"amount"`
	BillingCycle string          `json:"billing_cycle,omitempty"`
}

// RateCard is a named pricing context; every snapshot is scoped to one.
type RateCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Status      bool   `json:"status"`
	Default     bool   `json:"default"`
	CardType    string `json:"card_type,omitempty"`
}

// BillingCycleInfo is the upstream billing cycle record (distinct from
// the pricing engine's constant cycle table).
type BillingCycleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Duration    int64  `json:"duration"`
	Unit        string `json:"unit,omitempty"`
	Enabled     bool   `json:"is_enabled"`
	SortOrder   int64  `json:"sort_order"`
}

// Product is an ancillary sellable (Acronis, M365, ...).
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description,omitempty"`
	Status       bool            `json:"status"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	Prices       []PriceRow      `json:"prices,omitempty"`
}

// Licence is an OS or software licence add-on.
type Licence struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	PricingUnit  string          `json:"pricing_unit,omitempty"`
	Status       bool            `json:"status"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
}

// OperatingSystem is a selectable OS.
type OperatingSystem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status bool   `json:"status"`
}

// Template is a deployable machine image.
type Template struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name"`
	Slug                   string                 `json:"slug"`
	OSType                 string                 `json:"os_type,omitempty"`
	ImageType              string                 `json:"image_type,omitempty"`
	FileType               string                 `json:"file_type,omitempty"`
	OperatingSystemID      string                 `json:"operating_system_id,omitempty"`
	OperatingSystem        map[string]interface{} `json:"operating_system,omitempty"`
	OperatingSystemVersion string                 `json:"operating_system_version,omitempty"`
	IconURL                string                 `json:"icon_url,omitempty"`
	Status                 bool                   `json:"status"`
}

// StorageCategory is a storage tier lookup row.
type StorageCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status bool   `json:"status"`
}

// PlanCategory is a plan grouping lookup row.
type PlanCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ShortName string `json:"short_name,omitempty"`
	Status    bool   `json:"status"`
	SortOrder int64  `json:"sort_order"`
}

// Snapshot is the full catalog for one rate card as of one sync. It is
// immutable once built and shared read-only by all consumers.
type Snapshot struct {
	RateCard          string             `json:"rate_card"`
	Services          []Service          `json:"services"`
	PlansByService    map[string][]Plan  `json:"plans_by_service"`
	RateCards         []RateCard         `json:"rate_cards"`
	BillingCycles     []BillingCycleInfo `json:"billing_cycles"`
	Products          []Product          `json:"products"`
	Licences          []Licence          `json:"licences"`
	OperatingSystems  []OperatingSystem  `json:"operating_systems"`
	Templates         []Template         `json:"templates"`
	StorageCategories []StorageCategory  `json:"storage_categories"`
	PlanCategories    []PlanCategory     `json:"plan_categories"`
	PricingOverrides  *PricingOverrides  `json:"pricing_settings,omitempty"`
	FetchedAt         time.Time          `json:"fetched_at"`
}

// PricingOverrides is the optional pricing-settings record carried by the
// warm cache document.
type PricingOverrides struct {
	GSTRatePercent   *float64           `json:"gst_rate,omitempty"`
	CurrencyRates    map[string]float64 `json:"currency_rates,omitempty"`
	BillingDiscounts map[string]float64 `json:"billing_discounts,omitempty"`
}

// Empty reports whether the snapshot carries no services.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Services) == 0
}

// ServiceGroup is one category bucket of services in canonical order.
type ServiceGroup struct {
	Category Category  `json:"category"`
	Name     string    `json:"name"`
	Services []Service `json:"services"`
}

// GroupedByCategory buckets the snapshot's services by category in
// canonical category order. Categories with no services are omitted.
func (s *Snapshot) GroupedByCategory() []ServiceGroup {
	byCat := make(map[Category][]Service)
	for _, svc := range s.Services {
		cat := svc.Category
		if cat == "" {
			cat = CategoryOther
		}
		byCat[cat] = append(byCat[cat], svc)
	}

	groups := make([]ServiceGroup, 0, len(byCat))
	for _, cat := range CategoryOrder {
		if svcs, ok := byCat[cat]; ok {
			groups = append(groups, ServiceGroup{
				Category: cat,
				Name:     cat.DisplayName(),
				Services: svcs,
			})
		}
	}
	return groups
}
