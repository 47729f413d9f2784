package catalog

// Wire-level record shapes shared by the direct upstream API and the warm
// cache aggregate document. Every field uses parse-or-default coercion so
// one malformed record never fails a whole resource fetch.

// ServiceRecord is an upstream service row.
type ServiceRecord struct {
	ID           FlexID   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Status       FlexBool `json:"status"`
	Category     string   `json:"category"`
	CategoryName string   `json:"category_name"`
	BillingRule  string   `json:"billing_rule"`
	Config       Attrs    `json:"config"`
	PlanCount    FlexInt  `json:"plan_count"`
}

// PriceRecord is one price row attached to a plan, product or licence.
// The direct API calls the value "amount"; licences use "price".
type PriceRecord struct {
	Amount       FlexDecimal `json:"amount"`
	Price        FlexDecimal `json:"price"`
	BillingCycle struct {
		Slug string `json:"slug"`
	} `json:"billing_cycle"`
}

// PlanRecord is an upstream plan row. The direct API nests resource
// attributes under "attribute"; the warm cache flattens them to columns.
type PlanRecord struct {
	ID                  FlexID        `json:"id"`
	Name                string        `json:"name"`
	Slug                string        `json:"slug"`
	ServiceName         string        `json:"service_name"`
	Status              FlexBool      `json:"status"`
	CPU                 FlexInt       `json:"cpu"`
	Memory              FlexInt       `json:"memory"`
	Storage             FlexInt       `json:"storage"`
	Size                FlexInt       `json:"size"`
	Bandwidth           FlexInt       `json:"bandwidth"`
	BucketLimit         FlexInt       `json:"bucket_limit"`
	NetworkRate         FlexInt       `json:"network_rate"`
	DataTransferOut     FlexInt       `json:"data_transfer_out"`
	HourlyPrice         FlexDecimal   `json:"hourly_price"`
	MonthlyPrice        FlexDecimal   `json:"monthly_price"`
	YearlyPrice         FlexDecimal   `json:"yearly_price"`
	PlanCategoryID      FlexID        `json:"plan_category_id"`
	PlanCategoryName    string        `json:"plan_category_name"`
	StorageCategoryID   FlexID        `json:"storage_category_id"`
	StorageCategoryName string        `json:"storage_category_name"`
	Attribute           Attrs         `json:"attribute"`
	Prices              []PriceRecord `json:"prices"`
}

// RateCardRecord is an upstream rate card row.
type RateCardRecord struct {
	ID          FlexID   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Status      FlexBool `json:"status"`
	Default     FlexBool `json:"default"`
	IsDefault   FlexBool `json:"is_default"`
	CardType    string   `json:"card_type"`
}

// BillingCycleRecord is an upstream billing cycle row.
type BillingCycleRecord struct {
	ID          FlexID   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Duration    FlexInt  `json:"duration"`
	Unit        string   `json:"unit"`
	Enabled     FlexBool `json:"is_enabled"`
	SortOrder   FlexInt  `json:"sort_order"`
}

// ProductRecord is an upstream product row.
type ProductRecord struct {
	ID           FlexID        `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Status       *FlexBool     `json:"status"`
	MonthlyPrice FlexDecimal   `json:"monthly_price"`
	Prices       []PriceRecord `json:"prices"`
}

// LicenceRecord is an upstream licence row.
type LicenceRecord struct {
	ID           FlexID        `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	PricingUnit  string        `json:"pricing_unit"`
	Status       *FlexBool     `json:"status"`
	MonthlyPrice FlexDecimal   `json:"monthly_price"`
	Prices       []PriceRecord `json:"prices"`
}

// OperatingSystemRecord is an upstream operating system row.
type OperatingSystemRecord struct {
	ID     FlexID    `json:"id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
	Status *FlexBool `json:"status"`
}

// TemplateRecord is an upstream template row.
type TemplateRecord struct {
	ID                     FlexID   `json:"id"`
	Name                   string   `json:"name"`
	Slug                   string   `json:"slug"`
	OSType                 string   `json:"os_type"`
	ImageType              string   `json:"image_type"`
	FileType               string   `json:"file_type"`
	OperatingSystemID      FlexID   `json:"operating_system_id"`
	OperatingSystem        Attrs    `json:"operating_system"`
	OperatingSystemVersion string   `json:"operating_system_version"`
	IconURL                string   `json:"icon_url"`
	Status                 FlexBool `json:"status"`
}

// LookupRecord is a generic category lookup row (storage and plan
// categories share the shape).
type LookupRecord struct {
	ID        FlexID    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ShortName string    `json:"short_name"`
	Status    *FlexBool `json:"status"`
	SortOrder FlexInt   `json:"sort_order"`
}

// AggregateDocument mirrors the warm cache's single read endpoint: the
// whole catalog pre-aggregated in one JSON document. An empty or absent
// services list is a cache miss.
type AggregateDocument struct {
	Services          []ServiceRecord         `json:"services"`
	PlansByService    map[string][]PlanRecord `json:"plansByService"`
	RateCards         []RateCardRecord        `json:"rateCards"`
	BillingCycles     []BillingCycleRecord    `json:"billingCycles"`
	Products          []ProductRecord         `json:"products"`
	Licences          []LicenceRecord         `json:"licences"`
	OperatingSystems  []OperatingSystemRecord `json:"operatingSystems"`
	Templates         []TemplateRecord        `json:"templates"`
	StorageCategories []LookupRecord          `json:"storageCategories"`
	PlanCategories    []LookupRecord          `json:"planCategories"`
	PricingSettings   *PricingOverrides       `json:"pricingSettings"`
}
