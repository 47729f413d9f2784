package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// yearlyDiscount is the derivation factor applied when upstream supplies
// no explicit yearly price: yearly = monthly * 12 * 0.9.
var yearlyDiscount = decimal.NewFromFloat(0.9)

var twelve = decimal.NewFromInt(12)

// defaultStorageCategoryName backstops plans whose storage category id is
// not present in the lookup table.
const defaultStorageCategoryName = "NVMe"

// Slugify derives a slug from a display name.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// NormalizeService turns an upstream service row into a Service. The
// category comes from the record when present, else from the classifier.
func NormalizeService(rec ServiceRecord) Service {
	category := Category(rec.Category)
	if category == "" {
		category = Classify(rec.Name, rec.Slug)
	}

	slug := rec.Slug
	if slug == "" {
		slug = Slugify(rec.Name)
	}

	categoryName := rec.CategoryName
	if categoryName == "" {
		categoryName = category.DisplayName()
	}

	return Service{
		ID:           rec.ID.String(),
		Name:         rec.Name,
		Slug:         slug,
		Status:       bool(rec.Status),
		Category:     category,
		CategoryName: categoryName,
		BillingRule:  rec.BillingRule,
		Config:       rec.Config,
		PlanCount:    int(rec.PlanCount),
	}
}

// NormalizeServices dedupes service rows by name and returns them sorted
// by name. Rows without a usable name are dropped.
func NormalizeServices(recs []ServiceRecord) []Service {
	seen := make(map[string]bool, len(recs))
	services := make([]Service, 0, len(recs))
	for _, rec := range recs {
		if rec.Name == "" || seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true
		services = append(services, NormalizeService(rec))
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services
}

// NormalizePrices flattens upstream price rows.
func NormalizePrices(recs []PriceRecord) []PriceRow {
	if len(recs) == 0 {
		return nil
	}
	rows := make([]PriceRow, 0, len(recs))
	for _, p := range recs {
		amount := p.Amount.Decimal()
		if amount.IsZero() {
			amount = p.Price.Decimal()
		}
		rows = append(rows, PriceRow{Amount: amount, BillingCycle: p.BillingCycle.Slug})
	}
	return rows
}

// yearlyPrice returns the upstream yearly price when one exists, else
// derives it from the monthly baseline.
func yearlyPrice(rec PlanRecord, monthly decimal.Decimal) decimal.Decimal {
	for _, p := range rec.Prices {
		if p.BillingCycle.Slug == "yearly" && !p.Amount.Decimal().IsZero() {
			return p.Amount.Decimal()
		}
	}
	return monthly.Mul(twelve).Mul(yearlyDiscount)
}

// NormalizePlan turns a direct-API plan row into a Plan, merging category
// names from the lookup maps and filling resource attributes with the
// original fallback chain (storage <-> size <-> leading int of the name,
// bandwidth <-> data_transfer_out, cpu <-> formatted_cpu).
func NormalizePlan(rec PlanRecord, serviceName string, storageCats, planCats map[string]string) Plan {
	attr := rec.Attribute
	if attr == nil {
		attr = Attrs{}
	}

	storageCategoryName := storageCats[rec.StorageCategoryID.String()]
	if storageCategoryName == "" {
		storageCategoryName = defaultStorageCategoryName
	}

	monthly := rec.MonthlyPrice.Decimal()

	return Plan{
		ID:                  rec.ID.String(),
		Name:                rec.Name,
		Slug:                rec.Slug,
		ServiceName:         serviceName,
		Status:              bool(rec.Status),
		CPU:                 attr.Int("cpu", "formatted_cpu"),
		Memory:              attr.Int("memory"),
		Storage:             firstInt(attr.Int("storage", "size"), leadingInt(rec.Name)),
		Size:                firstInt(attr.Int("size", "storage"), leadingInt(rec.Name)),
		Bandwidth:           attr.Int("bandwidth", "data_transfer_out"),
		BucketLimit:         attr.Int("bucket_limit"),
		NetworkRate:         attr.Int("network_rate"),
		DataTransferOut:     attr.Int("data_transfer_out"),
		HourlyPrice:         rec.HourlyPrice.Decimal(),
		MonthlyPrice:        monthly,
		YearlyPrice:         yearlyPrice(rec, monthly),
		PlanCategoryID:      rec.PlanCategoryID.String(),
		PlanCategoryName:    planCats[rec.PlanCategoryID.String()],
		StorageCategoryID:   rec.StorageCategoryID.String(),
		StorageCategoryName: storageCategoryName,
		Attribute:           attr,
		Prices:              NormalizePrices(rec.Prices),
	}
}

// NormalizeCachedPlan turns a warm-cache plan row into a Plan. The warm
// cache already flattened the attribute columns; they are trusted
// verbatim, including the stored yearly price.
func NormalizeCachedPlan(rec PlanRecord, serviceName string) Plan {
	if serviceName == "" {
		serviceName = rec.ServiceName
	}
	yearly := rec.YearlyPrice.Decimal()
	monthly := rec.MonthlyPrice.Decimal()
	if yearly.IsZero() {
		yearly = yearlyPrice(rec, monthly)
	}
	return Plan{
		ID:                  rec.ID.String(),
		Name:                rec.Name,
		Slug:                rec.Slug,
		ServiceName:         serviceName,
		Status:              bool(rec.Status),
		CPU:                 int64(rec.CPU),
		Memory:              int64(rec.Memory),
		Storage:             int64(rec.Storage),
		Size:                int64(rec.Size),
		Bandwidth:           int64(rec.Bandwidth),
		BucketLimit:         int64(rec.BucketLimit),
		NetworkRate:         int64(rec.NetworkRate),
		DataTransferOut:     int64(rec.DataTransferOut),
		HourlyPrice:         rec.HourlyPrice.Decimal(),
		MonthlyPrice:        monthly,
		YearlyPrice:         yearly,
		PlanCategoryID:      rec.PlanCategoryID.String(),
		PlanCategoryName:    rec.PlanCategoryName,
		StorageCategoryID:   rec.StorageCategoryID.String(),
		StorageCategoryName: rec.StorageCategoryName,
		Attribute:           rec.Attribute,
		Prices:              NormalizePrices(rec.Prices),
	}
}

// NormalizeRateCards keeps active rate cards.
func NormalizeRateCards(recs []RateCardRecord) []RateCard {
	cards := make([]RateCard, 0, len(recs))
	for _, rec := range recs {
		if !bool(rec.Status) {
			continue
		}
		cards = append(cards, RateCard{
			ID:          rec.ID.String(),
			Name:        rec.Name,
			Slug:        rec.Slug,
			Description: rec.Description,
			Status:      true,
			Default:     bool(rec.Default) || bool(rec.IsDefault),
			CardType:    rec.CardType,
		})
	}
	return cards
}

// NormalizeBillingCycles keeps all cycles sorted by sort order.
func NormalizeBillingCycles(recs []BillingCycleRecord) []BillingCycleInfo {
	cycles := make([]BillingCycleInfo, 0, len(recs))
	for _, rec := range recs {
		cycles = append(cycles, BillingCycleInfo{
			ID:          rec.ID.String(),
			Name:        rec.Name,
			Slug:        rec.Slug,
			Description: rec.Description,
			Duration:    int64(rec.Duration),
			Unit:        rec.Unit,
			Enabled:     bool(rec.Enabled),
			SortOrder:   int64(rec.SortOrder),
		})
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].SortOrder < cycles[j].SortOrder })
	return cycles
}

// NormalizeProducts keeps non-disabled products. The monthly price is the
// monthly-cycle price row, else the second row, else the first, else the
// flattened column, else zero.
func NormalizeProducts(recs []ProductRecord) []Product {
	products := make([]Product, 0, len(recs))
	for _, rec := range recs {
		if rec.Status != nil && !bool(*rec.Status) {
			continue
		}
		monthly := rec.MonthlyPrice.Decimal()
		if m, ok := monthlyFromPrices(rec.Prices); ok {
			monthly = m
		}
		products = append(products, Product{
			ID:           rec.ID.String(),
			Name:         rec.Name,
			Slug:         rec.Slug,
			Description:  rec.Description,
			Status:       rec.Status == nil || bool(*rec.Status),
			MonthlyPrice: monthly,
			Prices:       NormalizePrices(rec.Prices),
		})
	}
	return products
}

func monthlyFromPrices(prices []PriceRecord) (decimal.Decimal, bool) {
	if len(prices) == 0 {
		return decimal.Zero, false
	}
	for _, p := range prices {
		if p.BillingCycle.Slug == "monthly" {
			return p.Amount.Decimal(), true
		}
	}
	if len(prices) > 1 {
		return prices[1].Amount.Decimal(), true
	}
	return prices[0].Amount.Decimal(), true
}

// NormalizeLicences keeps non-disabled licences; the monthly price is the
// first price row's "price" value.
func NormalizeLicences(recs []LicenceRecord) []Licence {
	licences := make([]Licence, 0, len(recs))
	for _, rec := range recs {
		if rec.Status != nil && !bool(*rec.Status) {
			continue
		}
		monthly := rec.MonthlyPrice.Decimal()
		if len(rec.Prices) > 0 {
			if p := rec.Prices[0].Price.Decimal(); !p.IsZero() {
				monthly = p
			} else if a := rec.Prices[0].Amount.Decimal(); !a.IsZero() {
				monthly = a
			}
		}
		licences = append(licences, Licence{
			ID:           rec.ID.String(),
			Name:         rec.Name,
			Slug:         rec.Slug,
			PricingUnit:  rec.PricingUnit,
			Status:       rec.Status == nil || bool(*rec.Status),
			MonthlyPrice: monthly,
		})
	}
	return licences
}

// NormalizeOperatingSystems keeps non-disabled operating systems.
func NormalizeOperatingSystems(recs []OperatingSystemRecord) []OperatingSystem {
	out := make([]OperatingSystem, 0, len(recs))
	for _, rec := range recs {
		if rec.Status != nil && !bool(*rec.Status) {
			continue
		}
		out = append(out, OperatingSystem{
			ID:     rec.ID.String(),
			Name:   rec.Name,
			Slug:   rec.Slug,
			Status: rec.Status == nil || bool(*rec.Status),
		})
	}
	return out
}

// NormalizeTemplates keeps all templates.
func NormalizeTemplates(recs []TemplateRecord) []Template {
	out := make([]Template, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Template{
			ID:                     rec.ID.String(),
			Name:                   rec.Name,
			Slug:                   rec.Slug,
			OSType:                 rec.OSType,
			ImageType:              rec.ImageType,
			FileType:               rec.FileType,
			OperatingSystemID:      rec.OperatingSystemID.String(),
			OperatingSystem:        rec.OperatingSystem,
			OperatingSystemVersion: rec.OperatingSystemVersion,
			IconURL:                rec.IconURL,
			Status:                 bool(rec.Status),
		})
	}
	return out
}

// NormalizeStorageCategories keeps non-disabled lookup rows.
func NormalizeStorageCategories(recs []LookupRecord) []StorageCategory {
	out := make([]StorageCategory, 0, len(recs))
	for _, rec := range recs {
		if rec.Status != nil && !bool(*rec.Status) {
			continue
		}
		out = append(out, StorageCategory{
			ID:     rec.ID.String(),
			Name:   rec.Name,
			Slug:   rec.Slug,
			Status: rec.Status == nil || bool(*rec.Status),
		})
	}
	return out
}

// NormalizePlanCategories keeps non-disabled rows sorted by sort order.
func NormalizePlanCategories(recs []LookupRecord) []PlanCategory {
	out := make([]PlanCategory, 0, len(recs))
	for _, rec := range recs {
		if rec.Status != nil && !bool(*rec.Status) {
			continue
		}
		out = append(out, PlanCategory{
			ID:        rec.ID.String(),
			Name:      rec.Name,
			Slug:      rec.Slug,
			ShortName: rec.ShortName,
			Status:    rec.Status == nil || bool(*rec.Status),
			SortOrder: int64(rec.SortOrder),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// LookupNames builds an id -> name map from lookup rows.
func LookupNames(recs []LookupRecord) map[string]string {
	m := make(map[string]string, len(recs))
	for _, rec := range recs {
		m[rec.ID.String()] = rec.Name
	}
	return m
}

// FromAggregate builds a snapshot from the warm cache's aggregate
// document. Warm values are taken verbatim (including stored yearly
// prices); plan counts are recomputed from plansByService.
func FromAggregate(doc *AggregateDocument, rateCard string, now time.Time) *Snapshot {
	services := NormalizeServices(doc.Services)

	plansByService := make(map[string][]Plan, len(doc.PlansByService))
	for serviceName, recs := range doc.PlansByService {
		plans := make([]Plan, 0, len(recs))
		for _, rec := range recs {
			plans = append(plans, NormalizeCachedPlan(rec, serviceName))
		}
		plansByService[serviceName] = plans
	}

	for i := range services {
		if plans, ok := plansByService[services[i].Name]; ok {
			services[i].PlanCount = len(plans)
		}
	}

	return &Snapshot{
		RateCard:          rateCard,
		Services:          services,
		PlansByService:    plansByService,
		RateCards:         NormalizeRateCards(doc.RateCards),
		BillingCycles:     NormalizeBillingCycles(doc.BillingCycles),
		Products:          NormalizeProducts(doc.Products),
		Licences:          NormalizeLicences(doc.Licences),
		OperatingSystems:  NormalizeOperatingSystems(doc.OperatingSystems),
		Templates:         NormalizeTemplates(doc.Templates),
		StorageCategories: NormalizeStorageCategories(doc.StorageCategories),
		PlanCategories:    NormalizePlanCategories(doc.PlanCategories),
		PricingOverrides:  doc.PricingSettings,
		FetchedAt:         now,
	}
}

func firstInt(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
