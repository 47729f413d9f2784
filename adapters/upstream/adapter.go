// Package upstream is the direct client for the cloud provider's admin
// API. It is the fallback catalog source when the warm cache misses:
// each resource is fetched separately, wrapped in a {data: [...]}
// envelope, and normalized on the way in.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Sudheer128/cloud4india-sub003/core/catalog"
	apperrors "github.com/Sudheer128/cloud4india-sub003/internal/errors"
)

const defaultTimeout = 15 * time.Second

// Config holds the upstream connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Adapter implements the direct catalog source against the admin API.
type Adapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// envelope is the admin API's standard list response.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func New(cfg Config, logger *zap.Logger) *Adapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// fetchList GETs endpoint and decodes the {data} envelope into out,
// which must be a pointer to a slice of record types.
func (a *Adapter) fetchList(ctx context.Context, endpoint string, out interface{}) error {
	if a.apiKey == "" {
		return apperrors.New(apperrors.TypeConfig, "upstream API key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+endpoint, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.TypeNetwork, "failed to build upstream request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.TypeNetwork, err, "upstream request failed for %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return apperrors.Newf(apperrors.TypeNetwork, "upstream returned %d for %s", resp.StatusCode, endpoint)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperrors.Wrapf(apperrors.TypeParsing, err, "invalid upstream response for %s", endpoint)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.Wrapf(apperrors.TypeParsing, err, "unexpected upstream payload for %s", endpoint)
	}
	return nil
}

func (a *Adapter) Services(ctx context.Context) ([]catalog.Service, error) {
	var recs []catalog.ServiceRecord
	if err := a.fetchList(ctx, "/admin/cloud-provider-services?limit=200", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeServices(recs), nil
}

func (a *Adapter) ServicePlans(ctx context.Context, serviceName, rateCard string, storageCats, planCats map[string]string) ([]catalog.Plan, error) {
	endpoint := fmt.Sprintf(
		"/admin/plans/service/%s?planable_type=RateCard&planable=%s&include=prices&limit=500",
		url.PathEscape(serviceName), url.QueryEscape(rateCard))

	var recs []catalog.PlanRecord
	if err := a.fetchList(ctx, endpoint, &recs); err != nil {
		return nil, err
	}

	plans := make([]catalog.Plan, 0, len(recs))
	for _, rec := range recs {
		if !bool(rec.Status) {
			continue
		}
		plans = append(plans, catalog.NormalizePlan(rec, serviceName, storageCats, planCats))
	}
	return plans, nil
}

func (a *Adapter) RateCards(ctx context.Context) ([]catalog.RateCard, error) {
	var recs []catalog.RateCardRecord
	if err := a.fetchList(ctx, "/admin/rate-cards?limit=100", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeRateCards(recs), nil
}

func (a *Adapter) BillingCycles(ctx context.Context) ([]catalog.BillingCycleInfo, error) {
	var recs []catalog.BillingCycleRecord
	if err := a.fetchList(ctx, "/admin/billing-cycles?limit=100", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeBillingCycles(recs), nil
}

func (a *Adapter) Products(ctx context.Context, rateCard string) ([]catalog.Product, error) {
	endpoint := fmt.Sprintf("/admin/products?planable_type=RateCard&planable=%s&limit=200",
		url.QueryEscape(rateCard))

	var recs []catalog.ProductRecord
	if err := a.fetchList(ctx, endpoint, &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeProducts(recs), nil
}

func (a *Adapter) Licences(ctx context.Context, rateCard string) ([]catalog.Licence, error) {
	endpoint := fmt.Sprintf("/admin/licences?planable_type=RateCard&planable=%s&limit=200",
		url.QueryEscape(rateCard))

	var recs []catalog.LicenceRecord
	if err := a.fetchList(ctx, endpoint, &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeLicences(recs), nil
}

func (a *Adapter) OperatingSystems(ctx context.Context) ([]catalog.OperatingSystem, error) {
	var recs []catalog.OperatingSystemRecord
	if err := a.fetchList(ctx, "/admin/operating-systems?limit=100", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeOperatingSystems(recs), nil
}

func (a *Adapter) Templates(ctx context.Context) ([]catalog.Template, error) {
	var recs []catalog.TemplateRecord
	if err := a.fetchList(ctx, "/admin/templates?limit=200", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeTemplates(recs), nil
}

func (a *Adapter) StorageCategories(ctx context.Context) ([]catalog.StorageCategory, error) {
	var recs []catalog.LookupRecord
	if err := a.fetchList(ctx, "/admin/storage-categories?limit=100", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizeStorageCategories(recs), nil
}

func (a *Adapter) PlanCategories(ctx context.Context) ([]catalog.PlanCategory, error) {
	var recs []catalog.LookupRecord
	if err := a.fetchList(ctx, "/admin/plan-categories?limit=100", &recs); err != nil {
		return nil, err
	}
	return catalog.NormalizePlanCategories(recs), nil
}
