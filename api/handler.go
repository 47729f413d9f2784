// Package api exposes the catalog, sync and estimation operations over
// HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sudheer128/cloud4india-sub003/core/cart"
	"github.com/Sudheer128/cloud4india-sub003/core/catalog"
	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
	"github.com/Sudheer128/cloud4india-sub003/core/syncer"
	"github.com/Sudheer128/cloud4india-sub003/internal/response"
)

// Handler holds the handlers' shared dependencies.
type Handler struct {
	sync            *syncer.Synchronizer
	settings        pricing.Settings
	defaultCurrency string
	logger          *zap.Logger
}

func NewHandler(sync *syncer.Synchronizer, settings pricing.Settings, defaultCurrency string, logger *zap.Logger) *Handler {
	if defaultCurrency == "" {
		defaultCurrency = "INR"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sync:            sync,
		settings:        settings,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// engineFor resolves the pricing engine for a request. Pricing settings
// published in the current catalog snapshot are merged over the
// configured base settings; without a snapshot the base settings price
// alone.
func (h *Handler) engineFor(c *gin.Context) *pricing.Engine {
	snap, err := h.sync.GetCatalog(c.Request.Context(), c.Query("rate_card"))
	if err != nil {
		h.logger.Warn("catalog unavailable, pricing with configured settings", zap.Error(err))
	}
	settings := h.settings
	if snap != nil && snap.PricingOverrides != nil {
		settings = settings.Merge(overridesFrom(snap.PricingOverrides))
	}
	return pricing.NewEngine(settings)
}

func overridesFrom(o *catalog.PricingOverrides) pricing.Overrides {
	return pricing.Overrides{
		CurrencyRates:    o.CurrencyRates,
		BillingDiscounts: o.BillingDiscounts,
		GSTRatePercent:   o.GSTRatePercent,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.GET("/health", h.Health)

	api.GET("/catalog", h.GetCatalog)
	api.GET("/catalog/grouped", h.GetGroupedCatalog)
	api.GET("/cycles", h.GetBillingCycles)

	api.GET("/sync-status", h.GetSyncStatus)
	api.POST("/sync", h.TriggerSync)
	api.POST("/cache/clear", h.ClearCache)

	api.POST("/estimate", h.Estimate)
	api.POST("/share", h.EncodeShare)
	api.GET("/share/:token", h.DecodeShare)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetCatalog returns the current snapshot, syncing first if stale.
func (h *Handler) GetCatalog(c *gin.Context) {
	rateCard := c.Query("rate_card")

	snap, err := h.sync.GetCatalog(c.Request.Context(), rateCard)
	if err != nil {
		// A stale or empty snapshot still renders; the error only
		// signals that this response may be out of date.
		h.logger.Warn("serving degraded catalog", zap.Error(err))
	}
	if snap.Empty() {
		response.Error(c, http.StatusServiceUnavailable, "catalog unavailable", err)
		return
	}
	response.Success(c, http.StatusOK, "catalog retrieved", snap)
}

// GetGroupedCatalog returns services bucketed by category.
func (h *Handler) GetGroupedCatalog(c *gin.Context) {
	snap, err := h.sync.GetCatalog(c.Request.Context(), c.Query("rate_card"))
	if err != nil {
		h.logger.Warn("serving degraded catalog", zap.Error(err))
	}
	if snap.Empty() {
		response.Error(c, http.StatusServiceUnavailable, "catalog unavailable", err)
		return
	}
	response.Success(c, http.StatusOK, "catalog retrieved", gin.H{
		"rate_card":  snap.RateCard,
		"groups":     snap.GroupedByCategory(),
		"fetched_at": snap.FetchedAt,
	})
}

// GetBillingCycles returns the pricing engine's cycle table.
func (h *Handler) GetBillingCycles(c *gin.Context) {
	response.Success(c, http.StatusOK, "billing cycles retrieved", h.engineFor(c).Cycles())
}

func (h *Handler) GetSyncStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, "sync status retrieved", h.sync.GetSyncState())
}

// TriggerSync forces a refresh. A sync already in progress is reported
// as a conflict, not queued.
func (h *Handler) TriggerSync(c *gin.Context) {
	result := h.sync.TriggerManualSync(c.Request.Context(), c.Query("rate_card"))
	if !result.Success {
		status := http.StatusBadGateway
		if result.Error == "sync already in progress" {
			status = http.StatusConflict
		}
		c.JSON(status, response.Response{
			Success: false,
			Message: "sync failed",
			Error:   result.Error,
			Data:    result,
		})
		return
	}
	response.Success(c, http.StatusOK, "sync completed", result)
}

func (h *Handler) ClearCache(c *gin.Context) {
	h.sync.ClearCache(c.Request.Context())
	response.Success(c, http.StatusOK, "cache cleared", nil)
}

// EstimateRequest carries cart lines plus the cycle and currency to
// price them in.
type EstimateRequest struct {
	Items    []cart.Item `json:"items" binding:"required"`
	Cycle    string      `json:"billing_cycle"`
	Currency string      `json:"currency"`
}

// Estimate prices the submitted cart lines: cycle multipliers and
// discounts, GST, currency conversion and display formatting.
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid estimate request", err)
		return
	}

	basket := cart.New()
	for _, item := range req.Items {
		basket.AddItem(item)
	}

	cycle := pricing.CycleID(req.Cycle)
	if cycle == "" {
		cycle = pricing.CycleMonthly
	}
	currency := req.Currency
	if currency == "" {
		currency = h.defaultCurrency
	}

	est := cart.ComputeEstimate(basket, h.engineFor(c), cycle, currency)
	response.Success(c, http.StatusOK, "estimate computed", est)
}

// EncodeShare turns cart lines into a URL-safe share token.
func (h *Handler) EncodeShare(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid share request", err)
		return
	}

	basket := cart.New()
	for _, item := range req.Items {
		basket.AddItem(item)
	}

	cycle := pricing.CycleID(req.Cycle)
	if cycle == "" {
		cycle = pricing.CycleMonthly
	}

	token, err := cart.EncodeShareable(basket, cycle)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to encode share token", err)
		return
	}
	response.Success(c, http.StatusOK, "share token created", gin.H{"token": token})
}

// DecodeShare expands a share token back into its line projection.
func (h *Handler) DecodeShare(c *gin.Context) {
	items, err := cart.DecodeShareable(c.Param("token"))
	if err != nil {
		response.ValidationError(c, "invalid share token", err)
		return
	}
	response.Success(c, http.StatusOK, "share token decoded", gin.H{"items": items})
}
