// Package warmcache reads the pre-aggregated catalog document from the
// CMS cache endpoint. One round trip returns the whole catalog; an
// empty services list means the cache has nothing usable yet.
package warmcache

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Sudheer128/cloud4india-sub003/core/catalog"
	apperrors "github.com/Sudheer128/cloud4india-sub003/internal/errors"
)

const (
	dataPath       = "/api/cloud-pricing/data"
	defaultTimeout = 10 * time.Second
)

// Config holds the warm cache connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Adapter fetches the aggregate catalog document.
type Adapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
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
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// FetchAggregate GETs the aggregate document. Callers treat a document
// without services as a cache miss; this method only reports transport
// and decoding failures.
func (a *Adapter) FetchAggregate(ctx context.Context) (*catalog.AggregateDocument, error) {
	if a.baseURL == "" {
		return nil, apperrors.New(apperrors.TypeConfig, "warm cache URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+dataPath, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeNetwork, "failed to build warm cache request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeNetwork, "warm cache request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, apperrors.Newf(apperrors.TypeNetwork, "warm cache returned %d", resp.StatusCode)
	}

	var doc catalog.AggregateDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.TypeParsing, "invalid warm cache document", err)
	}

	a.logger.Debug("fetched warm cache document",
		zap.Int("services", len(doc.Services)))
	return &doc, nil
}
