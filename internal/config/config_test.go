package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Sync.DefaultRateCard)
	assert.Equal(t, 5*time.Minute, cfg.SyncTTL())
	assert.Equal(t, "INR", cfg.Pricing.DefaultCurrency)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Sync.TTLSeconds = 60
	cfg.HTTP.Port = 9000
	require.NoError(t, cfg.Save(path))

	t.Setenv("SYNC_TTL_SECONDS", "120")
	t.Setenv("CLOUD4INDIA_API_KEY", "from-env")

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, loaded.HTTP.Port)             // from file
	assert.Equal(t, 120, loaded.Sync.TTLSeconds)        // env beats file
	assert.Equal(t, "from-env", loaded.Upstream.APIKey) // env only
}

func TestPricingSettings(t *testing.T) {
	gst := 12.0
	cfg := Default()
	cfg.Pricing.Overrides.GSTRatePercent = &gst
	cfg.Pricing.Overrides.CurrencyRates = map[string]float64{"USD": 0.010}

	settings := cfg.PricingSettings()
	assert.Equal(t, "12", settings.GSTRatePercent.String())
	assert.Equal(t, "0.01", settings.CurrencyRates["USD"].String())
	// Untouched defaults survive the merge.
	assert.Equal(t, "1", settings.CurrencyRates["INR"].String())
}
