// Package cmd - sync command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sudheer128/cloud4india-sub003/adapters/upstream"
	"github.com/Sudheer128/cloud4india-sub003/adapters/warmcache"
	"github.com/Sudheer128/cloud4india-sub003/core/syncer"
	"github.com/Sudheer128/cloud4india-sub003/internal/config"
	"github.com/Sudheer128/cloud4india-sub003/internal/logging"
)

var syncRateCard string

// syncCmd runs one catalog sync and reports per-resource counts.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the catalog once and print the result",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncRateCard, "rate-card", "r", "", "rate card to sync (default from config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := logging.Logger

	warm := warmcache.New(warmcache.Config{
		BaseURL: cfg.WarmCache.BaseURL,
		Timeout: cfg.WarmCacheTimeout(),
	}, logger)
	direct := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: cfg.UpstreamTimeout(),
	}, logger)

	sync := syncer.New(warm, direct, syncer.Options{
		TTL:             cfg.SyncTTL(),
		PlanWorkers:     cfg.Sync.PlanWorkers,
		DefaultRateCard: cfg.Sync.DefaultRateCard,
		Logger:          logger,
	})

	result := sync.TriggerManualSync(context.Background(), syncRateCard)
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("sync failed: %s", result.Error)
	}
	return nil
}
