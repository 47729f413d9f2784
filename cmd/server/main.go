// Package main is the entry point for the catalog pricing API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sudheer128/cloud4india-sub003/adapters/upstream"
	"github.com/Sudheer128/cloud4india-sub003/adapters/warmcache"
	"github.com/Sudheer128/cloud4india-sub003/api"
	"github.com/Sudheer128/cloud4india-sub003/core/syncer"
	"github.com/Sudheer128/cloud4india-sub003/internal/config"
	"github.com/Sudheer128/cloud4india-sub003/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	// .env is optional; environment wins over file values either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()
	logger := logging.Logger

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, continuing without snapshot tier", zap.Error(err))
			rdb = nil
		}
	}

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
		Redis:           rdb,
		Logger:          logger,
	})

	handler := api.NewHandler(sync, cfg.PricingSettings(), cfg.Pricing.DefaultCurrency, logger)
	server := api.NewServer(cfg.HTTP, handler, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
