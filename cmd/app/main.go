package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mirae-dev/ShoreBot_Go/internal/account"
	"github.com/mirae-dev/ShoreBot_Go/internal/admin"
	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/config"
	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/database"
	"github.com/mirae-dev/ShoreBot_Go/internal/database/postgres"
	"github.com/mirae-dev/ShoreBot_Go/internal/inventory"
	"github.com/mirae-dev/ShoreBot_Go/internal/market"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
	"github.com/mirae-dev/ShoreBot_Go/internal/server"
	"github.com/mirae-dev/ShoreBot_Go/internal/trade"
)

const (
	poolMaxIdleTime  = 30 * time.Minute
	poolMaxLifetime  = time.Hour
	shutdownTimeout  = 10 * time.Second
	catalogCacheSize = 1024
	catalogCacheTTL  = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, poolMaxIdleTime, poolMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepository(dbPool)
	inventoryRepo := postgres.NewInventoryRepository(dbPool)
	catalogRepo := postgres.NewCatalogRepository(dbPool)
	marketRepo := postgres.NewMarketRepository(dbPool)

	// Services
	catalogSvc := catalog.NewService(catalogRepo, catalog.CacheConfig{
		Size: catalogCacheSize,
		TTL:  catalogCacheTTL,
	})
	accountSvc := account.NewService(accountRepo, account.Config{
		StartingGrant: cfg.StartingGrant,
	})
	inventorySvc := inventory.NewService(inventoryRepo, catalogSvc, accountSvc)
	cooldownSvc := cooldown.NewPostgresService(dbPool, cooldown.Config{
		BypassUsers: toSet(cfg.CooldownBypassUsers),
	})
	rewardSvc := reward.NewService(accountSvc, inventorySvc, catalogSvc, cooldownSvc, reward.Config{
		DailyReward:   cfg.DailyReward,
		WeeklyReward:  cfg.WeeklyReward,
		SurfMin:       cfg.SurfRewardMin,
		SurfMax:       cfg.SurfRewardMax,
		ExploreMin:    cfg.ExploreRewardMin,
		ExploreMax:    cfg.ExploreRewardMax,
		BoosterReward: cfg.BoosterReward,
		BoosterCards:  cfg.BoosterCards,
		BonanzaReward: cfg.BonanzaReward,
		BonanzaCards:  cfg.BonanzaCards,
		RarityWeights: cfg.RarityWeights,
		BoosterUsers:  toSet(cfg.BoosterUsers),
	})
	marketSvc := market.NewService(marketRepo, catalogSvc, market.Config{})
	tradeSvc := trade.NewService(inventoryRepo, catalogSvc, trade.Config{
		OfferTTL: cfg.TradeTTL,
	})
	adminSvc := admin.NewService(cfg.LockdownWhitelist)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Account:   accountSvc,
		Inventory: inventorySvc,
		Catalog:   catalogSvc,
		Reward:    rewardSvc,
		Market:    marketSvc,
		Trade:     tradeSvc,
		Cooldown:  cooldownSvc,
		Admin:     adminSvc,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop accepting requests first, then retire the trade sweeper
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
	}
	if err := tradeSvc.Shutdown(ctx); err != nil {
		slog.Error("Trade service shutdown failed", "error", err)
	}

	slog.Info("Shutdown complete")
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}
