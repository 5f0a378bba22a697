package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"evol-jewels-io/stylist/internal"
	"evol-jewels-io/stylist/internal/common"
	"evol-jewels-io/stylist/internal/config"
	"evol-jewels-io/stylist/internal/container"
	"evol-jewels-io/stylist/internal/routers"
	"evol-jewels-io/stylist/pkg/indexer"
	"evol-jewels-io/stylist/pkg/services"
	"evol-jewels-io/stylist/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		util.Logger().Fatal().Err(err).Msg("failed to load config")
	}
	util.InitLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := util.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		util.Logger().Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.DBName)

	rdb, err := util.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		util.Logger().Fatal().Err(err).Msg("failed to connect to redis")
	}

	sc, err := container.NewServiceContainer(ctx, cfg, db, rdb)
	if err != nil {
		util.Logger().Fatal().Err(err).Msg("failed to build services")
	}

	startup(ctx, sc)

	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		go internal.SubscribeCacheMessages(ctx, rdb, func(m internal.CacheMessage) {
			if m.Type == internal.CacheInvalidateCatalog {
				sc.CatalogService.InvalidateLocal()
			}
		})
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routers.InitRoute(sc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		util.Logger().Info().Str("addr", srv.Addr).Msg("stylist API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			util.Logger().Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.LogError("graceful shutdown failed", err)
	}
}

// startup ensures indexes exist and seeds an empty catalog. Failures are logged, not fatal.
func startup(ctx context.Context, sc *container.ServiceContainer) {
	ctx, cancel := context.WithTimeout(ctx, common.STARTUP_TIMEOUT_SECS)
	defer cancel()

	manager := indexer.NewManager(sc.Database, indexer.DefaultOptions()).LoadFromDefinitions(indexer.StylistIndexes())
	if _, err := manager.Create(ctx); err != nil {
		util.LogError("index creation completed with errors", err)
	}

	if !sc.Config.SeedCatalog {
		return
	}
	if _, err := services.SeedProductsIfNeeded(ctx, sc.CatalogService, sc.Table); err != nil {
		util.LogError("failed to seed catalog", err)
	}
}
