package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docgate/internal/config"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/engine"
	logpkg "github.com/kailas-cloud/docgate/internal/logger"
	"github.com/kailas-cloud/docgate/internal/metrics"
	analyticsrepo "github.com/kailas-cloud/docgate/internal/repository/analytics"
	documentrepo "github.com/kailas-cloud/docgate/internal/repository/document"
	indexrepo "github.com/kailas-cloud/docgate/internal/repository/index"
	searchrepo "github.com/kailas-cloud/docgate/internal/repository/search"
	chiTransport "github.com/kailas-cloud/docgate/internal/transport/chi"
	analyticsuc "github.com/kailas-cloud/docgate/internal/usecase/analytics"
	bulkuc "github.com/kailas-cloud/docgate/internal/usecase/bulk"
	documentuc "github.com/kailas-cloud/docgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docgate/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docgate/internal/usecase/search"
	"github.com/kailas-cloud/docgate/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	engineCfg := cfg.EngineConfig()
	logger.Info("Starting docgate API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_addr", engineCfg.Address()),
		zap.String("index", cfg.Index.Name),
		zap.String("search_index", cfg.Index.SearchIndex),
		zap.String("analytics_index", cfg.Analytics.Index),
	)

	metrics.RegisterEngineMetrics()

	// One shared connection, built on first use.
	provider := engine.NewProvider(engineCfg, nil, logger)
	defer provider.Close()
	store := engine.NewLazy(provider)

	docRepo := documentrepo.New(store, cfg.Bulk.Refresh)
	searchRepo := searchrepo.New(store)
	analyticsRepo := analyticsrepo.New(store)
	indexRepo := indexrepo.New(store)

	docSvc := documentuc.New(docRepo, cfg.Index.Name)
	searchSvc := searchuc.New(searchRepo, cfg.Index.Name, cfg.Index.SearchIndex).
		WithExactField(cfg.Index.ExactField).
		WithDefaultSize(cfg.Index.DefaultPageSize)
	bulkSvc := bulkuc.New(docRepo, cfg.Index.Name).
		WithSeedFile(cfg.Bulk.SeedFile).
		WithMaxBatchSize(cfg.Bulk.MaxBatchSize).
		WithLogger(logger)
	analyticsSvc := analyticsuc.New(analyticsRepo, cfg.Analytics.Index, cfg.AnalyticsFields())
	indexSvc := indexuc.New(indexRepo).WithDefaultShards(cfg.Index.Shards)
	healthSvc := healthuc.New(store, provider)

	if cfg.Index.EnsureOnStart {
		ensureIndex(cfg, store, indexSvc, logger)
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Documents: docSvc,
		Search:    searchSvc,
		Bulk:      bulkSvc,
		Analytics: analyticsSvc,
		Indexes:   indexSvc,
		Health:    healthSvc,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: server.Handler(chiTransport.RouterConfig{
			APIKeys:      cfg.Auth.APIKeys,
			OperatorKeys: cfg.Auth.OperatorKeys,
		}),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// ensureIndex waits for the engine and creates the default index. Failures
// are logged; the API still starts and reports the engine through /health.
func ensureIndex(cfg config.Config, store *engine.Lazy, svc *indexuc.Service, logger *zap.Logger) {
	ctx := context.Background()
	timeout := time.Duration(cfg.Engine.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		logger.Error("Engine not ready, skipping index ensure", zap.Error(err))
		return
	}

	status, err := svc.Ensure(ctx, cfg.Index.Name, mapping.Descriptor{Shards: cfg.Index.Shards})
	if err != nil {
		logger.Error("Failed to ensure index", zap.String("index", cfg.Index.Name), zap.Error(err))
		return
	}
	logger.Info("Index ready", zap.String("index", cfg.Index.Name), zap.String("status", string(status)))
}
