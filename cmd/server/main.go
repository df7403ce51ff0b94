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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stwalsh4118/estate/api/internal/cache"
	"github.com/stwalsh4118/estate/api/internal/config"
	"github.com/stwalsh4118/estate/api/internal/database"
	"github.com/stwalsh4118/estate/api/internal/handlers"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/repository"
	"github.com/stwalsh4118/estate/api/internal/services"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Estate API", logger.Fields{
		"version":        handlers.APIVersion,
		"environment":    cfg.Server.Env,
		"port":           cfg.Server.Port,
		"catalog_source": cfg.Catalog.Source,
		"cache_enabled":  cfg.Cache.Enabled,
	})

	ctx := context.Background()
	checks := make(map[string]handlers.Pinger)

	// Catalog source
	repo, closeRepo, err := openCatalog(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("Failed to open catalog source", err, logger.Fields{"source": cfg.Catalog.Source})
	}
	defer closeRepo()
	checks["catalog"] = repo

	// Query cache. An unreachable Redis at startup is logged, not fatal: queries bypass the cache.
	var queryCache cache.QueryCache
	if cfg.Cache.Enabled {
		redisCache := cache.NewRedisCache(cfg.Cache)
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("Query cache unreachable at startup", logger.Fields{
				"addr":  cfg.Cache.RedisAddr,
				"error": err.Error(),
			})
		} else {
			log.Info("Query cache connected", logger.Fields{
				"addr": cfg.Cache.RedisAddr,
				"ttl":  cfg.Cache.TTL.String(),
			})
		}
		queryCache = redisCache
		checks["cache"] = redisCache
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	catalogService := services.NewCatalogService(repo, queryCache, m, log, cfg.Catalog.LocaleTag())
	calculatorService := services.NewCalculatorService(m, log)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(routerDeps{
		cfg:         cfg,
		log:         log,
		metrics:     m,
		catalog:     catalogService,
		calculators: calculatorService,
		health:      handlers.NewHealthHandler(checks, cfg.Server.Env, cfg.Catalog.Source),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", logger.Fields{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, logger.Fields{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// openCatalog builds the configured catalog source. The returned func releases it.
func openCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger, reg prometheus.Registerer) (repository.CatalogRepository, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		repo := repository.NewFileCatalogRepository(cfg.Catalog.File)
		if err := repo.Ping(ctx); err != nil {
			return nil, nil, err
		}
		log.Info("Serving catalog from file", logger.Fields{"path": cfg.Catalog.File})
		return repo, func() {}, nil

	default:
		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		metrics.RegisterPool(reg, func() (int32, int32, int32) {
			s := db.Stats()
			return s.Total, s.Idle, s.Acquired
		})

		log.Info("Database connection established", logger.Fields{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.Name,
			"pool_min": cfg.Database.PoolMin,
			"pool_max": cfg.Database.PoolMax,
		})
		return repository.NewPostgresCatalogRepository(db), db.Close, nil
	}
}
