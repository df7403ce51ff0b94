package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stwalsh4118/estate/api/internal/config"
	"github.com/stwalsh4118/estate/api/internal/handlers"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/middleware"
	"github.com/stwalsh4118/estate/api/internal/services"
)

type routerDeps struct {
	cfg         *config.Config
	log         *logger.Logger
	metrics     *metrics.Metrics
	catalog     services.CatalogService
	calculators services.CalculatorService
	health      *handlers.HealthHandler
}

// newRouter assembles middleware and routes.
func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> Metrics -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(d.log))
	router.Use(middleware.Recovery(d.log))
	router.Use(middleware.Metrics(d.metrics))
	router.Use(middleware.CORS(d.cfg.CORS.Origins))

	// Register health check routes
	router.GET("/health", d.health.Health)
	router.GET("/health/ready", d.health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	catalogHandler := handlers.NewCatalogHandler(d.catalog, d.cfg.Catalog)
	calculatorHandler := handlers.NewCalculatorHandler(d.calculators)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", d.health.Info)

		catalog := v1.Group("/catalog/:kind")
		{
			catalog.GET("/items", catalogHandler.Items)
			catalog.GET("/facets", catalogHandler.Facets)
		}

		calculators := v1.Group("/calculators")
		{
			calculators.POST("/roi", calculatorHandler.ROI)
			calculators.POST("/mortgage", calculatorHandler.Mortgage)
			calculators.POST("/mortgage/schedule", calculatorHandler.MortgageSchedule)
			calculators.POST("/rental-yield", calculatorHandler.RentalYield)
		}
	}

	return router
}
