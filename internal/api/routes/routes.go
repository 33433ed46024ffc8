package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/andchir/install-scripts/internal/api/handlers"
	"github.com/andchir/install-scripts/internal/catalog"
	"github.com/andchir/install-scripts/internal/config"
	"github.com/andchir/install-scripts/internal/metrics"
	"github.com/andchir/install-scripts/internal/models"
	"github.com/andchir/install-scripts/internal/services"
)

// Register wires up API routes and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) (*services.RunService, error) {
	if err := db.AutoMigrate(&models.ScriptRun{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	store := catalog.NewStore(cfg.DataDir, cfg.DefaultLang)
	catalogHandler := handlers.NewCatalogHandler(store)

	notifier := services.NewNotificationService(cfg.NotifyURLs)
	runService := services.NewRunService(db, notifier)
	runHandler := handlers.NewRunHandler(runService)

	router.GET("/", catalogHandler.Index)
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")
	api.GET("/scripts_list", catalogHandler.ScriptsList)
	api.GET("/script/:script_name", catalogHandler.GetScript)

	api.POST("/runs", runHandler.CreateRun)
	api.GET("/runs", runHandler.ListRuns)
	api.GET("/runs/:id", runHandler.GetRun)
	api.POST("/runs/:id/output", runHandler.AppendOutput)

	return runService, nil
}
