// Package server wires configuration, storage and handlers into a gin engine.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arnavshah/staffing-api-go/pkg/auth"
	"github.com/arnavshah/staffing-api-go/pkg/config"
	"github.com/arnavshah/staffing-api-go/pkg/database"
	"github.com/arnavshah/staffing-api-go/pkg/handlers"
	"github.com/arnavshah/staffing-api-go/pkg/metrics"
	"github.com/arnavshah/staffing-api-go/pkg/storage"
)

// Version is reported by the banner route
const Version = "3.0.0"

// NewHandler opens the database, seeds the admin account and builds the
// handler dependencies described by cfg. Metrics are registered on reg.
func NewHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*handlers.Handler, error) {
	db, err := database.InitDB(database.Config{URL: cfg.DatabaseURL, Path: cfg.DataPath})
	if err != nil {
		return nil, err
	}

	authn := auth.New(cfg.JWTSecret, cfg.APIMasterSecret)
	created, err := authn.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Info("default admin user created", "username", cfg.AdminUsername)
	}

	recorder, err := metrics.NewPrometheus(reg, "scheduler")
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	h := &handlers.Handler{
		DB:      db,
		Auth:    authn,
		Logger:  logger,
		Metrics: recorder,
		Limits: handlers.SolverLimits{
			MaxSteps: cfg.SolverMaxSteps,
			Timeout:  cfg.SolverTimeout,
		},
	}

	if cfg.Export.Enabled() {
		exporter, err := storage.New(ctx, storage.Config{
			Bucket:    cfg.Export.Bucket,
			Region:    cfg.Export.Region,
			Endpoint:  cfg.Export.Endpoint,
			PathStyle: cfg.Export.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("schedule export: %w", err)
		}
		h.Exporter = exporter
		logger.Info("schedule export enabled", "bucket", cfg.Export.Bucket)
	}
	return h, nil
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *handlers.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Staffing Scheduler API",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.GET("/runs", h.ListRuns)
	}

	// Scheduler Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/schedule", h.ScheduleJSON)
		api.POST("/schedule/csv", h.ScheduleCSV)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
		api.GET("/runs/:id", h.GetRun)
	}

	// Unversioned aliases kept for older clients
	r.POST("/schedule/json", h.APIKeyMiddleware(), h.ScheduleJSON)
	r.POST("/schedule/csv", h.APIKeyMiddleware(), h.ScheduleCSV)

	return r
}
