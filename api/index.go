package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arnavshah/staffing-api-go/pkg/config"
	"github.com/arnavshah/staffing-api-go/pkg/logging"
	"github.com/arnavshah/staffing-api-go/pkg/server"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger, _ := logging.New(cfg.LogLevel, "json", os.Stdout)

	h, err := server.NewHandler(context.Background(), cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("could not start", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	r = server.NewRouter(h, prometheus.DefaultGatherer)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
