package main

import (
	"fmt"
	"os"

	"go-trade-dashboard/docs"
	"go-trade-dashboard/internal/api"
	"go-trade-dashboard/internal/api/handler"
	"go-trade-dashboard/internal/chart"
	"go-trade-dashboard/internal/config"
	"go-trade-dashboard/internal/logger"
	"go-trade-dashboard/internal/pipeline"
	"go-trade-dashboard/internal/store"
	"go-trade-dashboard/pkg/router"
)

// @title Trade Indicator Dashboard API
// @version 1.0
// @description Indicators, KPIs, charts and downloads for one country's trade indicator file.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		logger.Errorf("❌ %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)
	docs.SwaggerInfo.Title = cfg.Title + " API"

	// Init DB
	if err := store.InitDB(cfg.DBPath); err != nil {
		return err
	}
	defer store.Close()

	svc := pipeline.NewService(cfg.DataFile, cfg.KeyIndicators)
	// a bad file is reported per request, not fatal at startup
	if _, err := svc.Dataset(); err != nil {
		logger.Warnf("⚠️ initial load of %s failed: %v", cfg.DataFile, err)
	}

	h := &handler.DashboardHandler{
		Service:       svc,
		Charts:        chart.NewDispatcher(cfg.ChartKinds),
		Title:         cfg.Title,
		ChartWidthIn:  cfg.ChartWidthIn,
		ChartHeightIn: cfg.ChartHeightIn,
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r, h)

	// Start server
	return r.Start(cfg.HTTPAddr)
}
