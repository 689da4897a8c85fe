package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-trade-dashboard/internal/api/handler"
	"go-trade-dashboard/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.DashboardHandler) {
	r.GET("/api/v1/about", h.About)
	r.GET("/api/v1/indicators", h.ListIndicators)
	r.GET("/api/v1/years", h.ListYears)
	r.GET("/api/v1/dashboard", h.GetDashboard)
	r.GET("/api/v1/charts/*", h.GetChart)
	r.GET("/api/v1/sparkline", h.GetSparkline)
	r.GET("/api/v1/compare", h.CompareIndicators)
	r.GET("/api/v1/export", h.ExportIndicator)
	r.GET("/api/v1/loads", h.ListLoads)
	r.POST("/api/v1/reload", h.Reload)

	r.Handle("/swagger/", httpSwagger.WrapHandler)
}
