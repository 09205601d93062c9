package routes

import (
	"github.com/gin-gonic/gin"

	"captr/internal/interfaces/http/handlers"
	"captr/internal/interfaces/http/middleware"
)

// ScanRouteConfig holds dependencies for scan and usage routes.
type ScanRouteConfig struct {
	ScanHandler    *handlers.ScanHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupScanRoutes configures card scanning, image upload and usage routes.
func SetupScanRoutes(engine *gin.Engine, cfg *ScanRouteConfig) {
	api := engine.Group("/api", cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/scan", cfg.ScanHandler.Scan)
		api.POST("/upload", cfg.ScanHandler.Upload)
		api.POST("/scans/record", cfg.ScanHandler.Record)
		api.GET("/usage", cfg.ScanHandler.Usage)
		api.GET("/entitlement", cfg.ScanHandler.Entitlement)
	}
}
