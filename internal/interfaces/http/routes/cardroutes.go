package routes

import (
	"github.com/gin-gonic/gin"

	"captr/internal/interfaces/http/handlers"
	"captr/internal/interfaces/http/middleware"
)

// CardRouteConfig holds dependencies for card routes.
type CardRouteConfig struct {
	CardHandler    *handlers.CardHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupCardRoutes configures contact card routes.
func SetupCardRoutes(engine *gin.Engine, cfg *CardRouteConfig) {
	cards := engine.Group("/api/cards", cfg.AuthMiddleware.RequireAuth())
	{
		cards.POST("", cfg.CardHandler.Save)
		cards.GET("", cfg.CardHandler.List)
		cards.GET("/:id", cfg.CardHandler.Get)
		cards.PUT("/:id", cfg.CardHandler.Update)
		cards.DELETE("/:id", cfg.CardHandler.Delete)
	}

	engine.GET("/api/export", cfg.AuthMiddleware.RequireAuth(), cfg.CardHandler.Export)
}
