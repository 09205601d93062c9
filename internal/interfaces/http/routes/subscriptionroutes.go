package routes

import (
	"github.com/gin-gonic/gin"

	"captr/internal/interfaces/http/handlers"
	"captr/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupSubscriptionRoutes configures payment and subscription routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	sub := engine.Group("/api/subscription", cfg.AuthMiddleware.RequireAuth())
	{
		sub.POST("/order", cfg.SubscriptionHandler.CreateOrder)
		sub.POST("/activate", cfg.SubscriptionHandler.VerifyPayment)
		sub.GET("", cfg.SubscriptionHandler.Get)
	}
}
