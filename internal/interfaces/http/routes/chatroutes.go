package routes

import (
	"github.com/gin-gonic/gin"

	"captr/internal/interfaces/http/handlers"
	"captr/internal/interfaces/http/middleware"
)

// ChatRouteConfig holds dependencies for the contacts assistant route.
type ChatRouteConfig struct {
	ChatHandler    *handlers.ChatHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupChatRoutes configures the contacts assistant route.
func SetupChatRoutes(engine *gin.Engine, cfg *ChatRouteConfig) {
	engine.POST("/api/chat", cfg.AuthMiddleware.RequireAuth(), cfg.ChatHandler.Chat)
}
