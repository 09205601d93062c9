package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"captr/internal/infrastructure/auth"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// Context keys set by RequireAuth.
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUserSID = "user_sid"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.VerifyAccessToken(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil || userID == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token subject")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, uint(userID))
		c.Set(ContextKeyUserSID, claims.UserSID)

		c.Next()
	}
}

// UserID extracts the authenticated user's internal ID from the context.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
