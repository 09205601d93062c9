package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"captr/internal/application/user/usecases"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// AuthHandler handles registration, login, and token refresh.
type AuthHandler struct {
	registerUseCase *usecases.RegisterUseCase
	loginUseCase    *usecases.LoginUseCase
	refreshUseCase  *usecases.RefreshTokenUseCase
	logger          logger.Interface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	registerUC *usecases.RegisterUseCase,
	loginUC *usecases.LoginUseCase,
	refreshUC *usecases.RefreshTokenUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		refreshUseCase:  refreshUC,
		logger:          logger,
	}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func toTokenResponse(pair *usecases.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"user":   result.User,
		"tokens": toTokenResponse(result.Tokens),
	})
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"user":   result.User,
		"tokens": toTokenResponse(result.Tokens),
	})
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"tokens": toTokenResponse(result.Tokens),
	})
}
