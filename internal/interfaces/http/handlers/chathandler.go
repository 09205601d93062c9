package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"captr/internal/application/chat/usecases"
	"captr/internal/interfaces/http/middleware"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// ChatHandler handles the contacts assistant endpoint.
type ChatHandler struct {
	chatUseCase *usecases.ChatUseCase
	logger      logger.Interface
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatUC *usecases.ChatUseCase, logger logger.Interface) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUC,
		logger:      logger,
	}
}

// ChatRequest represents one assistant turn
type ChatRequest struct {
	Message string                 `json:"message" binding:"required"`
	History []usecases.ChatMessage `json:"history" binding:"max=50"`
}

// Chat answers a question about the caller's contacts
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.chatUseCase.Execute(c.Request.Context(), usecases.ChatCommand{
		UserID:  middleware.UserID(c),
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"reply": result.Reply,
	})
}
