package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"captr/internal/application/card/usecases"
	"captr/internal/domain/card"
	"captr/internal/interfaces/http/middleware"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// CardHandler handles contact card CRUD and export.
type CardHandler struct {
	saveUseCase   *usecases.SaveCardUseCase
	getUseCase    *usecases.GetCardUseCase
	listUseCase   *usecases.ListCardsUseCase
	updateUseCase *usecases.UpdateCardUseCase
	deleteUseCase *usecases.DeleteCardUseCase
	exportUseCase *usecases.ExportCardsUseCase
	logger        logger.Interface
}

// NewCardHandler creates a new card handler
func NewCardHandler(
	saveUC *usecases.SaveCardUseCase,
	getUC *usecases.GetCardUseCase,
	listUC *usecases.ListCardsUseCase,
	updateUC *usecases.UpdateCardUseCase,
	deleteUC *usecases.DeleteCardUseCase,
	exportUC *usecases.ExportCardsUseCase,
	logger logger.Interface,
) *CardHandler {
	return &CardHandler{
		saveUseCase:   saveUC,
		getUseCase:    getUC,
		listUseCase:   listUC,
		updateUseCase: updateUC,
		deleteUseCase: deleteUC,
		exportUseCase: exportUC,
		logger:        logger,
	}
}

// SaveCardRequest represents the card creation payload. All contact fields
// are optional strings; force_insert skips duplicate detection.
type SaveCardRequest struct {
	Name          string `json:"name"`
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	FrontImageURL string `json:"front_image_url"`
	BackImageURL  string `json:"back_image_url"`
	RawTextFront  string `json:"raw_text_front"`
	RawTextBack   string `json:"raw_text_back"`
	ForceInsert   bool   `json:"force_insert"`
}

// UpdateCardRequest represents a partial update; absent fields keep their
// stored values.
type UpdateCardRequest struct {
	Name          *string `json:"name"`
	JobTitle      *string `json:"job_title"`
	Company       *string `json:"company"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Website       *string `json:"website"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
	FrontImageURL *string `json:"front_image_url"`
	BackImageURL  *string `json:"back_image_url"`
	RawTextFront  *string `json:"raw_text_front"`
	RawTextBack   *string `json:"raw_text_back"`
}

// Save creates a card, or returns the duplicate as a 409 decision point.
func (h *CardHandler) Save(c *gin.Context) {
	var req SaveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.saveUseCase.Execute(c.Request.Context(), usecases.SaveCardCommand{
		UserID: middleware.UserID(c),
		Fields: card.Fields{
			Name:          req.Name,
			JobTitle:      req.JobTitle,
			Company:       req.Company,
			Email:         req.Email,
			Phone:         req.Phone,
			Website:       req.Website,
			Address:       req.Address,
			Notes:         req.Notes,
			FrontImageURL: req.FrontImageURL,
			BackImageURL:  req.BackImageURL,
			RawTextFront:  req.RawTextFront,
			RawTextBack:   req.RawTextBack,
		},
		ForceInsert: req.ForceInsert,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Duplicate != nil {
		c.JSON(http.StatusConflict, utils.APIResponse{
			Success: false,
			Data: gin.H{
				"duplicate": result.Duplicate,
			},
			Message: "a matching contact already exists; retry with force_insert to save anyway",
		})
		return
	}

	utils.CreatedResponse(c, result.Card)
}

// Get returns one card
func (h *CardHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// List returns the caller's cards, newest first
func (h *CardHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListCardsCommand{
		UserID: middleware.UserID(c),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Update applies a partial update to one card
func (h *CardHandler) Update(c *gin.Context) {
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateCardCommand{
		UserID: middleware.UserID(c),
		SID:    c.Param("id"),
		Patch: card.Patch{
			Name:          req.Name,
			JobTitle:      req.JobTitle,
			Company:       req.Company,
			Email:         req.Email,
			Phone:         req.Phone,
			Website:       req.Website,
			Address:       req.Address,
			Notes:         req.Notes,
			FrontImageURL: req.FrontImageURL,
			BackImageURL:  req.BackImageURL,
			RawTextFront:  req.RawTextFront,
			RawTextBack:   req.RawTextBack,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Delete removes one card
func (h *CardHandler) Delete(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MessageResponse(c, "card deleted")
}

// Export streams the contact collection as a spreadsheet download
func (h *CardHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", usecases.ExportFormatXLSX)

	result, err := h.exportUseCase.Execute(c.Request.Context(), middleware.UserID(c), format)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
