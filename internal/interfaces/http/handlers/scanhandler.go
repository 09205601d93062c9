package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scanusecases "captr/internal/application/scan/usecases"
	usageusecases "captr/internal/application/usage/usecases"
	"captr/internal/interfaces/http/middleware"
	"captr/internal/shared/logger"
	"captr/internal/shared/utils"
)

// ScanHandler handles card scanning, image upload, and usage reads.
type ScanHandler struct {
	scanUseCase   *scanusecases.ScanCardUseCase
	uploadUseCase *scanusecases.UploadImageUseCase
	recordUseCase *usageusecases.RecordScanUseCase
	usageUseCase  *usageusecases.GetUsageUseCase
	logger        logger.Interface
}

// NewScanHandler creates a new scan handler
func NewScanHandler(
	scanUC *scanusecases.ScanCardUseCase,
	uploadUC *scanusecases.UploadImageUseCase,
	recordUC *usageusecases.RecordScanUseCase,
	usageUC *usageusecases.GetUsageUseCase,
	logger logger.Interface,
) *ScanHandler {
	return &ScanHandler{
		scanUseCase:   scanUC,
		uploadUseCase: uploadUC,
		recordUseCase: recordUC,
		usageUseCase:  usageUC,
		logger:        logger,
	}
}

// ScanRequest represents the scan payload: card images as bare base64 or
// data URLs. The back side is optional.
type ScanRequest struct {
	FrontImage string `json:"front_image" binding:"required"`
	BackImage  string `json:"back_image"`
}

// UploadRequest represents the image upload payload
type UploadRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data" binding:"required"`
}

// Scan meters the request against the caller's quota and extracts card
// fields through OCR. Quota exhaustion surfaces as 402.
func (h *ScanHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.scanUseCase.Execute(c.Request.Context(), scanusecases.ScanCardCommand{
		UserID:     middleware.UserID(c),
		FrontImage: req.FrontImage,
		BackImage:  req.BackImage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"card":       result.Card,
		"scans_used": result.ScansUsed,
		"scan_limit": result.ScanLimit,
	})
}

// Upload stores a card image and returns its public URL
func (h *ScanHandler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.uploadUseCase.Execute(c.Request.Context(), scanusecases.UploadImageCommand{
		UserID:     middleware.UserID(c),
		Filename:   req.Filename,
		DataBase64: req.Data,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"url": result.URL,
		"key": result.Key,
	})
}

// Record consumes one scan permit without running OCR. Clients that do
// on-device extraction call this before scanning.
func (h *ScanHandler) Record(c *gin.Context) {
	result, err := h.recordUseCase.Execute(c.Request.Context(), usageusecases.RecordScanCommand{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"scans_used": result.Count,
		"scan_limit": result.Limit,
		"unlimited":  result.Unlimited,
		"plan":       result.Plan,
	})
}

// Entitlement returns the caller's effective plan and quota
func (h *ScanHandler) Entitlement(c *gin.Context) {
	result, err := h.usageUseCase.Execute(c.Request.Context(), usageusecases.GetUsageQuery{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"plan":          result.Plan,
		"status":        result.Status,
		"scans_used":    result.ScansUsed,
		"scans_limit":   result.ScanLimit,
		"unlimited":     result.Unlimited,
		"expires_at":    result.ExpiresAt,
		"subscribed_at": result.SubscribedAt,
	})
}

// Usage returns the current month's scan count and the resolved entitlement
func (h *ScanHandler) Usage(c *gin.Context) {
	result, err := h.usageUseCase.Execute(c.Request.Context(), usageusecases.GetUsageQuery{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"month":         result.MonthKey,
		"scans_used":    result.ScansUsed,
		"scan_limit":    result.ScanLimit,
		"unlimited":     result.Unlimited,
		"plan":          result.Plan,
		"status":        result.Status,
		"expires_at":    result.ExpiresAt,
		"subscribed_at": result.SubscribedAt,
	})
}
