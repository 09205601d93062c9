package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"captr/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

// CreatedResponse sends a 201 response
func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// MessageResponse sends a 200 response carrying only a message
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
	})
}

// ErrorResponse sends an error response with the given status code
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    typeForStatus(statusCode),
			Message: message,
		},
	})
}

// ErrorResponseWithError maps an error to the response envelope. AppErrors
// keep their type and status; anything else becomes a generic 500 so internal
// details never leak to the caller.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "internal server error",
		},
	})
}

func typeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return string(errors.ErrorTypeValidation)
	case http.StatusUnauthorized:
		return string(errors.ErrorTypeUnauthorized)
	case http.StatusForbidden:
		return string(errors.ErrorTypeForbidden)
	case http.StatusNotFound:
		return string(errors.ErrorTypeNotFound)
	case http.StatusPaymentRequired:
		return string(errors.ErrorTypeLimitReached)
	case http.StatusBadGateway:
		return string(errors.ErrorTypeUpstream)
	default:
		return string(errors.ErrorTypeInternal)
	}
}
