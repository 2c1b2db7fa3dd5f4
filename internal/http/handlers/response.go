package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"persistence_failure"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"cannot update, invalid data"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message" example:"Question 3 deleted"`
}

// fail aborts the request with an ErrorResponse. Only Reject calls it.
func fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: middleware.GetRequestID(c),
		Code:      code,
		Message:   msg,
	})
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
