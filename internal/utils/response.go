package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Generic messages returned to callers. Internal error details never leave
// the process.
const (
	MsgServerError        = "Server Error"
	MsgTooManyRequests    = "Too Many Requests"
	MsgServiceUnavailable = "Service Unavailable"
)

// SuccessResponse is the envelope for successful calls. Data is always
// present, so an empty list is serialized as [].
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for failed calls.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Success writes a 200 response carrying data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Error writes a failure response with the given status and message.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// AbortWithError writes a failure response and stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// ServerError writes the uniform 500 response.
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, MsgServerError)
}

// RequestID returns the id assigned by the logging middleware, if any.
func RequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
