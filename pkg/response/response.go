// Package response defines the uniform API envelope and error carrier used
// by every handler: {statusCode, data, message, success}, where success is
// statusCode < 400.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ApiError is the single error carrier for all domain failures. It travels
// from repository/usecase code to the handler, which writes it as an error
// envelope with the carried status.
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(statusCode int, message string, errs ...string) *ApiError {
	if message == "" {
		message = "Something went wrong"
	}
	if errs == nil {
		errs = []string{}
	}
	return &ApiError{StatusCode: statusCode, Message: message, Errors: errs}
}

// JSON writes a success envelope.
func JSON(c *gin.Context, statusCode int, data interface{}, message string) {
	if message == "" {
		message = "Success"
	}
	c.JSON(statusCode, ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	})
}

// Error writes an error envelope. Anything that is not an *ApiError is
// flattened to a plain 500 so internals never leak to clients.
func Error(c *gin.Context, err error) {
	apiErr, ok := err.(*ApiError)
	if !ok {
		apiErr = NewApiError(http.StatusInternalServerError, "Internal server error")
	}
	c.JSON(apiErr.StatusCode, gin.H{
		"statusCode": apiErr.StatusCode,
		"data":       nil,
		"message":    apiErr.Message,
		"success":    false,
		"errors":     apiErr.Errors,
	})
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
