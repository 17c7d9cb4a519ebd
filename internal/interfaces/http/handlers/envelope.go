package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// Envelope is the uniform JSON wrapper every endpoint returns.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// respondOK writes a success envelope with the given status code.
func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps a domain error to its HTTP status and writes a failure
// envelope. Unknown errors collapse to a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), Envelope{
			Success: false,
			Message: appErr.Message,
			Errors:  appErr.Violations,
		})
		return
	}

	c.JSON(500, Envelope{
		Success: false,
		Message: "internal server error",
	})
}
