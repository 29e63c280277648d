// Package httpx holds the response envelope helpers shared by all handlers.
package httpx

import (
	"jobboard-service/internal/apperr"

	"github.com/gin-gonic/gin"
)

// OK writes a success payload as-is with the given status.
func OK(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error maps err through the taxonomy and writes the standard failure
// envelope: {success:false, error, code} plus field/details when present.
func Error(c *gin.Context, err error) {
	e := apperr.From(err)

	body := gin.H{
		"success": false,
		"error":   e.Message,
		"code":    e.Code,
	}
	if e.Field != "" {
		body["field"] = e.Field
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}

	c.JSON(e.Status, body)
}
