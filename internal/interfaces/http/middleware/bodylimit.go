package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects declared bodies over maxBytes and caps streamed ones.
// Handlers see *http.MaxBytesError when an undeclared body runs over.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size")
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
