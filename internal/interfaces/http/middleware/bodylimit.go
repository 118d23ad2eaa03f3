package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects bodies whose declared length exceeds maxBytes and caps
// streamed bodies at the same size. A non-positive maxBytes disables it.
func BodyLimit(maxBytes int64, problems *dto.Problems) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			problems.Abort(c, http.StatusRequestEntityTooLarge, i18n.TitleBodyTooLarge)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
