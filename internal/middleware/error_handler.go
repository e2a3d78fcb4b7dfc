package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/logger"
	"github.com/guttosm/freshcart-pos/internal/messages"
)

// ErrorHandler logs errors attached with c.Error and answers 500 when the
// handler wrote nothing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestID := GetRequestID(c)
		log := logger.WithRequest(requestID)
		log.Warn().
			Strs("errors", c.Errors.Errors()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Msg("Request error")

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, messages.Text(messages.ErrInternal)).WithRequestID(requestID))
		}
	}
}
