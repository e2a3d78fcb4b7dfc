package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/messages"
)

// DefaultRequestTimeout bounds request handling unless configured.
const DefaultRequestTimeout = 30 * time.Second

// Timeout sets a deadline on the request context. Handlers observe it via
// c.Request.Context(); if the deadline passed and the handler wrote nothing,
// the client gets 504.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, messages.Text(messages.ErrTimeout)).
					WithRequestID(GetRequestID(c)))
		}
	}
}
