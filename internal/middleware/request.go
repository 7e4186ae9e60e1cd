package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-sales/internal/logger"
)

// RequestID keeps an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(logger.RequestIDKey)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, rid)
		c.Header(logger.RequestIDKey, rid)
		c.Next()
	}
}

// Timeout bounds the request context; store calls observe the deadline.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
