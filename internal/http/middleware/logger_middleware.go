package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
)

// LoggerMiddleware creates a middleware that logs HTTP requests in structured format
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		if sess := Session(c); sess != nil {
			ctx = context.WithValue(ctx, logger.SessionIDKey, sess.ID())
		}
		if userID := c.GetString(UserIDKey); userID != "" {
			ctx = context.WithValue(ctx, logger.UserIDKey, userID)
		}

		log.WithRequest(
			ctx,
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start).String(),
			c.Writer.Size(),
		).Info("HTTP Request Processed")
	}
}
