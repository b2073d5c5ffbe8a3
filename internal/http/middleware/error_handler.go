package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Context keys set on the gin context
const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"
	SessionKey   = "session"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *logger.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// ErrorHandlerMiddleware provides centralized panic recovery for all requests
func (h *ErrorHandler) ErrorHandlerMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.handlePanic(c, recovered)
	})
}

// handlePanic handles panic recovery
func (h *ErrorHandler) handlePanic(c *gin.Context, recovered interface{}) {
	requestID := RequestID(c)
	userID := c.GetString(UserIDKey)

	h.logger.Error("PANIC",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Any("error", recovered),
		zap.String("stack", string(debug.Stack())))

	err := domain.NewInternalError("Internal server error", fmt.Errorf("panic: %v", recovered))
	Abort(c, err)
}

// Abort writes err as the JSON error envelope and stops the chain.
// Errors that are not an AppError become a 500.
func Abort(c *gin.Context, err error) {
	appErr, ok := domain.IsAppError(err)
	if !ok {
		appErr = domain.NewInternalError("", err)
	}
	appErr.RequestID = RequestID(c)
	appErr.UserID = c.GetString(UserIDKey)
	appErr.Path = c.Request.URL.Path
	appErr.Method = c.Request.Method

	c.AbortWithStatusJSON(appErr.HTTPStatus, domain.NewErrorResponse(appErr))
}

// RequestID returns the request id of c
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestIDMiddleware adds a unique request ID to each request
func (h *ErrorHandler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID))
		c.Next()
	}
}

// TimeoutMiddleware bounds the request context. Backend writes run on a
// detached context and are not cut short by it. Event streams are exempt.
func (h *ErrorHandler) TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 || strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			h.logger.Warn("TIMEOUT",
				zap.String("request_id", RequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			Abort(c, domain.NewAppError("TIMEOUT", "Request timeout", http.StatusRequestTimeout, ctx.Err()))
		}
	}
}
