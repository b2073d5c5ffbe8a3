package app

import (
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(log *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(log)
}
