package app

import (
	"github.com/saradorri/tournamenthub/internal/http"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	h http.Handlers,
	sessions *state.Sessions,
	store *state.Store,
	userUseCase usecase.UserUseCase,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	if a.config.Server.Port == "" {
		a.config.Server.Port = "8080" // default port
	}
	return http.NewServer(h, sessions, store, userUseCase, errorHandler, log, a.config.GetServerAddress(), a.config.Server.RequestTimeout)
}
