package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/http/handlers"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups every route handler of the API
type Handlers struct {
	Auth         *handlers.AuthHandler
	Session      *handlers.SessionHandler
	User         *handlers.UserHandler
	Tournament   *handlers.TournamentHandler
	Wallet       *handlers.WalletHandler
	Notification *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
	Settings     *handlers.SettingsHandler
	Leaderboard  *handlers.LeaderboardHandler
}

// Server represents the HTTP server
type Server struct {
	router       *gin.Engine
	server       *http.Server
	handlers     Handlers
	sessions     *state.Sessions
	store        *state.Store
	userUseCase  usecase.UserUseCase
	errorHandler *middleware.ErrorHandler
	logger       *logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	h Handlers,
	sessions *state.Sessions,
	store *state.Store,
	userUseCase usecase.UserUseCase,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	addr string,
	requestTimeout time.Duration,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(requestTimeout))
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(log))

	s := &Server{
		router:       router,
		handlers:     h,
		sessions:     sessions,
		store:        store,
		userUseCase:  userUseCase,
		errorHandler: errorHandler,
		logger:       log,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	s.setupRoutes()
	return s
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := s.handlers
	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware(s.sessions, s.store, s.userUseCase))
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", h.Auth.Register)
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.POST("/logout", h.Auth.Logout)
		}

		sessionRoutes := v1.Group("/session")
		{
			sessionRoutes.GET("", h.Session.Get)
			sessionRoutes.POST("/navigate", h.Session.Navigate)
			sessionRoutes.PUT("/language", h.Session.SetLanguage)
			sessionRoutes.POST("/refresh", h.Session.Refresh)
			sessionRoutes.DELETE("/toast", h.Session.DismissToast)
		}

		v1.GET("/settings", h.Settings.Get)
		v1.GET("/settings/theme.css", h.Settings.Theme)
		v1.GET("/leaderboard", h.Leaderboard.Get)
		v1.GET("/notifications", h.Notification.Inbox)

		tournamentRoutes := v1.Group("/tournaments")
		{
			tournamentRoutes.GET("", h.Tournament.List)
			tournamentRoutes.GET("/:id", h.Tournament.Open)
			tournamentRoutes.GET("/:id/countdown", h.Tournament.Countdown)
			tournamentRoutes.GET("/:id/countdown/stream", h.Tournament.CountdownStream)
			tournamentRoutes.POST("/:id/join", h.Tournament.Join)
		}

		walletRoutes := v1.Group("/wallet")
		{
			walletRoutes.GET("/transactions", h.Wallet.History)
			walletRoutes.POST("/deposits", h.Wallet.Deposit)
		}

		protected := v1.Group("/")
		protected.Use(middleware.RequireUser())
		{
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", h.User.GetUserInfo)
				userRoutes.PUT("/me", h.User.UpdateProfile)
			}

			protected.POST("/notifications/read", h.Notification.MarkAllRead)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/stats", h.Admin.Stats)
			admin.POST("/uploads", h.Admin.Upload)

			admin.GET("/transactions", h.Wallet.ListAll)
			admin.POST("/transactions/:id/review", h.Wallet.Review)

			admin.POST("/tournaments", h.Tournament.Create)
			admin.PUT("/tournaments/:id", h.Tournament.Update)
			admin.DELETE("/tournaments/:id", h.Tournament.Delete)

			admin.POST("/notifications", h.Notification.Broadcast)
			admin.PUT("/settings", h.Settings.Update)
		}
	}
}

// Start serves in the background. Errors other than a closed server are logged.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
