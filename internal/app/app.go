package app

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Application provides application level setup
type Application interface {
	Setup()
	GetContext() context.Context
}

// application represents context and configure file
type application struct {
	ctx    context.Context
	config *config.Config
}

// NewApplication creates a new application
func NewApplication(ctx context.Context) Application {
	return &application{ctx: ctx}
}

// GetContext returns application context
func (a *application) GetContext() context.Context {
	return a.ctx
}

// Setup creates a new fx application with all modules
func (a *application) Setup() {
	fmt.Println("[x] Starting Tournament Hub...")

	path := flag.String("e", "./config", "env file directory")
	flag.Parse()

	err := a.setupViper(*path)
	if err != nil {
		log.Panic(err.Error())
	}

	app := fx.New(
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx").Zap()}
		}),
		fx.Provide(
			a.InitLogger,
			a.InitClock,
			a.InitCatalog,
			a.InitStore,
			a.InitSessions,
			a.InitFeedback,
			a.InitScheduler,
			a.InitBackend,
			a.InitJWTService,
			a.InitLocks,
			a.InitAuthProvider,
			a.InitImageStore,
			a.InitTournamentUseCase,
			a.InitTransactionUseCase,
			a.InitNotificationUseCase,
			a.InitUserUseCase,
			a.InitSettingsUseCase,
			a.InitAdminUseCase,
			a.InitRankingUseCase,
			a.InitErrorHandler,
			a.InitHandlers,
			a.InitHTTPServer,
		),
		fx.Invoke(a.registerLifecycle),
	)

	app.Run()
}
