package app

import (
	"context"
	"fmt"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/infrastructure/scheduler"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LifecycleDeps are the components started and stopped with the app
type LifecycleDeps struct {
	fx.In

	Lifecycle    fx.Lifecycle
	Repositories Repositories
	Store        *state.Store
	Sessions     *state.Sessions
	Auth         domain.AuthProvider
	Users        usecase.UserUseCase
	Scheduler    *scheduler.Scheduler
	Server       *http.Server
	Logger       *logger.Logger
}

// registerLifecycle loads the store snapshot before serving, follows auth
// session changes for the app lifetime and evicts idle client sessions.
func (a *application) registerLifecycle(d LifecycleDeps) {
	var unsubscribe func()

	d.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := d.Store.Load(ctx, d.Repositories.Sources()); err != nil {
				return fmt.Errorf("failed to load store: %w", err)
			}
			d.Logger.Info("Store loaded",
				zap.Int("users", len(d.Store.Users())),
				zap.Int("tournaments", len(d.Store.Tournaments())),
				zap.Int("transactions", len(d.Store.Transactions())))

			unsubscribe = d.Auth.Subscribe(func(event domain.AuthEvent) {
				d.Users.HandleAuthEvent(a.ctx, event)
			})

			idle := a.config.Session.IdleTimeout
			if interval := a.config.Session.SweepInterval; interval > 0 && idle > 0 {
				err := d.Scheduler.Every("session-sweep", interval, func() {
					if n := d.Sessions.Sweep(idle); n > 0 {
						d.Logger.Info("Idle sessions closed", zap.Int("count", n))
					}
				})
				if err != nil {
					return err
				}
			}
			d.Scheduler.Start()

			return d.Server.Start()
		},
		OnStop: func(ctx context.Context) error {
			err := d.Server.Shutdown(ctx)
			if unsubscribe != nil {
				unsubscribe()
			}
			if serr := d.Scheduler.Shutdown(); serr != nil {
				d.Logger.Error("Scheduler shutdown failed", zap.Error(serr))
			}
			_ = d.Logger.Sync()
			return err
		},
	})
}
