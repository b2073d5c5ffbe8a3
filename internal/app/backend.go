package app

import (
	"context"
	"fmt"

	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/gormstore"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/memory"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/rest"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Repositories are the backend collections of the selected driver
type Repositories struct {
	Users         domain.UserRepository
	Tournaments   domain.TournamentRepository
	Transactions  domain.TransactionRepository
	Notifications domain.NotificationRepository
	Settings      domain.SettingsRepository
	Credentials   domain.CredentialRepository
}

// Sources returns the collections the store snapshot is loaded from
func (r Repositories) Sources() state.Sources {
	return state.Sources{
		Users:         r.Users,
		Tournaments:   r.Tournaments,
		Transactions:  r.Transactions,
		Notifications: r.Notifications,
		Settings:      r.Settings,
	}
}

// InitBackend selects the data backend driver
func (a *application) InitBackend(lc fx.Lifecycle, log *logger.Logger) (Repositories, error) {
	cfg := a.config.Backend
	log.Info("Initializing backend", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory, "":
		b := memory.New()
		return Repositories{
			Users:         b.Users,
			Tournaments:   b.Tournaments,
			Transactions:  b.Transactions,
			Notifications: b.Notifications,
			Settings:      b.Settings,
			Credentials:   b.Credentials,
		}, nil

	case config.DriverREST:
		if cfg.URL == "" {
			return Repositories{}, fmt.Errorf("backend.url is required for the rest driver")
		}
		b := rest.New(rest.NewClient(cfg.URL, cfg.APIKey, cfg.Timeout, cfg.RetryMax, log))
		return Repositories{
			Users:         b.Users,
			Tournaments:   b.Tournaments,
			Transactions:  b.Transactions,
			Notifications: b.Notifications,
			Settings:      b.Settings,
			Credentials:   b.Credentials,
		}, nil

	case config.DriverPostgres:
		db, err := gormstore.NewDatabase(a.config)
		if err != nil {
			return Repositories{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return db.Close()
			},
		})
		b := gormstore.New(db)
		return Repositories{
			Users:         b.Users,
			Tournaments:   b.Tournaments,
			Transactions:  b.Transactions,
			Notifications: b.Notifications,
			Settings:      b.Settings,
			Credentials:   b.Credentials,
		}, nil

	default:
		return Repositories{}, fmt.Errorf("unknown backend driver %q", cfg.Driver)
	}
}
