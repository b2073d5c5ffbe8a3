package app

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/auth"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/rest"
	"github.com/saradorri/tournamenthub/internal/infrastructure/lock"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
)

func (a *application) InitJWTService(clock clockwork.Clock) auth.JWTService {
	cfg := &config.JWTConfig{
		Secret: a.config.JWT.Secret,
		Expiry: a.config.JWT.Expiry,
	}
	return auth.NewJWTService(cfg, clock)
}

// InitAuthProvider selects the authentication driver
func (a *application) InitAuthProvider(
	repos Repositories,
	jwt auth.JWTService,
	locks *lock.Manager,
	clock clockwork.Clock,
	log *logger.Logger,
) (domain.AuthProvider, error) {
	cfg := a.config.Auth
	switch cfg.Driver {
	case config.DriverLocal, "":
		if a.config.JWT.Secret == "" {
			return nil, fmt.Errorf("jwt.secret is required for the local auth driver")
		}
		return auth.NewLocalProvider(repos.Credentials, repos.Users, jwt, locks, clock, cfg.RequireEmailConfirmation, log), nil
	case config.DriverREST:
		url, key := cfg.URL, cfg.APIKey
		if url == "" {
			url, key = a.config.Backend.URL, a.config.Backend.APIKey
		}
		if url == "" {
			return nil, fmt.Errorf("auth.url is required for the rest auth driver")
		}
		client := rest.NewClient(url, key, a.config.Backend.Timeout, a.config.Backend.RetryMax, log)
		return rest.NewAuthProvider(client), nil
	default:
		return nil, fmt.Errorf("unknown auth driver %q", cfg.Driver)
	}
}

func (a *application) InitLocks(log *logger.Logger) *lock.Manager {
	return lock.NewManager(lock.DefaultTimeout, log.Named("lock"))
}
