package app

import (
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// InitLogger creates a new logger instance
func (a *application) InitLogger() *logger.Logger {
	return logger.NewLogger(config.GetEnvironment(), a.config.Log.Level)
}

// InitClock returns the wall clock shared by timers and the scheduler
func (a *application) InitClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

// InitCatalog loads the fallback and default translation catalogs
func (a *application) InitCatalog(log *logger.Logger) (*i18n.Catalog, error) {
	catalog := i18n.New(log)
	if _, err := catalog.Load(i18n.Fallback); err != nil {
		return nil, err
	}
	if lang := a.config.I18n.DefaultLanguage; lang != "" && lang != i18n.Fallback {
		active, _ := catalog.Load(lang)
		if active != lang {
			log.Warn("Default language unavailable, using fallback", zap.String("language", lang))
			a.config.I18n.DefaultLanguage = active
		}
	}
	return catalog, nil
}

// InitStore creates the empty domain snapshot
func (a *application) InitStore() *state.Store {
	return state.NewStore()
}

// InitSessions creates the client session registry
func (a *application) InitSessions(clock clockwork.Clock, catalog *i18n.Catalog) *state.Sessions {
	lang := a.config.I18n.DefaultLanguage
	if lang == "" {
		lang = i18n.Fallback
	}
	return state.NewSessions(clock, a.config.Toast.Duration, lang)
}

// InitFeedback creates the toast and log reporter shared by the use cases
func (a *application) InitFeedback(log *logger.Logger, catalog *i18n.Catalog) *usecase.Feedback {
	return usecase.NewFeedback(log, catalog)
}
