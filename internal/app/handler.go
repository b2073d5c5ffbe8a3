package app

import (
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http"
	"github.com/saradorri/tournamenthub/internal/http/handlers"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/fx"
)

// HandlerDeps are the use cases behind the HTTP handlers
type HandlerDeps struct {
	fx.In

	Users         usecase.UserUseCase
	Tournaments   usecase.TournamentUseCase
	Transactions  usecase.TransactionUseCase
	Notifications usecase.NotificationUseCase
	Settings      usecase.SettingsUseCase
	Admin         usecase.AdminUseCase
	Ranking       usecase.RankingUseCase
	Images        domain.ImageStore
	Catalog       *i18n.Catalog
	Store         *state.Store
	Clock         clockwork.Clock
}

func (a *application) InitHandlers(d HandlerDeps) http.Handlers {
	return http.Handlers{
		Auth:         handlers.NewAuthHandler(d.Users),
		Session:      handlers.NewSessionHandler(d.Users, d.Catalog),
		User:         handlers.NewUserHandler(d.Users),
		Tournament:   handlers.NewTournamentHandler(d.Tournaments, d.Store, d.Clock),
		Wallet:       handlers.NewWalletHandler(d.Transactions),
		Notification: handlers.NewNotificationHandler(d.Notifications),
		Admin:        handlers.NewAdminHandler(d.Admin, d.Images),
		Settings:     handlers.NewSettingsHandler(d.Settings),
		Leaderboard:  handlers.NewLeaderboardHandler(d.Ranking),
	}
}
