package app

import (
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/infrastructure/scheduler"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"github.com/saradorri/tournamenthub/internal/usecase/admin"
	"github.com/saradorri/tournamenthub/internal/usecase/notification"
	"github.com/saradorri/tournamenthub/internal/usecase/ranking"
	"github.com/saradorri/tournamenthub/internal/usecase/settings"
	"github.com/saradorri/tournamenthub/internal/usecase/tournament"
	"github.com/saradorri/tournamenthub/internal/usecase/transaction"
	"github.com/saradorri/tournamenthub/internal/usecase/user"
)

func (a *application) InitTournamentUseCase(
	repos Repositories,
	store *state.Store,
	feedback *usecase.Feedback,
	log *logger.Logger,
) usecase.TournamentUseCase {
	return tournament.NewTournamentUseCase(repos.Tournaments, repos.Users, store, feedback, log)
}

func (a *application) InitTransactionUseCase(
	repos Repositories,
	store *state.Store,
	feedback *usecase.Feedback,
	clock clockwork.Clock,
	log *logger.Logger,
) usecase.TransactionUseCase {
	return transaction.NewTransactionUseCase(repos.Transactions, repos.Users, store, feedback, clock, log)
}

func (a *application) InitNotificationUseCase(
	repos Repositories,
	store *state.Store,
	feedback *usecase.Feedback,
	clock clockwork.Clock,
	log *logger.Logger,
) usecase.NotificationUseCase {
	return notification.NewNotificationUseCase(repos.Notifications, repos.Users, store, feedback, clock, log)
}

func (a *application) InitUserUseCase(
	authProvider domain.AuthProvider,
	repos Repositories,
	store *state.Store,
	sessions *state.Sessions,
	feedback *usecase.Feedback,
	sched *scheduler.Scheduler,
	log *logger.Logger,
) usecase.UserUseCase {
	return user.NewUserUseCase(authProvider, repos.Users, store, sessions, feedback, sched, a.config.ProfileSync.Delay, log)
}

func (a *application) InitSettingsUseCase(
	repos Repositories,
	store *state.Store,
	feedback *usecase.Feedback,
	log *logger.Logger,
) usecase.SettingsUseCase {
	return settings.NewSettingsUseCase(repos.Settings, store, feedback, log)
}

func (a *application) InitAdminUseCase(store *state.Store, feedback *usecase.Feedback, clock clockwork.Clock) usecase.AdminUseCase {
	return admin.NewAdminUseCase(store, feedback, clock)
}

func (a *application) InitRankingUseCase(store *state.Store) usecase.RankingUseCase {
	return ranking.NewRankingUseCase(store)
}
