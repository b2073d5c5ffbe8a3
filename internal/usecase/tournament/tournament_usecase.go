package tournament

import (
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// TournamentUseCase implements usecase.TournamentUseCase
type TournamentUseCase struct {
	tournamentRepo domain.TournamentRepository
	userRepo       domain.UserRepository
	store          *state.Store
	feedback       *usecase.Feedback
	logger         *logger.Logger
}

// NewTournamentUseCase creates a new tournament use case
func NewTournamentUseCase(
	tournamentRepo domain.TournamentRepository,
	userRepo domain.UserRepository,
	store *state.Store,
	feedback *usecase.Feedback,
	logger *logger.Logger,
) usecase.TournamentUseCase {
	logger.Info("TournamentUseCase initialized successfully")
	return &TournamentUseCase{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		store:          store,
		feedback:       feedback,
		logger:         logger,
	}
}

// List returns every tournament flagged for the session's viewer
func (uc *TournamentUseCase) List(sess *state.Session) []usecase.TournamentCard {
	viewer := sess.CurrentUser()
	tournaments := uc.store.Tournaments()
	cards := make([]usecase.TournamentCard, 0, len(tournaments))
	for _, t := range tournaments {
		cards = append(cards, usecase.TournamentCard{
			Tournament: t.ForViewer(viewer),
			IsJoined:   viewer != nil && viewer.HasJoined(t.ID),
			IsFull:     t.IsFull(),
		})
	}
	return cards
}

// Open selects a tournament on the session and returns its detail view
func (uc *TournamentUseCase) Open(sess *state.Session, tournamentID string) (*usecase.TournamentDetail, error) {
	t, ok := uc.store.Tournament(tournamentID)
	if !ok {
		return nil, domain.NewBusinessRuleError(domain.ErrCodeTournamentNotFound, "Tournament not found.", 404)
	}
	sess.SelectTournament(t)
	return uc.detail(sess.CurrentUser(), t), nil
}

func (uc *TournamentUseCase) detail(viewer *domain.User, t *domain.Tournament) *usecase.TournamentDetail {
	participants := make([]usecase.ParticipantEntry, 0, len(t.Participants))
	for _, id := range t.Participants {
		entry := usecase.ParticipantEntry{ID: id}
		if u, ok := uc.store.User(id); ok {
			entry.InGameName = u.InGameName
		}
		participants = append(participants, entry)
	}
	return &usecase.TournamentDetail{
		Tournament:   t.ForViewer(viewer),
		Room:         t.RoomAccessFor(viewer),
		IsJoined:     viewer != nil && viewer.HasJoined(t.ID),
		IsFull:       t.IsFull(),
		Participants: participants,
	}
}
