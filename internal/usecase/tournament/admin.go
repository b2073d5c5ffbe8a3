package tournament

import (
	"context"
	"net/http"
	"strings"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// Create inserts a tournament with no participants
func (uc *TournamentUseCase) Create(ctx context.Context, sess *state.Session, input usecase.TournamentInput) (*domain.Tournament, error) {
	if err := validateInput(input); err != nil {
		return nil, uc.feedback.Reject(sess, err)
	}

	created, err := uc.tournamentRepo.Create(usecase.Detached(ctx), &domain.Tournament{
		Name:         strings.TrimSpace(input.Name),
		Type:         input.Type,
		EntryFee:     input.EntryFee,
		PrizePool:    input.PrizePool,
		MapName:      input.MapName,
		StartTime:    input.StartTime,
		MaxPlayers:   input.MaxPlayers,
		Participants: []string{},
		ImageURL:     input.ImageURL,
		RoomDetails:  input.RoomDetails,
	})
	if err != nil {
		return nil, uc.feedback.Fail(sess, "creating tournament", err)
	}

	uc.store.PutTournament(created)
	uc.logger.Info("Tournament created",
		zap.String("tournament_id", created.ID),
		zap.String("name", created.Name))
	uc.feedback.Success(sess, "Tournament created successfully!")
	return created, nil
}

// Update overwrites the editable fields of a tournament. Participants are
// only changed by joins.
func (uc *TournamentUseCase) Update(ctx context.Context, sess *state.Session, tournamentID string, input usecase.TournamentInput) (*domain.Tournament, error) {
	if err := validateInput(input); err != nil {
		return nil, uc.feedback.Reject(sess, err)
	}

	updated, err := uc.tournamentRepo.Update(usecase.Detached(ctx), tournamentID, domain.Fields{
		domain.FieldName:        strings.TrimSpace(input.Name),
		domain.FieldType:        input.Type,
		domain.FieldEntryFee:    input.EntryFee,
		domain.FieldPrizePool:   input.PrizePool,
		domain.FieldMapName:     input.MapName,
		domain.FieldStartTime:   input.StartTime,
		domain.FieldMaxPlayers:  input.MaxPlayers,
		domain.FieldImageURL:    input.ImageURL,
		domain.FieldRoomDetails: input.RoomDetails,
	})
	if err == nil && updated == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "updating tournament", err)
	}

	uc.store.PutTournament(updated)
	uc.logger.Info("Tournament updated", zap.String("tournament_id", updated.ID))
	uc.feedback.Success(sess, "Tournament updated successfully!")
	return updated, nil
}

// Delete removes a tournament. Entry fees already paid are not refunded.
func (uc *TournamentUseCase) Delete(ctx context.Context, sess *state.Session, tournamentID string) error {
	if err := uc.tournamentRepo.Delete(usecase.Detached(ctx), tournamentID); err != nil {
		return uc.feedback.Fail(sess, "deleting tournament", err)
	}

	uc.store.RemoveTournament(tournamentID)
	uc.logger.Info("Tournament deleted", zap.String("tournament_id", tournamentID))
	uc.feedback.Notice(sess, "Tournament deleted successfully!", state.ToastError)
	return nil
}

func validateInput(input usecase.TournamentInput) *domain.AppError {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return domain.NewBusinessRuleError(domain.ErrCodeRequiredField, "Tournament name is required.", http.StatusBadRequest)
	case !input.Type.Valid():
		return domain.NewBusinessRuleError(domain.ErrCodeInvalidFormat, "Tournament type must be Solo, Duo or Squad.", http.StatusBadRequest)
	case input.StartTime.IsZero():
		return domain.NewBusinessRuleError(domain.ErrCodeRequiredField, "Start time is required.", http.StatusBadRequest)
	case input.EntryFee < 0 || input.PrizePool < 0:
		return domain.NewBusinessRuleError(domain.ErrCodeInvalidRange, "Fees and prizes cannot be negative.", http.StatusBadRequest)
	case input.MaxPlayers <= 0:
		return domain.NewBusinessRuleError(domain.ErrCodeInvalidRange, "Max players must be positive.", http.StatusBadRequest)
	}
	return nil
}
