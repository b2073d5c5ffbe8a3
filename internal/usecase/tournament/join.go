package tournament

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// Join enters the session user into a tournament. Preconditions are checked
// in order and the first failure is returned without any write. The debit
// and the participant update are two independent writes; if the second fails
// the debit stays and the result reports JoinOutcomeParticipantFailed.
func (uc *TournamentUseCase) Join(ctx context.Context, sess *state.Session, tournamentID string) (*usecase.JoinResult, error) {
	uc.logger.Info("Starting tournament join",
		zap.String("session_id", sess.ID()),
		zap.String("tournament_id", tournamentID))

	intent, rejection := uc.prepareJoin(sess, tournamentID)
	if rejection != nil {
		return nil, uc.feedback.Reject(sess, rejection)
	}
	return uc.applyJoin(usecase.Detached(ctx), sess, intent)
}

func (uc *TournamentUseCase) prepareJoin(sess *state.Session, tournamentID string) (*usecase.JoinIntent, *domain.AppError) {
	user := sess.CurrentUser()
	if user == nil {
		sess.Navigate(domain.PageLogin)
		return nil, domain.NewBusinessRuleError(domain.ErrCodeNotAuthenticated, "You must be logged in to join.", http.StatusUnauthorized).
			WithRedirect(domain.PageLogin)
	}

	t, ok := uc.store.Tournament(tournamentID)
	if !ok {
		return nil, domain.NewBusinessRuleError(domain.ErrCodeTournamentNotFound, "Tournament not found.", http.StatusNotFound)
	}

	if user.WalletBalance < t.EntryFee {
		sess.Navigate(domain.PageWallet)
		return nil, domain.NewBusinessRuleError(domain.ErrCodeInsufficientBalance, "Insufficient balance.", http.StatusPaymentRequired).
			WithRedirect(domain.PageWallet)
	}

	if user.HasJoined(t.ID) || t.HasParticipant(user.ID) {
		return nil, domain.NewBusinessRuleError(domain.ErrCodeAlreadyJoined, "Already joined.", http.StatusConflict)
	}

	if t.IsFull() {
		return nil, domain.NewBusinessRuleError(domain.ErrCodeTournamentFull, "Tournament is full.", http.StatusConflict)
	}

	return &usecase.JoinIntent{User: user, Tournament: t}, nil
}

func (uc *TournamentUseCase) applyJoin(ctx context.Context, sess *state.Session, intent *usecase.JoinIntent) (*usecase.JoinResult, error) {
	user, t := intent.User, intent.Tournament

	uc.logger.Debug("Debiting entry fee",
		zap.String("user_id", user.ID),
		zap.String("tournament_id", t.ID),
		zap.Float64("balance", user.WalletBalance),
		zap.Float64("entry_fee", t.EntryFee))

	updatedUser, err := uc.userRepo.Update(ctx, user.ID, domain.Fields{
		domain.FieldWalletBalance:     user.WalletBalance - t.EntryFee,
		domain.FieldJoinedTournaments: domain.AppendUnique(user.JoinedTournaments, t.ID),
	})
	if err == nil && updatedUser == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return &usecase.JoinResult{Outcome: usecase.JoinOutcomeDebitFailed}, uc.feedback.Fail(sess, "tournament entry", err)
	}

	updatedTournament, err := uc.tournamentRepo.Update(ctx, t.ID, domain.Fields{
		domain.FieldParticipants: domain.AppendUnique(t.Participants, user.ID),
	})
	if err == nil && updatedTournament == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		uc.logger.Warn("User debited but participant update failed",
			zap.String("user_id", user.ID),
			zap.String("tournament_id", t.ID),
			zap.Float64("wallet_balance", updatedUser.WalletBalance))
		uc.store.PutUser(updatedUser)
		sess.RefreshUser(updatedUser)
		return &usecase.JoinResult{
			Outcome: usecase.JoinOutcomeParticipantFailed,
			User:    updatedUser,
		}, uc.feedback.Fail(sess, "adding participant", err)
	}

	uc.store.PutUser(updatedUser)
	uc.store.PutTournament(updatedTournament)
	sess.RefreshUser(updatedUser)
	sess.UpdateSelected(updatedTournament)

	uc.logger.Info("Tournament joined successfully",
		zap.String("user_id", updatedUser.ID),
		zap.String("tournament_id", updatedTournament.ID),
		zap.Float64("wallet_balance", updatedUser.WalletBalance),
		zap.Int("participants", len(updatedTournament.Participants)))

	uc.feedback.Success(sess, fmt.Sprintf("Successfully joined %s!", t.Name))

	return &usecase.JoinResult{
		Outcome:    usecase.JoinOutcomeJoined,
		User:       updatedUser,
		Tournament: updatedTournament,
	}, nil
}
