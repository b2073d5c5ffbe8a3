package tournament

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/domain/mocks"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/memory"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fixture struct {
	backend *memory.Backend
	store   *state.Store
	uc      *TournamentUseCase
}

func newFixture(t require.TestingT, userRepo domain.UserRepository, tournamentRepo domain.TournamentRepository) *fixture {
	backend := memory.New()
	if userRepo == nil {
		userRepo = backend.Users
	}
	if tournamentRepo == nil {
		tournamentRepo = backend.Tournaments
	}
	log := logger.NewLogger("test", "debug")
	catalog := i18n.New(log)
	_, err := catalog.Load("en")
	require.NoError(t, err)

	store := state.NewStore()
	uc := NewTournamentUseCase(tournamentRepo, userRepo, store, usecase.NewFeedback(log, catalog), log).(*TournamentUseCase)
	return &fixture{backend: backend, store: store, uc: uc}
}

func (f *fixture) seedUser(t require.TestingT, balance float64) *domain.User {
	u, err := f.backend.Users.Create(context.Background(), &domain.User{
		Name:                "Player",
		Email:               "player@example.com",
		InGameName:          "Sniper",
		WalletBalance:       balance,
		JoinedTournaments:   []string{},
		ReadNotificationIDs: []string{},
		RegistrationDate:    time.Now(),
	})
	require.NoError(t, err)
	f.store.PutUser(u)
	return u
}

func (f *fixture) seedTournament(t require.TestingT, fee float64, maxPlayers int, participants ...string) *domain.Tournament {
	if participants == nil {
		participants = []string{}
	}
	tr, err := f.backend.Tournaments.Create(context.Background(), &domain.Tournament{
		Name:         "Cup",
		Type:         domain.TournamentTypeSquad,
		EntryFee:     fee,
		PrizePool:    1000,
		MapName:      "Bermuda",
		StartTime:    time.Now().Add(time.Hour),
		MaxPlayers:   maxPlayers,
		Participants: participants,
	})
	require.NoError(t, err)
	f.store.PutTournament(tr)
	return tr
}

func newSession(user *domain.User) *state.Session {
	s := state.NewSession("sid", clockwork.NewFakeClock(), time.Minute, "en")
	if user != nil {
		s.Bind("token", user)
	}
	return s
}

func appCode(t *testing.T, err error) string {
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestJoinSuccessThenAlreadyJoined(t *testing.T) {
	f := newFixture(t, nil, nil)
	user := f.seedUser(t, 150)
	tr := f.seedTournament(t, 50, 10)
	sess := newSession(user)
	sess.SelectTournament(tr)

	result, err := f.uc.Join(context.Background(), sess, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, usecase.JoinOutcomeJoined, result.Outcome)
	assert.Equal(t, 100.0, result.User.WalletBalance)
	assert.Contains(t, result.User.JoinedTournaments, tr.ID)
	assert.Contains(t, result.Tournament.Participants, user.ID)

	stored, _ := f.store.User(user.ID)
	assert.Equal(t, 100.0, stored.WalletBalance)
	storedT, _ := f.store.Tournament(tr.ID)
	assert.Equal(t, []string{user.ID}, []string(storedT.Participants))
	assert.Equal(t, 100.0, sess.CurrentUser().WalletBalance)
	assert.Equal(t, []string{user.ID}, []string(sess.SelectedTournament().Participants))
	assert.Equal(t, "Successfully joined Cup!", sess.Toaster().Current().Message)

	_, err = f.uc.Join(context.Background(), sess, tr.ID)
	assert.Equal(t, domain.ErrCodeAlreadyJoined, appCode(t, err))
	assert.Equal(t, "Already joined.", sess.Toaster().Current().Message)

	persisted, _ := f.backend.Users.GetByID(context.Background(), user.ID)
	assert.Equal(t, 100.0, persisted.WalletBalance, "a rejected second attempt writes nothing")
}

func TestJoinPreconditions(t *testing.T) {
	tests := []struct {
		name         string
		balance      float64
		fee          float64
		maxPlayers   int
		participants []string
		joined       bool // the user's joined list holds the tournament
		listed       bool // the tournament's participants hold the user
		anonymous    bool
		tournamentID string
		wantCode     string
		wantMessage  string
		wantPage     domain.Page
	}{
		{
			name:        "not logged in",
			balance:     100,
			fee:         10,
			maxPlayers:  10,
			anonymous:   true,
			wantCode:    domain.ErrCodeNotAuthenticated,
			wantMessage: "You must be logged in to join.",
			wantPage:    domain.PageLogin,
		},
		{
			name:         "unknown tournament",
			balance:      100,
			fee:          10,
			maxPlayers:   10,
			tournamentID: "missing",
			wantCode:     domain.ErrCodeTournamentNotFound,
			wantMessage:  "Tournament not found.",
			wantPage:     domain.PageHome,
		},
		{
			name:        "insufficient balance",
			balance:     40,
			fee:         50,
			maxPlayers:  10,
			wantCode:    domain.ErrCodeInsufficientBalance,
			wantMessage: "Insufficient balance.",
			wantPage:    domain.PageWallet,
		},
		{
			name:         "full",
			balance:      100,
			fee:          10,
			maxPlayers:   2,
			participants: []string{"a", "b"},
			wantCode:     domain.ErrCodeTournamentFull,
			wantMessage:  "Tournament is full.",
			wantPage:     domain.PageHome,
		},
		{
			name:         "insufficient wins over full",
			balance:      5,
			fee:          10,
			maxPlayers:   1,
			participants: []string{"a"},
			wantCode:     domain.ErrCodeInsufficientBalance,
			wantMessage:  "Insufficient balance.",
			wantPage:     domain.PageWallet,
		},
		{
			name:        "joined list only",
			balance:     100,
			fee:         10,
			maxPlayers:  10,
			joined:      true,
			wantCode:    domain.ErrCodeAlreadyJoined,
			wantMessage: "Already joined.",
			wantPage:    domain.PageHome,
		},
		{
			name:        "participants only",
			balance:     100,
			fee:         10,
			maxPlayers:  10,
			listed:      true,
			wantCode:    domain.ErrCodeAlreadyJoined,
			wantMessage: "Already joined.",
			wantPage:    domain.PageHome,
		},
		{
			name:        "already joined wins over full",
			balance:     100,
			fee:         10,
			maxPlayers:  1,
			joined:      true,
			listed:      true,
			wantCode:    domain.ErrCodeAlreadyJoined,
			wantMessage: "Already joined.",
			wantPage:    domain.PageHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, nil, nil)
			user := f.seedUser(t, tt.balance)
			participants := append([]string{}, tt.participants...)
			if tt.listed {
				participants = append(participants, user.ID)
			}
			tr := f.seedTournament(t, tt.fee, tt.maxPlayers, participants...)
			wantJoined := []string{}
			if tt.joined {
				wantJoined = []string{tr.ID}
				var err error
				user, err = f.backend.Users.Update(ctx, user.ID, domain.Fields{domain.FieldJoinedTournaments: wantJoined})
				require.NoError(t, err)
				f.store.PutUser(user)
			}

			var sess *state.Session
			if tt.anonymous {
				sess = newSession(nil)
			} else {
				sess = newSession(user)
			}
			id := tr.ID
			if tt.tournamentID != "" {
				id = tt.tournamentID
			}

			result, err := f.uc.Join(ctx, sess, id)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantCode, appCode(t, err))
			assert.Equal(t, tt.wantMessage, sess.Toaster().Current().Message)
			assert.Equal(t, tt.wantPage, sess.Page())

			storedUser, _ := f.backend.Users.GetByID(ctx, user.ID)
			assert.Equal(t, tt.balance, storedUser.WalletBalance)
			assert.Equal(t, wantJoined, []string(storedUser.JoinedTournaments))
			storedT, _ := f.store.Tournament(tr.ID)
			assert.Equal(t, participants, []string(storedT.Participants))
		})
	}
}

func TestJoinDebitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	tournamentRepo := mocks.NewMockTournamentRepository(ctrl)
	f := newFixture(t, userRepo, tournamentRepo)
	user := f.seedUser(t, 100)
	tr := f.seedTournament(t, 30, 10)
	sess := newSession(user)

	userRepo.EXPECT().Update(gomock.Any(), user.ID, gomock.Any()).Return(nil, errors.New("connection reset"))
	tournamentRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := f.uc.Join(context.Background(), sess, tr.ID)
	require.NotNil(t, result)
	assert.Equal(t, usecase.JoinOutcomeDebitFailed, result.Outcome)
	assert.Equal(t, domain.ErrCodeBackendWrite, appCode(t, err))
	assert.Equal(t, "Error in tournament entry: connection reset", sess.Toaster().Current().Message)

	stored, _ := f.store.User(user.ID)
	assert.Equal(t, 100.0, stored.WalletBalance)
	assert.Equal(t, 100.0, sess.CurrentUser().WalletBalance)
}

func TestJoinParticipantFailureKeepsDebit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tournamentRepo := mocks.NewMockTournamentRepository(ctrl)
	f := newFixture(t, nil, tournamentRepo)
	user := f.seedUser(t, 100)
	tr := f.seedTournament(t, 30, 10)
	sess := newSession(user)

	tournamentRepo.EXPECT().
		Update(gomock.Any(), tr.ID, domain.Fields{domain.FieldParticipants: []string{user.ID}}).
		Return(nil, &domain.BackendError{StatusCode: 500, Message: "upstream timeout"})

	result, err := f.uc.Join(context.Background(), sess, tr.ID)
	require.NotNil(t, result)
	assert.Equal(t, usecase.JoinOutcomeParticipantFailed, result.Outcome)
	assert.Equal(t, "Error in adding participant: upstream timeout", sess.Toaster().Current().Message)
	assert.Error(t, err)

	// The debit is server truth and is reflected; the tournament is not.
	stored, _ := f.store.User(user.ID)
	assert.Equal(t, 70.0, stored.WalletBalance)
	assert.Contains(t, stored.JoinedTournaments, tr.ID)
	assert.Equal(t, 70.0, sess.CurrentUser().WalletBalance)
	storedT, _ := f.store.Tournament(tr.ID)
	assert.Empty(t, storedT.Participants)
}

func TestConcurrentJoinsAreUnguarded(t *testing.T) {
	f := newFixture(t, nil, nil)
	tr := f.seedTournament(t, 10, 1)
	firstUser, secondUser := f.seedUser(t, 50), f.seedUser(t, 50)
	first, second := newSession(firstUser), newSession(secondUser)

	// Both pass the capacity check before either write lands.
	a, rejection := f.uc.prepareJoin(first, tr.ID)
	require.Nil(t, rejection)
	b, rejection := f.uc.prepareJoin(second, tr.ID)
	require.Nil(t, rejection)

	_, err := f.uc.applyJoin(context.Background(), first, a)
	require.NoError(t, err)
	res, err := f.uc.applyJoin(context.Background(), second, b)
	require.NoError(t, err)

	// Both players were charged for a one-seat tournament, and the second
	// write replaced the participant list computed from its stale read.
	for _, id := range []string{firstUser.ID, secondUser.ID} {
		u, _ := f.store.User(id)
		assert.Equal(t, 40.0, u.WalletBalance)
		assert.Contains(t, u.JoinedTournaments, tr.ID)
	}
	assert.Equal(t, []string{secondUser.ID}, []string(res.Tournament.Participants))
}

func TestJoinArithmeticProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fee := float64(rapid.IntRange(0, 5000).Draw(rt, "fee"))
		balance := fee + float64(rapid.IntRange(0, 5000).Draw(rt, "surplus"))

		f := newFixture(rt, nil, nil)
		user := f.seedUser(rt, balance)
		tr := f.seedTournament(rt, fee, 4)
		sess := newSession(user)

		result, err := f.uc.Join(context.Background(), sess, tr.ID)
		if err != nil {
			rt.Fatalf("join failed: %v", err)
		}
		if result.User.WalletBalance != balance-fee {
			rt.Fatalf("balance %v, want %v", result.User.WalletBalance, balance-fee)
		}
		if len(result.Tournament.Participants) != 1 {
			rt.Fatalf("participants %v", result.Tournament.Participants)
		}
	})
}

func TestListAndOpen(t *testing.T) {
	f := newFixture(t, nil, nil)
	user := f.seedUser(t, 100)
	tr := f.seedTournament(t, 10, 1)
	other := f.seedTournament(t, 10, 5)
	sess := newSession(user)

	_, err := f.uc.Join(context.Background(), sess, tr.ID)
	require.NoError(t, err)

	cards := f.uc.List(sess)
	require.Len(t, cards, 2)
	byID := map[string]usecase.TournamentCard{}
	for _, c := range cards {
		byID[c.ID] = c
	}
	assert.True(t, byID[tr.ID].IsJoined)
	assert.True(t, byID[tr.ID].IsFull)
	assert.False(t, byID[other.ID].IsJoined)

	detail, err := f.uc.Open(sess, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAccessPending, detail.Room.State)
	require.Len(t, detail.Participants, 1)
	assert.Equal(t, "Sniper", detail.Participants[0].InGameName)
	assert.Equal(t, domain.PageTournamentDetail, sess.Page())

	detail, err = f.uc.Open(newSession(nil), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAccessHidden, detail.Room.State)

	_, err = f.uc.Open(sess, "missing")
	assert.Equal(t, domain.ErrCodeTournamentNotFound, appCode(t, err))
}

func TestRoomDetailsOnlyForJoinedViewers(t *testing.T) {
	f := newFixture(t, nil, nil)
	user := f.seedUser(t, 100)
	tr := f.seedTournament(t, 10, 5)
	updated, err := f.backend.Tournaments.Update(context.Background(), tr.ID, domain.Fields{
		domain.FieldRoomDetails: &domain.RoomDetails{ID: "ROOM-42", Pass: "SECRET-PW"},
	})
	require.NoError(t, err)
	f.store.PutTournament(updated)

	outsider := newSession(user)
	for _, sess := range []*state.Session{newSession(nil), outsider} {
		cards := f.uc.List(sess)
		require.Len(t, cards, 1)
		assert.Nil(t, cards[0].RoomDetails)

		detail, err := f.uc.Open(sess, tr.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.Tournament.RoomDetails)
		assert.Equal(t, domain.RoomAccessHidden, detail.Room.State)
		assert.Nil(t, sess.Resolve().SelectedTournament.RoomDetails)
	}

	_, err = f.uc.Join(context.Background(), outsider, tr.ID)
	require.NoError(t, err)
	cards := f.uc.List(outsider)
	require.NotNil(t, cards[0].RoomDetails)
	assert.Equal(t, "SECRET-PW", cards[0].RoomDetails.Pass)

	stored, _ := f.store.Tournament(tr.ID)
	assert.Equal(t, "SECRET-PW", stored.RoomDetails.Pass, "the snapshot keeps the credentials")
}

func TestAdminCRUD(t *testing.T) {
	f := newFixture(t, nil, nil)
	admin := newSession(&domain.User{ID: "admin", IsAdmin: true})
	ctx := context.Background()

	input := usecase.TournamentInput{
		Name:       "Weekend Clash",
		Type:       domain.TournamentTypeSolo,
		EntryFee:   20,
		PrizePool:  500,
		MapName:    "Kalahari",
		StartTime:  time.Now().Add(24 * time.Hour),
		MaxPlayers: 48,
	}
	created, err := f.uc.Create(ctx, admin, input)
	require.NoError(t, err)
	assert.NotNil(t, created.Participants)
	assert.Empty(t, created.Participants)
	assert.Equal(t, "Tournament created successfully!", admin.Toaster().Current().Message)

	input.RoomDetails = &domain.RoomDetails{ID: "123456", Pass: "pw"}
	updated, err := f.uc.Update(ctx, admin, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "123456", updated.RoomDetails.ID)
	stored, _ := f.store.Tournament(created.ID)
	assert.Equal(t, "pw", stored.RoomDetails.Pass)

	_, err = f.uc.Update(ctx, admin, "missing", input)
	assert.Equal(t, domain.ErrCodeBackendWrite, appCode(t, err))

	require.NoError(t, f.uc.Delete(ctx, admin, created.ID))
	toast := admin.Toaster().Current()
	assert.Equal(t, "Tournament deleted successfully!", toast.Message)
	assert.Equal(t, state.ToastError, toast.Kind)
	_, ok := f.store.Tournament(created.ID)
	assert.False(t, ok)

	input.MaxPlayers = 0
	_, err = f.uc.Create(ctx, admin, input)
	assert.Equal(t, domain.ErrCodeInvalidRange, appCode(t, err))
}
