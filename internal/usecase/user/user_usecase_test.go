package user

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
)

// manualDeferrer holds deferred jobs until the test runs them
type manualDeferrer struct {
	jobs   []func()
	delays []time.Duration
}

func (d *manualDeferrer) After(_ string, delay time.Duration, fn func()) error {
	d.jobs = append(d.jobs, fn)
	d.delays = append(d.delays, delay)
	return nil
}

func (d *manualDeferrer) runAll() {
	for _, fn := range d.jobs {
		fn()
	}
	d.jobs = nil
}

type fixture struct {
	auth     *mocks.MockAuthProvider
	backend  *memory.Backend
	store    *state.Store
	sessions *state.Sessions
	clock    *clockwork.FakeClock
	deferrer *manualDeferrer
	uc       *UserUseCase
	sess     *state.Session
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	log := logger.NewLogger("test", "debug")
	catalog := i18n.New(log)
	_, err := catalog.Load("en")
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	f := &fixture{
		auth:     mocks.NewMockAuthProvider(ctrl),
		backend:  memory.New(),
		store:    state.NewStore(),
		sessions: state.NewSessions(clock, time.Minute, "en"),
		clock:    clock,
		deferrer: &manualDeferrer{},
	}
	f.uc = NewUserUseCase(f.auth, f.backend.Users, f.store, f.sessions,
		usecase.NewFeedback(log, catalog), f.deferrer, 1500*time.Millisecond, log).(*UserUseCase)
	f.sess = f.sessions.Open("sid")
	return f
}

func validInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:      "p@example.com",
		Password:   "secret1",
		Name:       "Player",
		InGameName: "Sniper",
		PlayerUID:  "123",
	}
}

func TestRegisterConfirmationRequired(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().SignUp(gomock.Any(), "p@example.com", "secret1", gomock.Any()).
		Return(&domain.SignUpResult{UserID: "u1"}, nil)

	res, err := f.uc.Register(context.Background(), f.sess, validInput())
	require.NoError(t, err)
	assert.True(t, res.ConfirmationRequired)
	assert.Equal(t, domain.PageLogin, f.sess.Page())
	assert.Empty(t, f.deferrer.jobs)
	assert.Contains(t, f.sess.Toaster().Current().Message, "check your email")
}

func TestRegisterProfileSync(t *testing.T) {
	ctx := context.Background()

	t.Run("profile found", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.SignUpResult{UserID: "u1", Session: &domain.AuthSession{AccessToken: "tok", UserID: "u1"}}, nil)

		res, err := f.uc.Register(ctx, f.sess, validInput())
		require.NoError(t, err)
		assert.True(t, res.ProfileSyncPending)
		require.Len(t, f.deferrer.jobs, 1)
		assert.Equal(t, 1500*time.Millisecond, f.deferrer.delays[0])
		assert.Nil(t, f.sess.CurrentUser())

		_, err = f.backend.Users.Create(ctx, &domain.User{ID: "u1", InGameName: "Sniper"})
		require.NoError(t, err)
		f.deferrer.runAll()

		require.NotNil(t, f.sess.CurrentUser())
		assert.Equal(t, "Sniper", f.sess.CurrentUser().InGameName)
		assert.Equal(t, domain.PageHome, f.sess.Page())
		_, ok := f.store.User("u1")
		assert.True(t, ok)
	})

	t.Run("profile not yet synced", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.SignUpResult{UserID: "u1", Session: &domain.AuthSession{AccessToken: "tok", UserID: "u1"}}, nil)

		_, err := f.uc.Register(ctx, f.sess, validInput())
		require.NoError(t, err)
		f.deferrer.runAll()

		assert.Nil(t, f.sess.CurrentUser())
		assert.Equal(t, domain.PageLogin, f.sess.Page())
		assert.Equal(t, "Account created, but profile is syncing. Please try logging in.", f.sess.Toaster().Current().Message)
	})
}

func TestRegisterFailures(t *testing.T) {
	f := newFixture(t)

	bad := validInput()
	bad.InGameName = " "
	_, err := f.uc.Register(context.Background(), f.sess, bad)
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeRequiredField, appErr.Code)

	f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &domain.BackendError{StatusCode: 422, Message: "User already registered"})
	_, err = f.uc.Register(context.Background(), f.sess, validInput())
	require.Error(t, err)
	assert.Equal(t, "Error in registration: User already registered", f.sess.Toaster().Current().Message)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("player goes home", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.backend.Users.Create(ctx, &domain.User{ID: "u1", InGameName: "Sniper"})
		require.NoError(t, err)
		f.auth.EXPECT().SignIn(gomock.Any(), "p@example.com", "pw").
			Return(&domain.AuthSession{AccessToken: "tok", UserID: "u1"}, nil)

		res, err := f.uc.Login(ctx, f.sess, "p@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, "tok", res.AccessToken)
		assert.Equal(t, domain.PageHome, f.sess.Page())
		assert.Equal(t, "Login successful!", f.sess.Toaster().Current().Message)
		assert.Len(t, f.sessions.ByAccessToken("tok"), 1)
	})

	t.Run("admin goes to dashboard", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.backend.Users.Create(ctx, &domain.User{ID: "a1", InGameName: "Boss", IsAdmin: true})
		require.NoError(t, err)
		f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.AuthSession{AccessToken: "tok", UserID: "a1"}, nil)

		_, err = f.uc.Login(ctx, f.sess, "boss@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, domain.PageAdmin, f.sess.Page())
		assert.Equal(t, domain.AdminDashboard, f.sess.AdminView())
		assert.Contains(t, f.sess.Toaster().Current().Message, "Boss")
	})

	t.Run("missing profile signs out", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.AuthSession{AccessToken: "tok", UserID: "ghost"}, nil)
		f.auth.EXPECT().SignOut(gomock.Any(), "tok").Return(nil)

		_, err := f.uc.Login(ctx, f.sess, "p@example.com", "pw")
		appErr, ok := domain.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, domain.ErrCodeProfileNotFound, appErr.Code)
		assert.Equal(t, "Error in login: Profile not found.", appErr.Message)
		assert.Nil(t, f.sess.CurrentUser())
		assert.Empty(t, f.sess.AccessToken())
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("Invalid login credentials"))

		_, err := f.uc.Login(ctx, f.sess, "p@example.com", "bad")
		require.Error(t, err)
		assert.Equal(t, "Error in login: Invalid login credentials", f.sess.Toaster().Current().Message)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.sess.Bind("tok", &domain.User{ID: "u1"})
	f.auth.EXPECT().SignOut(gomock.Any(), "tok").Return(nil)

	require.NoError(t, f.uc.Logout(context.Background(), f.sess))
	assert.Nil(t, f.sess.CurrentUser())
	assert.Equal(t, domain.PageHome, f.sess.Page())
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.backend.Users.Create(ctx, &domain.User{ID: "u1"})
	require.NoError(t, err)

	f.auth.EXPECT().GetSession(gomock.Any(), "good").Return(&domain.AuthSession{AccessToken: "good", UserID: "u1"}, nil)
	f.auth.EXPECT().GetSession(gomock.Any(), "bad").Return(nil, errors.New("expired"))

	require.NoError(t, f.uc.Authenticate(ctx, f.sess, "good"))
	require.NotNil(t, f.sess.CurrentUser())
	// already bound: no second lookup
	require.NoError(t, f.uc.Authenticate(ctx, f.sess, "good"))

	other := f.sessions.Open("other")
	err = f.uc.Authenticate(ctx, other, "bad")
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeTokenInvalid, appErr.Code)
}

func TestAuthenticateExpiredBinding(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.backend.Users.Create(ctx, &domain.User{ID: "u1"})
	require.NoError(t, err)

	gomock.InOrder(
		f.auth.EXPECT().GetSession(gomock.Any(), "tok").
			Return(&domain.AuthSession{AccessToken: "tok", UserID: "u1", ExpiresAt: f.clock.Now().Add(time.Hour)}, nil),
		f.auth.EXPECT().GetSession(gomock.Any(), "tok").Return(nil, errors.New("token is expired")),
	)

	require.NoError(t, f.uc.Authenticate(ctx, f.sess, "tok"))
	require.NoError(t, f.uc.Authenticate(ctx, f.sess, "tok"), "cached until expiry")

	f.clock.Advance(time.Hour)
	err = f.uc.Authenticate(ctx, f.sess, "tok")
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeTokenInvalid, appErr.Code)
	assert.Nil(t, f.sess.CurrentUser())
	assert.Empty(t, f.sess.AccessToken())
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, err := f.backend.Users.Create(ctx, &domain.User{ID: "u1", Name: "Old", InGameName: "Old", WalletBalance: 50})
	require.NoError(t, err)
	f.sess.Bind("tok", user)

	updated, err := f.uc.UpdateProfile(ctx, f.sess, usecase.ProfileUpdate{
		Name:       "New",
		InGameName: "NewTag",
		Socials:    &domain.Socials{Discord: "new#1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "NewTag", updated.InGameName)
	assert.Equal(t, 50.0, updated.WalletBalance)
	assert.Equal(t, "NewTag", f.sess.CurrentUser().InGameName)
	assert.Equal(t, "Profile updated successfully!", f.sess.Toaster().Current().Message)

	_, err = f.uc.UpdateProfile(ctx, f.sessions.Open("anon"), usecase.ProfileUpdate{Name: "x", InGameName: "y"})
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PageLogin, appErr.Redirect)
}

func TestHandleAuthEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sess.Bind("tok", nil)
	second := f.sessions.Open("second")
	second.Bind("tok", nil)
	_, err := f.backend.Users.Create(ctx, &domain.User{ID: "u1", InGameName: "Sniper"})
	require.NoError(t, err)

	f.uc.HandleAuthEvent(ctx, domain.AuthEvent{
		Type:    domain.AuthEventSignedIn,
		Session: &domain.AuthSession{AccessToken: "tok", UserID: "u1"},
	})
	require.NotNil(t, f.sess.CurrentUser())
	require.NotNil(t, second.CurrentUser())

	f.uc.HandleAuthEvent(ctx, domain.AuthEvent{
		Type:    domain.AuthEventSignedOut,
		Session: &domain.AuthSession{AccessToken: "tok"},
	})
	assert.Nil(t, f.sess.CurrentUser())
	assert.Nil(t, second.CurrentUser())
}
