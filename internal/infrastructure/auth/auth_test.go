package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/memory"
	"github.com/saradorri/tournamenthub/internal/infrastructure/lock"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(requireConfirmation bool) (*LocalProvider, *memory.Backend, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	backend := memory.New()
	jwt := NewJWTService(&config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}, clock)
	p := NewLocalProvider(backend.Credentials, backend.Users, jwt, lock.NewManager(time.Second, logger.NewNop()), clock, requireConfirmation, logger.NewNop())
	return p, backend, clock
}

func TestJWTService(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := NewJWTService(&config.JWTConfig{Secret: "s", Expiry: time.Minute}, clock)

	token, claims, err := svc.GenerateToken("u1", "p@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	userID, err := svc.ExtractUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	clock.Advance(2 * time.Minute)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "other", Expiry: time.Minute}, clock)
	fresh, _, err := other.GenerateToken("u1", "p@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(fresh)
	assert.Error(t, err)
}

func TestSignUpSignInSignOut(t *testing.T) {
	ctx := context.Background()
	p, backend, _ := newProvider(false)

	var mu sync.Mutex
	var events []domain.AuthEventType
	unsubscribe := p.Subscribe(func(e domain.AuthEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e.Type)
	})
	defer unsubscribe()

	res, err := p.SignUp(ctx, "P@Example.com", "secret1", domain.ProfileAttributes{Name: "Player", InGameName: "Sniper"})
	require.NoError(t, err)
	require.NotNil(t, res.Session)

	profile, err := backend.Users.GetByID(ctx, res.UserID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Sniper", profile.InGameName)
	assert.Equal(t, "p@example.com", profile.Email)
	assert.Zero(t, profile.WalletBalance)

	_, err = p.SignIn(ctx, "p@example.com", "wrong")
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeInvalidCredentials, appErr.Code)

	session, err := p.SignIn(ctx, "p@example.com", "secret1")
	require.NoError(t, err)
	got, err := p.GetSession(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, got.UserID)

	require.NoError(t, p.SignOut(ctx, session.AccessToken))
	_, err = p.GetSession(ctx, session.AccessToken)
	assert.Error(t, err)

	// the sign-up token is independent of the signed-out one
	_, err = p.GetSession(ctx, res.Session.AccessToken)
	assert.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.AuthEventType{domain.AuthEventSignedIn, domain.AuthEventSignedIn, domain.AuthEventSignedOut}, events)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newProvider(false)
	_, err := p.SignUp(ctx, "p@example.com", "secret1", domain.ProfileAttributes{})
	require.NoError(t, err)

	_, err = p.SignUp(ctx, "P@EXAMPLE.COM", "secret2", domain.ProfileAttributes{})
	be, ok := domain.IsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, "User already registered", be.Message)
}

func TestConcurrentSignUpSameEmail(t *testing.T) {
	p, backend, _ := newProvider(false)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.SignUp(context.Background(), "race@example.com", "secret1", domain.ProfileAttributes{Name: "Racer"}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	users, err := backend.Users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSignUpWithConfirmation(t *testing.T) {
	ctx := context.Background()
	p, _, _ := newProvider(true)

	res, err := p.SignUp(ctx, "p@example.com", "secret1", domain.ProfileAttributes{})
	require.NoError(t, err)
	assert.Nil(t, res.Session)

	_, err = p.SignIn(ctx, "p@example.com", "secret1")
	appErr, ok := domain.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeEmailNotConfirmed, appErr.Code)
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	calls := 0
	unsubscribe := b.Subscribe(func(domain.AuthEvent) { calls++ })
	b.Publish(domain.AuthEvent{Type: domain.AuthEventSignedOut})
	unsubscribe()
	unsubscribe()
	b.Publish(domain.AuthEvent{Type: domain.AuthEventSignedOut})
	assert.Equal(t, 1, calls)
}
