package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/lock"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider authenticates against credentials kept in the configured
// backend and issues its own JWT access tokens. Sign-up also writes the
// users row from the profile attributes.
type LocalProvider struct {
	credentials         domain.CredentialRepository
	users               domain.UserRepository
	jwt                 JWTService
	events              *Broadcaster
	locks               *lock.Manager
	clock               clockwork.Clock
	requireConfirmation bool
	logger              *logger.Logger

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewLocalProvider creates a local auth provider
func NewLocalProvider(
	credentials domain.CredentialRepository,
	users domain.UserRepository,
	jwt JWTService,
	locks *lock.Manager,
	clock clockwork.Clock,
	requireConfirmation bool,
	logger *logger.Logger,
) *LocalProvider {
	return &LocalProvider{
		credentials:         credentials,
		users:               users,
		jwt:                 jwt,
		events:              NewBroadcaster(),
		locks:               locks,
		clock:               clock,
		requireConfirmation: requireConfirmation,
		logger:              logger,
		revoked:             make(map[string]time.Time),
	}
}

func invalidCredentials() *domain.AppError {
	return domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid login credentials", http.StatusUnauthorized, nil)
}

func alreadyRegistered() *domain.BackendError {
	return &domain.BackendError{StatusCode: http.StatusUnprocessableEntity, Code: "user_already_exists", Message: "User already registered"}
}

// SignUp stores a credential and the matching profile row. Sign-ups for the
// same email are serialized.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string, attrs domain.ProfileAttributes) (*domain.SignUpResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	unlock, err := p.locks.Lock(ctx, lock.EmailKey(email))
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := p.credentials.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, alreadyRegistered()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	cred, err := p.credentials.Create(ctx, &domain.Credential{
		Email:        email,
		PasswordHash: string(hash),
		Confirmed:    !p.requireConfirmation,
		CreatedAt:    p.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := p.users.Create(ctx, &domain.User{
		ID:                  cred.ID,
		Name:                attrs.Name,
		Email:               email,
		Phone:               attrs.Phone,
		InGameName:          attrs.InGameName,
		PlayerUID:           attrs.PlayerUID,
		JoinedTournaments:   []string{},
		ReadNotificationIDs: []string{},
		RegistrationDate:    p.clock.Now(),
	}); err != nil {
		p.logger.Error("Failed to create profile row", zap.String("user_id", cred.ID), zap.Error(err))
	}

	result := &domain.SignUpResult{UserID: cred.ID}
	if !cred.Confirmed {
		return result, nil
	}
	session, err := p.issue(cred.ID, email)
	if err != nil {
		return nil, err
	}
	result.Session = session
	p.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: session})
	return result, nil
}

// SignIn checks the password and issues an access token
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	cred, err := p.credentials.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}
	if !cred.Confirmed {
		return nil, domain.NewAppError(domain.ErrCodeEmailNotConfirmed, "Email not confirmed", http.StatusUnauthorized, nil)
	}

	session, err := p.issue(cred.ID, cred.Email)
	if err != nil {
		return nil, err
	}
	p.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: session})
	return session, nil
}

// SignOut revokes the token until it would have expired anyway
func (p *LocalProvider) SignOut(ctx context.Context, accessToken string) error {
	claims, err := p.jwt.ValidateToken(accessToken)
	if err != nil {
		return domain.NewAppError(domain.ErrCodeTokenInvalid, "Invalid or expired token", http.StatusUnauthorized, err)
	}

	expires := p.clock.Now()
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	p.mu.Lock()
	p.revoked[claims.ID] = expires
	p.pruneLocked()
	p.mu.Unlock()

	p.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedOut, Session: sessionFrom(accessToken, claims)})
	return nil
}

// GetSession validates a token that has not been signed out
func (p *LocalProvider) GetSession(ctx context.Context, accessToken string) (*domain.AuthSession, error) {
	claims, err := p.jwt.ValidateToken(accessToken)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeTokenInvalid, "Invalid or expired token", http.StatusUnauthorized, err)
	}

	p.mu.Lock()
	_, revoked := p.revoked[claims.ID]
	p.mu.Unlock()
	if revoked {
		return nil, domain.NewAppError(domain.ErrCodeTokenInvalid, "Session has been signed out", http.StatusUnauthorized, nil)
	}
	return sessionFrom(accessToken, claims), nil
}

// Subscribe registers a listener for sign-in and sign-out events
func (p *LocalProvider) Subscribe(fn func(domain.AuthEvent)) func() {
	return p.events.Subscribe(fn)
}

func (p *LocalProvider) issue(userID, email string) (*domain.AuthSession, error) {
	token, claims, err := p.jwt.GenerateToken(userID, email)
	if err != nil {
		return nil, domain.NewInternalError("failed to issue token", err)
	}
	return sessionFrom(token, claims), nil
}

// pruneLocked drops revocations of tokens that are expired by now
func (p *LocalProvider) pruneLocked() {
	now := p.clock.Now()
	for id, exp := range p.revoked {
		if now.After(exp) {
			delete(p.revoked, id)
		}
	}
}

func sessionFrom(token string, claims *Claims) *domain.AuthSession {
	s := &domain.AuthSession{AccessToken: token, UserID: claims.UserID, Email: claims.Email}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}
