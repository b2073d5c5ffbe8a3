package rest

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/auth"
)

// AuthProvider implements domain.AuthProvider over a GoTrue compatible
// /auth/v1 API. Events are published for sign-ins and sign-outs made
// through this provider.
type AuthProvider struct {
	c      *Client
	events *auth.Broadcaster
	now    func() time.Time
}

// NewAuthProvider creates a GoTrue auth provider
func NewAuthProvider(client *Client) *AuthProvider {
	return &AuthProvider{c: client, events: auth.NewBroadcaster(), now: time.Now}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// gotrueSession is the token response. Sign-up with confirmation pending
// returns the bare user object instead, so ID is read at the top level too.
type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	ExpiresAt   int64       `json:"expires_at"`
	User        *gotrueUser `json:"user"`
	ID          string      `json:"id"`
	Email       string      `json:"email"`
}

func (s *gotrueSession) userID() string {
	if s.User != nil && s.User.ID != "" {
		return s.User.ID
	}
	return s.ID
}

func (p *AuthProvider) toSession(s *gotrueSession) *domain.AuthSession {
	out := &domain.AuthSession{AccessToken: s.AccessToken, UserID: s.userID(), Email: s.Email}
	if s.User != nil && s.User.Email != "" {
		out.Email = s.User.Email
	}
	switch {
	case s.ExpiresAt > 0:
		out.ExpiresAt = time.Unix(s.ExpiresAt, 0)
	case s.ExpiresIn > 0:
		out.ExpiresAt = p.now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return out
}

// SignUp registers the account with the profile attributes as user metadata
func (p *AuthProvider) SignUp(ctx context.Context, email, password string, attrs domain.ProfileAttributes) (*domain.SignUpResult, error) {
	var resp gotrueSession
	err := p.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		body: map[string]interface{}{
			"email":    email,
			"password": password,
			"data":     attrs,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	result := &domain.SignUpResult{UserID: resp.userID()}
	if resp.AccessToken != "" {
		result.Session = p.toSession(&resp)
		p.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: result.Session})
	}
	return result, nil
}

// SignIn uses the password grant
func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	var resp gotrueSession
	err := p.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   map[string]string{"email": email, "password": password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	session := p.toSession(&resp)
	p.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedIn, Session: session})
	return session, nil
}

// SignOut revokes the access token
func (p *AuthProvider) SignOut(ctx context.Context, accessToken string) error {
	err := p.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		token:  accessToken,
	}, nil)
	if err != nil {
		return err
	}
	p.events.Publish(domain.AuthEvent{Type: domain.AuthEventSignedOut, Session: &domain.AuthSession{AccessToken: accessToken}})
	return nil
}

// GetSession resolves the user behind an access token
func (p *AuthProvider) GetSession(ctx context.Context, accessToken string) (*domain.AuthSession, error) {
	var user gotrueUser
	err := p.c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		token:  accessToken,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthSession{AccessToken: accessToken, UserID: user.ID, Email: user.Email}, nil
}

// Subscribe registers a listener for sign-in and sign-out events
func (p *AuthProvider) Subscribe(fn func(domain.AuthEvent)) func() {
	return p.events.Subscribe(fn)
}
