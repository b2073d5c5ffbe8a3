package domain

import (
	"context"
	"time"
)

// ProfileAttributes are the sign-up fields copied into the users row
type ProfileAttributes struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	InGameName string `json:"in_game_name"`
	PlayerUID  string `json:"player_uid"`
}

// AuthSession is an authenticated session issued by the auth provider
type AuthSession struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SignUpResult carries the new account id. Session is nil when email
// confirmation is required before the first sign-in.
type SignUpResult struct {
	UserID  string
	Session *AuthSession
}

// AuthEventType is the kind of session change reported by the provider
type AuthEventType string

const (
	AuthEventSignedIn  AuthEventType = "SIGNED_IN"
	AuthEventSignedOut AuthEventType = "SIGNED_OUT"
)

// AuthEvent is a session change notification
type AuthEvent struct {
	Type    AuthEventType
	Session *AuthSession
}

// AuthProvider defines the authentication boundary
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string, attrs ProfileAttributes) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
	GetSession(ctx context.Context, accessToken string) (*AuthSession, error)
	Subscribe(fn func(AuthEvent)) (unsubscribe func())
}

// Credential is a locally stored login for the local auth provider
type Credential struct {
	ID           string    `json:"id,omitempty" gorm:"primaryKey;column:id;type:uuid"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"password_hash" gorm:"type:varchar(255);not null"`
	Confirmed    bool      `json:"confirmed" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for Credential
func (c Credential) TableName() string {
	return "credentials"
}

// RowID returns the row identifier
func (c *Credential) RowID() string { return c.ID }

// AssignID sets the row identifier
func (c *Credential) AssignID(id string) { c.ID = id }

// CredentialRepository stores local logins. The credential id equals the users row id.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	Create(ctx context.Context, credential *Credential) (*Credential, error)
}
