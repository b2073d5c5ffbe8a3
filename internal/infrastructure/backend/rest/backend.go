package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/saradorri/tournamenthub/internal/domain"
)

// Backend groups the repositories served by a PostgREST endpoint
type Backend struct {
	Users         *UserRepository
	Tournaments   *TournamentRepository
	Transactions  *TransactionRepository
	Notifications *NotificationRepository
	Settings      *SettingsRepository
	Credentials   *CredentialRepository
}

// New creates the repositories over client
func New(client *Client) *Backend {
	return &Backend{
		Users:         &UserRepository{t: newTable[domain.User](client, "users")},
		Tournaments:   &TournamentRepository{t: newTable[domain.Tournament](client, "tournaments")},
		Transactions:  &TransactionRepository{t: newTable[domain.Transaction](client, "transactions")},
		Notifications: &NotificationRepository{t: newTable[domain.Notification](client, "notifications")},
		Settings:      &SettingsRepository{t: newTable[domain.AppSettings](client, "app_settings")},
		Credentials:   &CredentialRepository{t: newTable[domain.Credential](client, "credentials")},
	}
}

// UserRepository implements domain.UserRepository
type UserRepository struct {
	t *table[domain.User]
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.t.list(ctx, "")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.t.get(ctx, id)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.t.insert(ctx, user)
}

func (r *UserRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.User, error) {
	return r.t.update(ctx, id, fields)
}

// TournamentRepository implements domain.TournamentRepository
type TournamentRepository struct {
	t *table[domain.Tournament]
}

func (r *TournamentRepository) List(ctx context.Context) ([]*domain.Tournament, error) {
	return r.t.list(ctx, "start_time.asc")
}

func (r *TournamentRepository) Create(ctx context.Context, tournament *domain.Tournament) (*domain.Tournament, error) {
	return r.t.insert(ctx, tournament)
}

func (r *TournamentRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Tournament, error) {
	return r.t.update(ctx, id, fields)
}

func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	t *table[domain.Transaction]
}

func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	return r.t.list(ctx, "date.desc")
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	return r.t.insert(ctx, transaction)
}

func (r *TransactionRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Transaction, error) {
	return r.t.update(ctx, id, fields)
}

// NotificationRepository implements domain.NotificationRepository
type NotificationRepository struct {
	t *table[domain.Notification]
}

func (r *NotificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	return r.t.list(ctx, "date.desc")
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	return r.t.insert(ctx, notification)
}

// SettingsRepository implements domain.SettingsRepository
type SettingsRepository struct {
	t *table[domain.AppSettings]
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	return r.t.find(ctx, url.Values{})
}

func (r *SettingsRepository) Create(ctx context.Context, settings *domain.AppSettings) (*domain.AppSettings, error) {
	return r.t.insert(ctx, settings)
}

func (r *SettingsRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.AppSettings, error) {
	return r.t.update(ctx, id, fields)
}

// CredentialRepository implements domain.CredentialRepository
type CredentialRepository struct {
	t *table[domain.Credential]
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	return r.t.find(ctx, url.Values{"email": {"ilike." + strings.ToLower(email)}})
}

func (r *CredentialRepository) Create(ctx context.Context, credential *domain.Credential) (*domain.Credential, error) {
	row, err := r.t.insert(ctx, credential)
	if be, ok := domain.IsBackendError(err); ok && be.StatusCode == http.StatusConflict {
		return nil, &domain.BackendError{StatusCode: http.StatusUnprocessableEntity, Code: "user_already_exists", Message: "User already registered"}
	}
	return row, err
}
