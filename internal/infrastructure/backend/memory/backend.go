// Package memory is a process-local backend driver for development and tests.
package memory

import (
	"context"
	"strings"

	"github.com/saradorri/tournamenthub/internal/domain"
)

// Backend holds one table per collection
type Backend struct {
	Users         *UserRepository
	Tournaments   *TournamentRepository
	Transactions  *TransactionRepository
	Notifications *NotificationRepository
	Settings      *SettingsRepository
	Credentials   *CredentialRepository
}

// New creates an empty backend
func New() *Backend {
	return &Backend{
		Users:         &UserRepository{t: newTable[domain.User]("users")},
		Tournaments:   &TournamentRepository{t: newTable[domain.Tournament]("tournaments")},
		Transactions:  &TransactionRepository{t: newTable[domain.Transaction]("transactions")},
		Notifications: &NotificationRepository{t: newTable[domain.Notification]("notifications")},
		Settings:      &SettingsRepository{t: newTable[domain.AppSettings]("app_settings")},
		Credentials:   &CredentialRepository{t: newTable[domain.Credential]("credentials")},
	}
}

// UserRepository implements domain.UserRepository
type UserRepository struct {
	t *table[domain.User, *domain.User]
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.t.list()
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.t.get(id)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.t.insert(user)
}

func (r *UserRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.User, error) {
	return r.t.update(id, fields)
}

// TournamentRepository implements domain.TournamentRepository
type TournamentRepository struct {
	t *table[domain.Tournament, *domain.Tournament]
}

func (r *TournamentRepository) List(ctx context.Context) ([]*domain.Tournament, error) {
	return r.t.list()
}

func (r *TournamentRepository) Create(ctx context.Context, tournament *domain.Tournament) (*domain.Tournament, error) {
	return r.t.insert(tournament)
}

func (r *TournamentRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Tournament, error) {
	return r.t.update(id, fields)
}

func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	r.t.delete(id)
	return nil
}

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	t *table[domain.Transaction, *domain.Transaction]
}

func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	return r.t.list()
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	return r.t.insert(transaction)
}

func (r *TransactionRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Transaction, error) {
	return r.t.update(id, fields)
}

// NotificationRepository implements domain.NotificationRepository
type NotificationRepository struct {
	t *table[domain.Notification, *domain.Notification]
}

func (r *NotificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	return r.t.list()
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	return r.t.insert(notification)
}

// SettingsRepository implements domain.SettingsRepository
type SettingsRepository struct {
	t *table[domain.AppSettings, *domain.AppSettings]
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	return r.t.first()
}

func (r *SettingsRepository) Create(ctx context.Context, settings *domain.AppSettings) (*domain.AppSettings, error) {
	return r.t.insert(settings)
}

func (r *SettingsRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.AppSettings, error) {
	return r.t.update(id, fields)
}

// CredentialRepository implements domain.CredentialRepository
type CredentialRepository struct {
	t *table[domain.Credential, *domain.Credential]
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	return r.t.find(func(c *domain.Credential) bool {
		return strings.EqualFold(c.Email, email)
	})
}

func (r *CredentialRepository) Create(ctx context.Context, credential *domain.Credential) (*domain.Credential, error) {
	if existing, _ := r.GetByEmail(ctx, credential.Email); existing != nil {
		return nil, &domain.BackendError{StatusCode: 422, Code: "user_already_exists", Message: "User already registered"}
	}
	return r.t.insert(credential)
}
