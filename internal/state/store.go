// Package state holds the process-wide domain snapshot and the per-client
// session view state. All reads return copies; all writes replace whole rows.
package state

import (
	"context"
	"sync"

	"github.com/saradorri/tournamenthub/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Sources are the backend collections the store is loaded from
type Sources struct {
	Users         domain.UserRepository
	Tournaments   domain.TournamentRepository
	Transactions  domain.TransactionRepository
	Notifications domain.NotificationRepository
	Settings      domain.SettingsRepository
}

// Store is the in-memory snapshot of every backend collection
type Store struct {
	mu            sync.RWMutex
	loaded        bool
	users         []*domain.User
	tournaments   []*domain.Tournament
	transactions  []*domain.Transaction
	notifications []*domain.Notification
	settings      *domain.AppSettings
}

// NewStore returns an empty store with default settings
func NewStore() *Store {
	return &Store{settings: domain.DefaultAppSettings()}
}

// Load fetches all five collections concurrently and replaces the snapshot.
// A missing settings row keeps the defaults. On any error nothing is replaced.
func (s *Store) Load(ctx context.Context, src Sources) error {
	var (
		users         []*domain.User
		tournaments   []*domain.Tournament
		transactions  []*domain.Transaction
		notifications []*domain.Notification
		settings      *domain.AppSettings
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = src.Users.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		tournaments, err = src.Tournaments.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = src.Transactions.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		notifications, err = src.Notifications.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		settings, err = src.Settings.Get(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.tournaments = tournaments
	s.transactions = transactions
	s.notifications = notifications
	if settings != nil {
		s.settings = settings
	}
	s.loaded = true
	return nil
}

// Loaded reports whether the initial load completed
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Users returns copies of all users
func (s *Store) Users() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// User returns a copy of the user with the given id
func (s *Store) User(id string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return nil, false
}

// PutUser replaces the user row with the same id, or appends it
func (s *Store) PutUser(user *domain.User) {
	c := user.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == c.ID {
			s.users[i] = c
			return
		}
	}
	s.users = append(s.users, c)
}

// Tournaments returns copies of all tournaments
func (s *Store) Tournaments() []*domain.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Tournament, len(s.tournaments))
	for i, t := range s.tournaments {
		out[i] = t.Clone()
	}
	return out
}

// Tournament returns a copy of the tournament with the given id
func (s *Store) Tournament(id string) (*domain.Tournament, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tournaments {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return nil, false
}

// PutTournament replaces the tournament row with the same id. Unknown rows
// are prepended.
func (s *Store) PutTournament(tournament *domain.Tournament) {
	c := tournament.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tournaments {
		if t.ID == c.ID {
			s.tournaments[i] = c
			return
		}
	}
	s.tournaments = append([]*domain.Tournament{c}, s.tournaments...)
}

// RemoveTournament drops the tournament with the given id
func (s *Store) RemoveTournament(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tournaments[:0]
	for _, t := range s.tournaments {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tournaments = kept
}

// Transactions returns copies of all transactions
func (s *Store) Transactions() []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Transaction, len(s.transactions))
	for i, t := range s.transactions {
		out[i] = t.Clone()
	}
	return out
}

// Transaction returns a copy of the transaction with the given id
func (s *Store) Transaction(id string) (*domain.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return nil, false
}

// PutTransaction replaces the transaction row with the same id. Unknown rows
// are prepended.
func (s *Store) PutTransaction(tx *domain.Transaction) {
	c := tx.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == c.ID {
			s.transactions[i] = c
			return
		}
	}
	s.transactions = append([]*domain.Transaction{c}, s.transactions...)
}

// Notifications returns copies of all notifications in insertion order
func (s *Store) Notifications() []*domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Notification, len(s.notifications))
	for i, n := range s.notifications {
		out[i] = n.Clone()
	}
	return out
}

// NotificationIDs returns the ids of all notifications currently known
func (s *Store) NotificationIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.notifications))
	for i, n := range s.notifications {
		ids[i] = n.ID
	}
	return ids
}

// AppendNotification adds a notification at the end
func (s *Store) AppendNotification(n *domain.Notification) {
	c := n.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, c)
}

// Settings returns a copy of the current settings
func (s *Store) Settings() *domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// SetSettings replaces the settings
func (s *Store) SetSettings(settings *domain.AppSettings) {
	c := settings.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = c
}
