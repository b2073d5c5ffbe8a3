package seeder

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
)

// Repositories are the collections the seeder writes to
type Repositories struct {
	Users         domain.UserRepository
	Tournaments   domain.TournamentRepository
	Notifications domain.NotificationRepository
	Settings      domain.SettingsRepository
	Credentials   domain.CredentialRepository
}

// Seeder handles database seeding operations
type Seeder struct {
	auth  domain.AuthProvider
	repos Repositories
	clock clockwork.Clock
}

// NewSeeder creates a new seeder instance
func NewSeeder(auth domain.AuthProvider, repos Repositories, clock clockwork.Clock) *Seeder {
	return &Seeder{
		auth:  auth,
		repos: repos,
		clock: clock,
	}
}

// Account is a login created by the seeder
type Account struct {
	Email      string
	Password   string
	Name       string
	InGameName string
	Admin      bool
}

// SeedAccounts signs up each account that has no credential yet and marks
// admins.
func (s *Seeder) SeedAccounts(ctx context.Context, accounts []Account) error {
	log.Printf("Seeding accounts...")

	for _, a := range accounts {
		existing, err := s.repos.Credentials.GetByEmail(ctx, a.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Printf("Account %s already exists, skipping.", a.Email)
			continue
		}

		res, err := s.auth.SignUp(ctx, a.Email, a.Password, domain.ProfileAttributes{
			Name:       a.Name,
			InGameName: a.InGameName,
		})
		if err != nil {
			log.Printf("Error creating account %s.", a.Email)
			return err
		}
		if a.Admin {
			if _, err := s.repos.Users.Update(ctx, res.UserID, domain.Fields{"is_admin": true}); err != nil {
				return err
			}
		}
		log.Printf("Successfully created account %s.", a.Email)
	}

	log.Printf("Account seeding completed successfully")
	return nil
}

// SeedTournaments creates demo tournaments when none exist
func (s *Seeder) SeedTournaments(ctx context.Context) error {
	existing, err := s.repos.Tournaments.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Tournaments already exist, skipping.")
		return nil
	}

	now := s.clock.Now().UTC().Truncate(time.Hour)
	tournaments := []*domain.Tournament{
		{Name: "Daily Solo Clash", Type: domain.TournamentTypeSolo, EntryFee: 20, PrizePool: 500, MapName: "Bermuda", StartTime: now.Add(6 * time.Hour), MaxPlayers: 48},
		{Name: "Duo Showdown", Type: domain.TournamentTypeDuo, EntryFee: 50, PrizePool: 1500, MapName: "Purgatory", StartTime: now.Add(30 * time.Hour), MaxPlayers: 48},
		{Name: "Squad Cup", Type: domain.TournamentTypeSquad, EntryFee: 100, PrizePool: 5000, MapName: "Kalahari", StartTime: now.Add(72 * time.Hour), MaxPlayers: 48},
	}
	for _, t := range tournaments {
		t.Participants = []string{}
		if _, err := s.repos.Tournaments.Create(ctx, t); err != nil {
			return err
		}
		log.Printf("Created tournament %s.", t.Name)
	}
	return nil
}

// SeedSettings writes the default settings row when none exists
func (s *Seeder) SeedSettings(ctx context.Context) error {
	existing, err := s.repos.Settings.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("Settings already exist, skipping.")
		return nil
	}
	_, err = s.repos.Settings.Create(ctx, domain.DefaultAppSettings())
	return err
}

// SeedWelcome broadcasts a welcome notification when none exist
func (s *Seeder) SeedWelcome(ctx context.Context) error {
	existing, err := s.repos.Notifications.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = s.repos.Notifications.Create(ctx, &domain.Notification{
		Title:   "Welcome",
		Message: "Join a tournament from the home page. Deposits are credited once an admin approves them.",
		Date:    s.clock.Now().UTC(),
	})
	return err
}
