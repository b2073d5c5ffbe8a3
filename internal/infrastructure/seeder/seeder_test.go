package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/infrastructure/auth"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/memory"
	"github.com/saradorri/tournamenthub/internal/infrastructure/lock"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	b := memory.New()
	jwt := auth.NewJWTService(&config.JWTConfig{Secret: "seed", Expiry: time.Hour}, clock)
	provider := auth.NewLocalProvider(b.Credentials, b.Users, jwt, lock.NewManager(0, logger.NewNop()), clock, false, logger.NewNop())

	s := NewSeeder(provider, Repositories{
		Users:         b.Users,
		Tournaments:   b.Tournaments,
		Notifications: b.Notifications,
		Settings:      b.Settings,
		Credentials:   b.Credentials,
	}, clock)

	accounts := []Account{
		{Email: "admin@example.com", Password: "admin123", Name: "Admin", InGameName: "HubAdmin", Admin: true},
		{Email: "player@example.com", Password: "player123", Name: "Player", InGameName: "PlayerOne"},
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, s.SeedAccounts(ctx, accounts))
		require.NoError(t, s.SeedTournaments(ctx))
		require.NoError(t, s.SeedSettings(ctx))
		require.NoError(t, s.SeedWelcome(ctx))
	}

	users, err := b.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	admins := 0
	for _, u := range users {
		if u.IsAdmin {
			admins++
			assert.Equal(t, "admin@example.com", u.Email)
		}
	}
	assert.Equal(t, 1, admins)

	tournaments, err := b.Tournaments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tournaments, 3)

	settings, err := b.Settings.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "FF HUB", settings.AppName)

	notifications, err := b.Notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)

	_, err = provider.SignIn(ctx, "admin@example.com", "admin123")
	assert.NoError(t, err)
}
