package memory

import (
	"context"
	"testing"
	"time"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	b := New()

	created, err := b.Users.Create(ctx, &domain.User{
		Name:              "Rahim",
		Email:             "rahim@example.com",
		WalletBalance:     50,
		JoinedTournaments: []string{},
		RegistrationDate:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := b.Users.Update(ctx, created.ID, domain.Fields{
		domain.FieldWalletBalance:     30.0,
		domain.FieldJoinedTournaments: []string{"t1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.WalletBalance)
	assert.Equal(t, []string{"t1"}, []string(updated.JoinedTournaments))
	assert.Equal(t, "Rahim", updated.Name, "columns not in the update are kept")
	assert.True(t, created.RegistrationDate.Equal(updated.RegistrationDate))

	got, err := b.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	missing, err := b.Users.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = b.Users.Update(ctx, "nope", domain.Fields{domain.FieldWalletBalance: 1.0})
	assert.ErrorIs(t, err, domain.ErrRowNotFound)
}

func TestRowsAreIsolated(t *testing.T) {
	ctx := context.Background()
	b := New()

	in := &domain.Tournament{Name: "Cup", Participants: []string{"u1"}}
	created, err := b.Tournaments.Create(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, in.ID, "the caller's row is not mutated")

	created.Participants[0] = "mutated"
	list, err := b.Tournaments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"u1"}, []string(list[0].Participants))
}

func TestDuplicateID(t *testing.T) {
	ctx := context.Background()
	b := New()

	_, err := b.Notifications.Create(ctx, &domain.Notification{ID: "n1", Title: "a"})
	require.NoError(t, err)
	_, err = b.Notifications.Create(ctx, &domain.Notification{ID: "n1", Title: "b"})

	be, ok := domain.IsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, 409, be.StatusCode)
}

func TestTournamentDelete(t *testing.T) {
	ctx := context.Background()
	b := New()

	a, _ := b.Tournaments.Create(ctx, &domain.Tournament{Name: "A"})
	_, _ = b.Tournaments.Create(ctx, &domain.Tournament{Name: "B"})

	require.NoError(t, b.Tournaments.Delete(ctx, a.ID))
	require.NoError(t, b.Tournaments.Delete(ctx, "unknown"))

	list, _ := b.Tournaments.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Name)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	b := New()

	none, err := b.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	created, err := b.Settings.Create(ctx, domain.DefaultAppSettings())
	require.NoError(t, err)

	updated, err := b.Settings.Update(ctx, created.ID, domain.Fields{
		domain.FieldAppName: "Arena",
		domain.FieldTheme: domain.Theme{
			Colors: domain.ThemeColors{Primary: "#000000"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Arena", updated.AppName)
	assert.Equal(t, "#000000", updated.Theme.Colors.Primary)
	assert.Len(t, updated.PaymentGateways, 4)
}

func TestCredentialRepository(t *testing.T) {
	ctx := context.Background()
	b := New()

	_, err := b.Credentials.Create(ctx, &domain.Credential{ID: "u1", Email: "Player@Example.com", PasswordHash: "x"})
	require.NoError(t, err)

	got, err := b.Credentials.GetByEmail(ctx, "player@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	_, err = b.Credentials.Create(ctx, &domain.Credential{ID: "u2", Email: "player@example.com"})
	assert.Error(t, err)
}
