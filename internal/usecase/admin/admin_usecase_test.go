package admin

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T, now time.Time) (*AdminUseCase, *state.Store, *state.Session) {
	log := logger.NewLogger("test", "debug")
	catalog := i18n.New(log)
	_, err := catalog.Load("en")
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(now)
	store := state.NewStore()
	uc := NewAdminUseCase(store, usecase.NewFeedback(log, catalog), clock).(*AdminUseCase)
	return uc, store, state.NewSession("admin", clock, time.Minute, "en")
}

func TestStats(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc, store, sess := newUseCase(t, now)

	store.PutUser(&domain.User{ID: "u1", InGameName: "Sniper", WalletBalance: 150, RegistrationDate: now.Add(-72 * time.Hour)})
	store.PutUser(&domain.User{ID: "u2", InGameName: "Rusher", WalletBalance: 50, RegistrationDate: now.Add(-30 * time.Second)})
	store.PutUser(&domain.User{ID: "a1", InGameName: "Boss", IsAdmin: true, RegistrationDate: now.Add(-400 * 24 * time.Hour)})
	store.PutTournament(&domain.Tournament{ID: "t1", EntryFee: 20, Participants: []string{"u1", "u2"}})
	store.PutTournament(&domain.Tournament{ID: "t2", EntryFee: 50, Participants: []string{"u1"}})
	store.PutTransaction(&domain.Transaction{ID: "x1", UserID: "u1", Amount: 200, Status: domain.TransactionStatusApproved, Date: now.Add(-2 * time.Hour)})
	store.PutTransaction(&domain.Transaction{ID: "x2", UserID: "gone", Amount: 75, Status: domain.TransactionStatusApproved, Date: now.Add(-10 * time.Minute)})
	store.PutTransaction(&domain.Transaction{ID: "x3", UserID: "u2", Amount: 10, Status: domain.TransactionStatusPending, Date: now})
	store.PutTransaction(&domain.Transaction{ID: "x4", UserID: "u2", Amount: 10, Status: domain.TransactionStatusRejected, Date: now})

	stats := uc.Stats(sess)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.PendingTransactions)
	assert.Equal(t, 2, stats.ActiveTournaments)
	assert.Equal(t, 2, stats.UsersInTournaments)
	assert.Equal(t, 90.0, stats.TotalRevenue)
	assert.Equal(t, 200.0, stats.TotalUserFunds)

	require.Len(t, stats.RecentActivity, 5)
	ids := make([]string, 0, 5)
	for _, a := range stats.RecentActivity {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"reg-u2", "dep-x2", "dep-x1", "reg-u1", "reg-a1"}, ids)

	assert.Equal(t, "Rusher registered", stats.RecentActivity[0].Message)
	assert.Equal(t, "just now", stats.RecentActivity[0].Ago)
	assert.Equal(t, "A user deposited ৳75", stats.RecentActivity[1].Message)
	assert.Equal(t, "10 minutes ago", stats.RecentActivity[1].Ago)
	assert.Equal(t, "2 hours ago", stats.RecentActivity[2].Ago)
	assert.Equal(t, "3 days ago", stats.RecentActivity[3].Ago)
	assert.Equal(t, "1 years ago", stats.RecentActivity[4].Ago)
}

func TestStatsLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc, store, sess := newUseCase(t, now)
	for i := 0; i < 8; i++ {
		store.PutUser(&domain.User{ID: string(rune('a' + i)), RegistrationDate: now.Add(-time.Duration(i) * time.Hour)})
	}
	assert.Len(t, uc.Stats(sess).RecentActivity, RecentActivityLimit)
}

func TestTimeSinceBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc, _, sess := newUseCase(t, now)

	tests := []struct {
		age  time.Duration
		want string
	}{
		{0, "just now"},
		{60 * time.Second, "just now"},
		{61 * time.Second, "1 minutes ago"},
		{time.Hour, "60 minutes ago"},
		{25 * time.Hour, "1 days ago"},
		{31 * 24 * time.Hour, "1 months ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, uc.timeSince(sess, now.Add(-tt.age), now), tt.age.String())
	}
}
