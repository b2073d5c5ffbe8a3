package admin

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// RecentActivityLimit is the number of dashboard activity entries
const RecentActivityLimit = 5

const unknownUser = "A user"

// AdminUseCase implements usecase.AdminUseCase
type AdminUseCase struct {
	store    *state.Store
	feedback *usecase.Feedback
	clock    clockwork.Clock
}

// NewAdminUseCase creates a new admin dashboard use case
func NewAdminUseCase(store *state.Store, feedback *usecase.Feedback, clock clockwork.Clock) usecase.AdminUseCase {
	return &AdminUseCase{store: store, feedback: feedback, clock: clock}
}

// Stats computes the dashboard figures from the snapshot
func (uc *AdminUseCase) Stats(sess *state.Session) *usecase.DashboardStats {
	users := uc.store.Users()
	tournaments := uc.store.Tournaments()
	transactions := uc.store.Transactions()

	stats := &usecase.DashboardStats{
		TotalUsers:        len(users),
		ActiveTournaments: len(tournaments),
	}

	participants := make(map[string]struct{})
	for _, t := range tournaments {
		for _, id := range t.Participants {
			participants[id] = struct{}{}
		}
		stats.TotalRevenue += t.EntryFee * float64(len(t.Participants))
	}
	stats.UsersInTournaments = len(participants)

	for _, u := range users {
		stats.TotalUserFunds += u.WalletBalance
	}
	for _, tx := range transactions {
		if tx.Status == domain.TransactionStatusPending {
			stats.PendingTransactions++
		}
	}

	stats.RecentActivity = uc.recentActivity(sess, users, transactions)
	return stats
}

func (uc *AdminUseCase) recentActivity(sess *state.Session, users []*domain.User, transactions []*domain.Transaction) []usecase.Activity {
	names := make(map[string]string, len(users))
	activities := make([]usecase.Activity, 0, len(users))
	for _, u := range users {
		names[u.ID] = u.InGameName
		activities = append(activities, usecase.Activity{
			ID:      "reg-" + u.ID,
			Type:    usecase.ActivityRegistration,
			Date:    u.RegistrationDate,
			Message: uc.feedback.T(sess, "userRegistered", map[string]interface{}{"inGameName": u.InGameName}),
		})
	}

	for _, tx := range transactions {
		if tx.Status != domain.TransactionStatusApproved {
			continue
		}
		name, ok := names[tx.UserID]
		if !ok || name == "" {
			name = unknownUser
		}
		activities = append(activities, usecase.Activity{
			ID:   "dep-" + tx.ID,
			Type: usecase.ActivityDeposit,
			Date: tx.Date,
			Message: uc.feedback.T(sess, "userDeposited", map[string]interface{}{
				"inGameName": name,
				"amount":     tx.Amount,
			}),
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > RecentActivityLimit {
		activities = activities[:RecentActivityLimit]
	}

	now := uc.clock.Now()
	for i := range activities {
		activities[i].Ago = uc.timeSince(sess, activities[i].Date, now)
	}
	return activities
}

var agoUnits = []struct {
	seconds float64
	key     string
}{
	{31536000, "yearsAgo"},
	{2592000, "monthsAgo"},
	{86400, "daysAgo"},
	{3600, "hoursAgo"},
	{60, "minutesAgo"},
}

// timeSince renders the age of date in the largest unit that is more than one
func (uc *AdminUseCase) timeSince(sess *state.Session, date, now time.Time) string {
	seconds := math.Floor(now.Sub(date).Seconds())
	for _, unit := range agoUnits {
		if interval := seconds / unit.seconds; interval > 1 {
			return strconv.Itoa(int(interval)) + " " + uc.feedback.T(sess, unit.key, nil)
		}
	}
	return uc.feedback.T(sess, "justNow", nil)
}
