package ranking

import (
	"sort"

	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// DefaultLimit is the leaderboard size when none is requested
const DefaultLimit = 10

// RankingUseCase implements usecase.RankingUseCase
type RankingUseCase struct {
	store *state.Store
}

// NewRankingUseCase creates a new leaderboard use case
func NewRankingUseCase(store *state.Store) usecase.RankingUseCase {
	return &RankingUseCase{store: store}
}

// Leaderboard ranks non-admin players by wallet balance, highest first
func (uc *RankingUseCase) Leaderboard(sess *state.Session, limit int) []usecase.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var currentID string
	if sess != nil {
		if u := sess.CurrentUser(); u != nil {
			currentID = u.ID
		}
	}

	players := uc.store.Users()
	n := 0
	for _, u := range players {
		if !u.IsAdmin {
			players[n] = u
			n++
		}
	}
	players = players[:n]
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].WalletBalance > players[j].WalletBalance
	})
	if len(players) > limit {
		players = players[:limit]
	}

	entries := make([]usecase.LeaderboardEntry, len(players))
	for i, u := range players {
		entries[i] = usecase.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.ID,
			InGameName:    u.InGameName,
			AvatarURL:     u.AvatarURL,
			WalletBalance: u.WalletBalance,
			IsCurrentUser: u.ID == currentID,
		}
	}
	return entries
}
