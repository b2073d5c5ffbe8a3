// Package usecase declares the operations the HTTP surface drives and the
// result types they return. Implementations live in the sub-packages.
package usecase

import (
	"context"
	"time"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/state"
)

// JoinOutcome reports how far a join got
type JoinOutcome string

const (
	// JoinOutcomeJoined both writes succeeded
	JoinOutcomeJoined JoinOutcome = "joined"
	// JoinOutcomeDebitFailed the user update failed, nothing changed
	JoinOutcomeDebitFailed JoinOutcome = "debit_failed"
	// JoinOutcomeParticipantFailed the user was debited but the tournament
	// update failed; the debit is not compensated
	JoinOutcomeParticipantFailed JoinOutcome = "participant_failed"
)

// JoinIntent is a join that passed every precondition
type JoinIntent struct {
	User       *domain.User
	Tournament *domain.Tournament
}

// JoinResult is the outcome of applying a JoinIntent
type JoinResult struct {
	Outcome    JoinOutcome        `json:"outcome"`
	User       *domain.User       `json:"user,omitempty"`
	Tournament *domain.Tournament `json:"tournament,omitempty"`
}

// ReviewResult is the outcome of an admin decision on a deposit claim
type ReviewResult struct {
	Transaction *domain.Transaction `json:"transaction"`
	// Owner is the credited user row, set only when the credit was written
	Owner *domain.User `json:"owner,omitempty"`
	// CreditSkipped is set when an approval found no owner in the snapshot
	CreditSkipped bool `json:"credit_skipped"`
}

// TournamentCard is a tournament as listed for a viewer
type TournamentCard struct {
	*domain.Tournament
	IsJoined bool `json:"is_joined"`
	IsFull   bool `json:"is_full"`
}

// ParticipantEntry is a player shown on a tournament detail page
type ParticipantEntry struct {
	ID         string `json:"id"`
	InGameName string `json:"in_game_name"`
}

// TournamentDetail is the detail page of a tournament for a viewer
type TournamentDetail struct {
	Tournament   *domain.Tournament `json:"tournament"`
	Room         domain.RoomAccess  `json:"room"`
	IsJoined     bool               `json:"is_joined"`
	IsFull       bool               `json:"is_full"`
	Participants []ParticipantEntry `json:"participants"`
}

// TournamentInput holds the admin-editable tournament fields
type TournamentInput struct {
	Name        string                `json:"name"`
	Type        domain.TournamentType `json:"type"`
	EntryFee    float64               `json:"entry_fee"`
	PrizePool   float64               `json:"prize_pool"`
	MapName     string                `json:"map_name"`
	StartTime   time.Time             `json:"start_time"`
	MaxPlayers  int                   `json:"max_players"`
	ImageURL    string                `json:"image_url"`
	RoomDetails *domain.RoomDetails   `json:"room_details,omitempty"`
}

// DepositClaim is a user's report of an external payment
type DepositClaim struct {
	Gateway      string  `json:"gateway"`
	Amount       float64 `json:"amount"`
	TrxID        string  `json:"trx_id"`
	SenderNumber string  `json:"sender_number"`
}

// Inbox is the notification list with the viewer's unread count
type Inbox struct {
	Notifications []*domain.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// RegisterInput holds the sign-up form
type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	InGameName string `json:"in_game_name"`
	PlayerUID  string `json:"player_uid"`
}

// RegisterResult reports which sign-up branch was taken
type RegisterResult struct {
	UserID               string `json:"user_id"`
	ConfirmationRequired bool   `json:"confirmation_required"`
	ProfileSyncPending   bool   `json:"profile_sync_pending"`
	AccessToken          string `json:"access_token,omitempty"`
}

// LoginResult is a successful sign-in
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// ProfileUpdate holds the user-editable profile fields
type ProfileUpdate struct {
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	InGameName string          `json:"in_game_name"`
	PlayerUID  string          `json:"player_uid"`
	AvatarURL  string          `json:"avatar_url"`
	Socials    *domain.Socials `json:"socials,omitempty"`
}

// ActivityType is the kind of dashboard activity entry
type ActivityType string

const (
	ActivityRegistration ActivityType = "registration"
	ActivityDeposit      ActivityType = "deposit"
)

// Activity is one entry of the dashboard activity feed
type Activity struct {
	ID      string       `json:"id"`
	Type    ActivityType `json:"type"`
	Date    time.Time    `json:"date"`
	Message string       `json:"message"`
	Ago     string       `json:"ago"`
}

// DashboardStats are the admin dashboard figures
type DashboardStats struct {
	TotalUsers          int        `json:"total_users"`
	PendingTransactions int        `json:"pending_transactions"`
	ActiveTournaments   int        `json:"active_tournaments"`
	UsersInTournaments  int        `json:"users_in_tournaments"`
	TotalRevenue        float64    `json:"total_revenue"`
	TotalUserFunds      float64    `json:"total_user_funds"`
	RecentActivity      []Activity `json:"recent_activity"`
}

// LeaderboardEntry is one ranked player
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	InGameName    string  `json:"in_game_name"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	WalletBalance float64 `json:"wallet_balance"`
	IsCurrentUser bool    `json:"is_current_user"`
}

// TournamentUseCase covers browsing, joining and admin management of tournaments
type TournamentUseCase interface {
	List(sess *state.Session) []TournamentCard
	Open(sess *state.Session, tournamentID string) (*TournamentDetail, error)
	Join(ctx context.Context, sess *state.Session, tournamentID string) (*JoinResult, error)
	Create(ctx context.Context, sess *state.Session, input TournamentInput) (*domain.Tournament, error)
	Update(ctx context.Context, sess *state.Session, tournamentID string, input TournamentInput) (*domain.Tournament, error)
	Delete(ctx context.Context, sess *state.Session, tournamentID string) error
}

// TransactionUseCase covers deposit claims and their review
type TransactionUseCase interface {
	History(sess *state.Session) ([]*domain.Transaction, error)
	SubmitDeposit(ctx context.Context, sess *state.Session, claim DepositClaim) (*domain.Transaction, error)
	List() []*domain.Transaction
	Review(ctx context.Context, sess *state.Session, transactionID string, status domain.TransactionStatus) (*ReviewResult, error)
}

// NotificationUseCase covers broadcast notifications and unread tracking
type NotificationUseCase interface {
	Inbox(sess *state.Session) *Inbox
	MarkAllRead(ctx context.Context, sess *state.Session) (*Inbox, error)
	Broadcast(ctx context.Context, sess *state.Session, title, message string) (*domain.Notification, error)
}

// UserUseCase covers the account lifecycle of a client session
type UserUseCase interface {
	Register(ctx context.Context, sess *state.Session, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, sess *state.Session, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sess *state.Session) error
	Authenticate(ctx context.Context, sess *state.Session, accessToken string) error
	Refresh(ctx context.Context, sess *state.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess *state.Session, update ProfileUpdate) (*domain.User, error)
	HandleAuthEvent(ctx context.Context, event domain.AuthEvent)
}

// SettingsUseCase covers branding and payment settings
type SettingsUseCase interface {
	Get() *domain.AppSettings
	Update(ctx context.Context, sess *state.Session, settings *domain.AppSettings) (*domain.AppSettings, error)
	ThemeCSS() string
}

// AdminUseCase covers the admin dashboard
type AdminUseCase interface {
	Stats(sess *state.Session) *DashboardStats
}

// RankingUseCase covers the public leaderboard
type RankingUseCase interface {
	Leaderboard(sess *state.Session, limit int) []LeaderboardEntry
}

// Deferrer runs a function once after a delay
type Deferrer interface {
	After(name string, delay time.Duration, fn func()) error
}
