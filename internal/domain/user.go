package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
)

// Socials holds optional social profile links of a player
type Socials struct {
	Facebook string `json:"facebook,omitempty"`
	Discord  string `json:"discord,omitempty"`
}

// Scan implements the sql.Scanner interface
func (s *Socials) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Value implements the driver.Valuer interface
func (s Socials) Value() (driver.Value, error) {
	return valueJSON(s)
}

// User represents a player profile stored in the backend users collection
type User struct {
	ID                  string         `json:"id,omitempty" gorm:"primaryKey;column:id;type:uuid"`
	Name                string         `json:"name" gorm:"type:varchar(128);not null"`
	Email               string         `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Phone               string         `json:"phone" gorm:"type:varchar(32)"`
	InGameName          string         `json:"in_game_name" gorm:"type:varchar(64)"`
	PlayerUID           string         `json:"player_uid" gorm:"column:player_uid;type:varchar(64)"`
	WalletBalance       float64        `json:"wallet_balance" gorm:"type:numeric(20,2);not null;default:0"`
	IsAdmin             bool           `json:"is_admin" gorm:"not null;default:false"`
	JoinedTournaments   pq.StringArray `json:"joined_tournaments" gorm:"type:text[];not null;default:'{}'"`
	ReadNotificationIDs pq.StringArray `json:"read_notification_ids" gorm:"column:read_notification_ids;type:text[];not null;default:'{}'"`
	RegistrationDate    time.Time      `json:"registration_date" gorm:"not null"`
	AvatarURL           string         `json:"avatar_url,omitempty" gorm:"type:text"`
	Socials             *Socials       `json:"socials,omitempty" gorm:"type:jsonb"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// RowID returns the row identifier
func (u *User) RowID() string { return u.ID }

// AssignID sets the row identifier
func (u *User) AssignID(id string) { u.ID = id }

// HasJoined reports whether the tournament id is in the user's joined list
func (u *User) HasJoined(tournamentID string) bool {
	return containsString(u.JoinedTournaments, tournamentID)
}

// HasRead reports whether the notification id was acknowledged by the user
func (u *User) HasRead(notificationID string) bool {
	return containsString(u.ReadNotificationIDs, notificationID)
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.JoinedTournaments = cloneStrings(u.JoinedTournaments)
	c.ReadNotificationIDs = cloneStrings(u.ReadNotificationIDs)
	if c.JoinedTournaments == nil {
		c.JoinedTournaments = pq.StringArray{}
	}
	if c.ReadNotificationIDs == nil {
		c.ReadNotificationIDs = pq.StringArray{}
	}
	if u.Socials != nil {
		s := *u.Socials
		c.Socials = &s
	}
	return &c
}

// UserRepository defines the backend boundary for the users collection
type UserRepository interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id string, fields Fields) (*User, error)
}
