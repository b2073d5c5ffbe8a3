package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
)

// TournamentType represents the team format of a tournament
type TournamentType string

const (
	TournamentTypeSolo  TournamentType = "Solo"
	TournamentTypeDuo   TournamentType = "Duo"
	TournamentTypeSquad TournamentType = "Squad"
)

// Valid reports whether the type is one of the known formats
func (t TournamentType) Valid() bool {
	switch t {
	case TournamentTypeSolo, TournamentTypeDuo, TournamentTypeSquad:
		return true
	}
	return false
}

// RoomDetails are the in-game lobby credentials published by an admin
type RoomDetails struct {
	ID   string `json:"id"`
	Pass string `json:"pass"`
}

// Scan implements the sql.Scanner interface
func (r *RoomDetails) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// Value implements the driver.Valuer interface
func (r RoomDetails) Value() (driver.Value, error) {
	return valueJSON(r)
}

// Tournament represents a scheduled match players can pay to enter
type Tournament struct {
	ID           string         `json:"id,omitempty" gorm:"primaryKey;column:id;type:uuid"`
	Name         string         `json:"name" gorm:"type:varchar(128);not null"`
	Type         TournamentType `json:"type" gorm:"type:varchar(16);not null"`
	EntryFee     float64        `json:"entry_fee" gorm:"type:numeric(20,2);not null;default:0"`
	PrizePool    float64        `json:"prize_pool" gorm:"type:numeric(20,2);not null;default:0"`
	MapName      string         `json:"map_name" gorm:"type:varchar(64)"`
	StartTime    time.Time      `json:"start_time" gorm:"index;not null"`
	MaxPlayers   int            `json:"max_players" gorm:"not null"`
	Participants pq.StringArray `json:"participants" gorm:"type:text[];not null;default:'{}'"`
	ImageURL     string         `json:"image_url" gorm:"type:text"`
	RoomDetails  *RoomDetails   `json:"room_details,omitempty" gorm:"type:jsonb"`
}

// TableName specifies the table name for Tournament
func (t Tournament) TableName() string {
	return "tournaments"
}

// RowID returns the row identifier
func (t *Tournament) RowID() string { return t.ID }

// AssignID sets the row identifier
func (t *Tournament) AssignID(id string) { t.ID = id }

// HasParticipant reports whether the user id is in the participant list
func (t *Tournament) HasParticipant(userID string) bool {
	return containsString(t.Participants, userID)
}

// IsFull reports whether the participant list reached capacity
func (t *Tournament) IsFull() bool {
	return len(t.Participants) >= t.MaxPlayers
}

// Clone returns a deep copy of the tournament
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := *t
	c.Participants = cloneStrings(t.Participants)
	if c.Participants == nil {
		c.Participants = pq.StringArray{}
	}
	if t.RoomDetails != nil {
		r := *t.RoomDetails
		c.RoomDetails = &r
	}
	return &c
}

// RoomAccessState describes what a viewer may see of the room credentials
type RoomAccessState string

const (
	// RoomAccessHidden the viewer has not joined
	RoomAccessHidden RoomAccessState = "hidden"
	// RoomAccessPending the viewer joined but no credentials are published yet
	RoomAccessPending RoomAccessState = "pending"
	// RoomAccessRevealed the viewer joined and credentials are published
	RoomAccessRevealed RoomAccessState = "revealed"
)

// RoomAccess is the viewer-specific projection of a tournament's room details
type RoomAccess struct {
	State   RoomAccessState `json:"state"`
	Details *RoomDetails    `json:"details,omitempty"`
}

// RoomVisibleTo reports whether the viewer may see the room credentials:
// admins, and players whose joined list holds the tournament. A nil viewer
// never sees them.
func (t *Tournament) RoomVisibleTo(viewer *User) bool {
	return viewer != nil && (viewer.IsAdmin || viewer.HasJoined(t.ID))
}

// ForViewer returns a copy with the room credentials removed unless the
// viewer may see them
func (t *Tournament) ForViewer(viewer *User) *Tournament {
	c := t.Clone()
	if c != nil && !t.RoomVisibleTo(viewer) {
		c.RoomDetails = nil
	}
	return c
}

// RoomAccessFor resolves what the viewer may see of the room
func (t *Tournament) RoomAccessFor(viewer *User) RoomAccess {
	if !t.RoomVisibleTo(viewer) {
		return RoomAccess{State: RoomAccessHidden}
	}
	if t.RoomDetails == nil || (t.RoomDetails.ID == "" && t.RoomDetails.Pass == "") {
		return RoomAccess{State: RoomAccessPending}
	}
	d := *t.RoomDetails
	return RoomAccess{State: RoomAccessRevealed, Details: &d}
}

// TournamentRepository defines the backend boundary for the tournaments collection
type TournamentRepository interface {
	List(ctx context.Context) ([]*Tournament, error)
	Create(ctx context.Context, tournament *Tournament) (*Tournament, error)
	Update(ctx context.Context, id string, fields Fields) (*Tournament, error)
	Delete(ctx context.Context, id string) error
}
