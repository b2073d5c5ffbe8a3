package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Fields is a partial update keyed by backend column name
type Fields map[string]interface{}

// Column names used in partial updates
const (
	FieldName                = "name"
	FieldPhone               = "phone"
	FieldInGameName          = "in_game_name"
	FieldPlayerUID           = "player_uid"
	FieldAvatarURL           = "avatar_url"
	FieldSocials             = "socials"
	FieldWalletBalance       = "wallet_balance"
	FieldJoinedTournaments   = "joined_tournaments"
	FieldReadNotificationIDs = "read_notification_ids"

	FieldType         = "type"
	FieldEntryFee     = "entry_fee"
	FieldPrizePool    = "prize_pool"
	FieldMapName      = "map_name"
	FieldStartTime    = "start_time"
	FieldMaxPlayers   = "max_players"
	FieldParticipants = "participants"
	FieldImageURL     = "image_url"
	FieldRoomDetails  = "room_details"

	FieldStatus = "status"

	FieldAppName         = "app_name"
	FieldAppLogoURL      = "app_logo_url"
	FieldMarqueeText     = "marquee_text"
	FieldPaymentGateways = "payment_gateways"
	FieldTheme           = "theme"
)

// Row is implemented by every persisted record so drivers can assign ids
type Row interface {
	RowID() string
	AssignID(id string)
}

// ErrRowNotFound is returned by drivers when an update or delete matched no row
var ErrRowNotFound = errors.New("no row matched the given id")

// BackendError represents an error reported by the remote backend service
type BackendError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface
func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// Is4xxError checks if the error is a 4xx client error
func (e *BackendError) Is4xxError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsBackendError checks if an error is a BackendError
func IsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, dst)
}

func valueJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// AppendUnique returns a copy of list with v appended
func AppendUnique(list []string, v string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	if containsString(out, v) {
		return out
	}
	return append(out, v)
}
