package domain

import (
	"context"
	"time"
)

// Notification is a broadcast message visible to every user
type Notification struct {
	ID      string    `json:"id,omitempty" gorm:"primaryKey;column:id;type:uuid"`
	Title   string    `json:"title" gorm:"type:varchar(255);not null"`
	Message string    `json:"message" gorm:"type:text;not null"`
	Date    time.Time `json:"date" gorm:"index;not null"`
}

// TableName specifies the table name for Notification
func (n Notification) TableName() string {
	return "notifications"
}

// RowID returns the row identifier
func (n *Notification) RowID() string { return n.ID }

// AssignID sets the row identifier
func (n *Notification) AssignID(id string) { n.ID = id }

// Clone returns a copy of the notification
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// NotificationRepository defines the backend boundary for the notifications collection
type NotificationRepository interface {
	List(ctx context.Context) ([]*Notification, error)
	Create(ctx context.Context, notification *Notification) (*Notification, error)
}
