package domain

import (
	"context"
	"time"
)

// TransactionStatus represents the review status of a deposit claim
type TransactionStatus string

const (
	// TransactionStatusPending claim submitted and awaiting admin review
	TransactionStatusPending TransactionStatus = "Pending"

	// TransactionStatusApproved claim verified, funds credited to the owner
	TransactionStatusApproved TransactionStatus = "Approved"

	// TransactionStatusRejected claim refused, no balance change
	TransactionStatusRejected TransactionStatus = "Rejected"
)

// IsReviewOutcome reports whether the status is a valid admin decision
func (s TransactionStatus) IsReviewOutcome() bool {
	return s == TransactionStatusApproved || s == TransactionStatusRejected
}

// Transaction represents a user's claim that they deposited money externally
type Transaction struct {
	ID           string            `json:"id,omitempty" gorm:"primaryKey;column:id;type:uuid"`
	UserID       string            `json:"user_id" gorm:"index;not null;type:uuid"`
	Amount       float64           `json:"amount" gorm:"type:numeric(20,2);not null"`
	SenderNumber string            `json:"sender_number" gorm:"type:varchar(32)"`
	TrxID        string            `json:"trx_id" gorm:"column:trx_id;type:varchar(64);not null"`
	Gateway      string            `json:"gateway,omitempty" gorm:"type:varchar(32)"`
	Status       TransactionStatus `json:"status" gorm:"type:varchar(16);not null;default:'Pending'"`
	Date         time.Time         `json:"date" gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (t Transaction) TableName() string {
	return "transactions"
}

// RowID returns the row identifier
func (t *Transaction) RowID() string { return t.ID }

// AssignID sets the row identifier
func (t *Transaction) AssignID(id string) { t.ID = id }

// Clone returns a copy of the transaction
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// TransactionRepository defines the backend boundary for the transactions collection
type TransactionRepository interface {
	List(ctx context.Context) ([]*Transaction, error)
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	Update(ctx context.Context, id string, fields Fields) (*Transaction, error)
}
