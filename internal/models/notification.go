package models

import "time"

const (
	NotificationKindOrderConfirmation = "order_confirmation"

	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// Notification is an outbox row. The worker claims due pending rows, sends
// them and records the outcome.
type Notification struct {
	ID            string     `json:"id" bson:"id" validate:"required,uuid"`
	Kind          string     `json:"kind" bson:"kind" validate:"required"`
	Recipient     string     `json:"recipient" bson:"recipient" validate:"required,email"`
	Subject       string     `json:"subject" bson:"subject" validate:"required"`
	Body          string     `json:"body" bson:"body"`
	OrderID       string     `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Status        string     `json:"status" bson:"status" validate:"oneof=pending sent failed"`
	Attempts      int        `json:"attempts" bson:"attempts" validate:"gte=0"`
	MaxAttempts   int        `json:"max_attempts" bson:"max_attempts" validate:"gte=1"`
	LastError     string     `json:"last_error,omitempty" bson:"last_error,omitempty"`
	NextAttemptAt time.Time  `json:"next_attempt_at" bson:"next_attempt_at"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
	SentAt        *time.Time `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
}
