package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"

	GuestEmail = "guest"
	GuestName  = "Guest"
)

// Metadata keys attached to both the checkout session and the stored
// transaction.
const (
	MetaUserEmail = "user_email"
	MetaUserName  = "user_name"
	MetaItems     = "items"
)

// PaymentTransaction mirrors one hosted checkout session. Status fields are
// refreshed on every reconciliation; rows are never deleted.
type PaymentTransaction struct {
	ID            string            `json:"id" bson:"id" validate:"required,uuid"`
	SessionID     string            `json:"session_id" bson:"session_id" validate:"required"`
	UserID        string            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	UserEmail     string            `json:"user_email,omitempty" bson:"user_email,omitempty"`
	Amount        float64           `json:"amount" bson:"amount" validate:"gte=0"`
	Currency      string            `json:"currency" bson:"currency" validate:"required"`
	Status        string            `json:"status" bson:"status" validate:"required"`
	PaymentStatus string            `json:"payment_status" bson:"payment_status" validate:"required"`
	Metadata      map[string]string `json:"metadata" bson:"metadata"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// CheckoutRequest is the body of POST /payments/checkout/session.
type CheckoutRequest struct {
	OriginURL string     `json:"origin_url" binding:"required,url"`
	Items     []CartItem `json:"items" binding:"required,min=1,dive"`
	UserEmail string     `json:"user_email" binding:"omitempty,email"`
	UserName  string     `json:"user_name"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatus is the processor's view of a session, returned verbatim to
// status pollers.
type CheckoutStatus struct {
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}
