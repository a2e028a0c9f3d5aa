package payments

import (
	"context"

	"github.com/maryrl/loja-fullstack/internal/models"
)

// LineItem is one priced row on the hosted checkout page.
type LineItem struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

type SessionRequest struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	Items      []LineItem
	Metadata   map[string]string
}

type Session struct {
	ID  string
	URL string
}

// WebhookEvent is the part of a verified processor event the API acts on.
type WebhookEvent struct {
	ID        string
	Type      string
	SessionID string
}

// Gateway is the payment processor as seen by the checkout flow.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
