package services

import (
	"context"
	"time"

	"github.com/maryrl/loja-fullstack/internal/auth"
	"github.com/maryrl/loja-fullstack/internal/models"
)

// Storage ports. The repository package satisfies all of them.

type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type IProductRepository interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, category string, skip, limit int64) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
}

type ICartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

type ITransactionRepository interface {
	Create(ctx context.Context, tx *models.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, sessionID, status, paymentStatus string) error
	RefreshStatus(ctx context.Context, sessionID, status string) error
	MarkPaid(ctx context.Context, sessionID, status string) (*models.PaymentTransaction, bool, error)
}

type IOrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, skip, limit int64) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type INotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration) (*models.Notification, error)
	MarkSent(ctx context.Context, id string, attempts int, at time.Time) error
	MarkRetry(ctx context.Context, id string, attempts int, lastErr string, next time.Time) error
	MarkFailed(ctx context.Context, id string, attempts int, lastErr string) error
}

// IProductCache is satisfied by *cache.CatalogCache, including a nil one.
// Lookups return the cache version they saw; loaded data is stored back
// under that version.
type IProductCache interface {
	GetProductList(ctx context.Context, category string, skip, limit int64) ([]models.Product, int64, bool)
	SetProductListAsync(version int64, category string, skip, limit int64, products []models.Product)
	GetProduct(ctx context.Context, id string) (*models.Product, int64, bool)
	SetProductAsync(version int64, product *models.Product)
	InvalidateProduct(ctx context.Context, productID string)
}

type ITokenService interface {
	GenerateAccessToken(userID, email string) (string, error)
	ValidateToken(tokenStr, expectedType string) (*auth.Claims, error)
}

// IEventPublisher is satisfied by *aws.EventPublisher.
type IEventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// IMetrics is satisfied by *aws.MetricsClient, including a nil one.
type IMetrics interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

type IImagePresigner interface {
	PresignPut(ctx context.Context, name, contentType string, expiry time.Duration) (string, map[string]string, string, error)
	PublicURL(key string) string
}

type nopMetrics struct{}

func (nopMetrics) RecordCount(context.Context, string, map[string]string) error { return nil }
