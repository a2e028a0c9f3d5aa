package services

import (
	"context"
	"time"

	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/notifications"
	"github.com/maryrl/loja-fullstack/internal/payments"
	"github.com/stretchr/testify/mock"
)

// --- Repositories ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Find(ctx context.Context, category string, skip, limit int64) ([]models.Product, error) {
	args := m.Called(ctx, category, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Replace(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, sessionID, status, paymentStatus string) error {
	return m.Called(ctx, sessionID, status, paymentStatus).Error(0)
}

func (m *MockTransactionRepository) RefreshStatus(ctx context.Context, sessionID, status string) error {
	return m.Called(ctx, sessionID, status).Error(0)
}

func (m *MockTransactionRepository) MarkPaid(ctx context.Context, sessionID, status string) (*models.PaymentTransaction, bool, error) {
	args := m.Called(ctx, sessionID, status)
	var tx *models.PaymentTransaction
	if args.Get(0) != nil {
		tx = args.Get(0).(*models.PaymentTransaction)
	}
	return tx, args.Bool(1), args.Error(2)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, skip, limit int64) ([]models.Order, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) PaidRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) ClaimDue(ctx context.Context, now time.Time, lease time.Duration) (*models.Notification, error) {
	args := m.Called(ctx, now, lease)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, id string, attempts int, at time.Time) error {
	return m.Called(ctx, id, attempts, at).Error(0)
}

func (m *MockNotificationRepository) MarkRetry(ctx context.Context, id string, attempts int, lastErr string, next time.Time) error {
	return m.Called(ctx, id, attempts, lastErr, next).Error(0)
}

func (m *MockNotificationRepository) MarkFailed(ctx context.Context, id string, attempts int, lastErr string) error {
	return m.Called(ctx, id, attempts, lastErr).Error(0)
}

// --- Collaborators ---

type MockGateway struct{ mock.Mock }

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Session), args.Error(1)
}

func (m *MockGateway) GetCheckoutStatus(ctx context.Context, sessionID string) (*models.CheckoutStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutStatus), args.Error(1)
}

func (m *MockGateway) ParseWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.WebhookEvent), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) EnqueueOrderConfirmation(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return m.Called(ctx, eventType, payload).Error(0)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendEmail(ctx context.Context, to, subject, htmlBody string) (notifications.SendResult, error) {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Get(0).(notifications.SendResult), args.Error(1)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) GetProductList(ctx context.Context, category string, skip, limit int64) ([]models.Product, int64, bool) {
	args := m.Called(ctx, category, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Bool(2)
}

func (m *MockCache) SetProductListAsync(version int64, category string, skip, limit int64, products []models.Product) {
	m.Called(version, category, skip, limit, products)
}

func (m *MockCache) GetProduct(ctx context.Context, id string) (*models.Product, int64, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2)
	}
	return args.Get(0).(*models.Product), args.Get(1).(int64), args.Bool(2)
}

func (m *MockCache) SetProductAsync(version int64, product *models.Product) {
	m.Called(version, product)
}

func (m *MockCache) InvalidateProduct(ctx context.Context, productID string) {
	m.Called(ctx, productID)
}

type MockPresigner struct{ mock.Mock }

func (m *MockPresigner) PresignPut(ctx context.Context, name, contentType string, expiry time.Duration) (string, map[string]string, string, error) {
	args := m.Called(ctx, name, contentType, expiry)
	var headers map[string]string
	if args.Get(1) != nil {
		headers = args.Get(1).(map[string]string)
	}
	return args.String(0), headers, args.String(2), args.Error(3)
}

func (m *MockPresigner) PublicURL(key string) string {
	return m.Called(key).String(0)
}
