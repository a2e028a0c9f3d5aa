package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/payments"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"github.com/maryrl/loja-fullstack/pkg/aws"
	"go.uber.org/zap"
)

type CheckoutService struct {
	productRepo IProductRepository
	txRepo      ITransactionRepository
	gateway     payments.Gateway
	currency    string
	metrics     IMetrics
	logger      *zap.Logger
}

func NewCheckoutService(
	pr IProductRepository,
	tr ITransactionRepository,
	gateway payments.Gateway,
	currency string,
	metrics IMetrics,
	logger *zap.Logger,
) *CheckoutService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &CheckoutService{
		productRepo: pr,
		txRepo:      tr,
		gateway:     gateway,
		currency:    currency,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateSession prices the requested items against the catalog, opens a
// hosted checkout session and records it as a pending transaction. buyer is
// the signed-in user, or nil for guest checkout; it only fills identity
// fields the request left empty.
func (s *CheckoutService) CreateSession(ctx context.Context, req models.CheckoutRequest, buyer *models.User) (*models.CheckoutResponse, error) {
	var userID string
	if buyer != nil {
		userID = buyer.ID
		if req.UserEmail == "" {
			req.UserEmail = buyer.Email
		}
		if req.UserName == "" {
			req.UserName = buyer.Name
		}
	}

	items, total, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	metadata := map[string]string{
		models.MetaUserEmail: orDefault(req.UserEmail, models.GuestEmail),
		models.MetaUserName:  orDefault(req.UserName, models.GuestName),
		models.MetaItems:     string(itemsJSON),
	}

	origin := strings.TrimRight(req.OriginURL, "/")
	lineItems := make([]payments.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, payments.LineItem{Name: it.Name, UnitPrice: it.Price, Quantity: it.Quantity})
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payments.SessionRequest{
		Currency:   s.currency,
		SuccessURL: origin + "/?payment=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/?payment=cancelled",
		Items:      lineItems,
		Metadata:   metadata,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstream, err)
	}

	now := time.Now().UTC()
	tx := &models.PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     session.ID,
		UserID:        userID,
		UserEmail:     req.UserEmail,
		Amount:        total,
		Currency:      s.currency,
		Status:        models.PaymentStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	_ = s.metrics.RecordCount(ctx, aws.MetricCheckoutSessions, nil)
	s.logger.Info("checkout session opened",
		zap.String("session_id", session.ID),
		zap.Float64("amount", total),
		zap.Int("items", len(items)),
	)

	return &models.CheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

func (s *CheckoutService) priceItems(ctx context.Context, cartItems []models.CartItem) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(cartItems))
	var total float64

	for _, ci := range cartItems {
		product, err := s.productRepo.FindByID(ctx, ci.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, 0, apperrors.NotFound(fmt.Sprintf("Product %s not found", ci.ProductID))
			}
			return nil, 0, err
		}
		if product.Stock < ci.Quantity {
			return nil, 0, apperrors.BadRequest(fmt.Sprintf("Insufficient stock for %s", product.Name))
		}

		total += product.Price * float64(ci.Quantity)
		items = append(items, models.OrderItem{
			ProductID: ci.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  ci.Quantity,
			Size:      ci.Size,
			Color:     ci.Color,
		})
	}
	return items, total, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
