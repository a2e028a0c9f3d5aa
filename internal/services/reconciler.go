package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/logger"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/payments"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"github.com/maryrl/loja-fullstack/pkg/aws"
	"go.uber.org/zap"
)

const EventOrderCreated = "order.created"

// INotifier queues the order confirmation email.
type INotifier interface {
	EnqueueOrderConfirmation(ctx context.Context, order *models.Order) error
}

// Reconciler brings a stored transaction in line with the processor and
// finalizes the order the first time the session is seen as paid.
type Reconciler struct {
	txRepo      ITransactionRepository
	orderRepo   IOrderRepository
	productRepo IProductRepository
	cache       IProductCache
	gateway     payments.Gateway
	notifier    INotifier
	publisher   IEventPublisher
	metrics     IMetrics
	logger      *zap.Logger
}

// NewReconciler wires the reconciler. cache may be a nil *CatalogCache and
// publisher may be nil when no order events topic is configured.
func NewReconciler(
	tr ITransactionRepository,
	or IOrderRepository,
	pr IProductRepository,
	cache IProductCache,
	gateway payments.Gateway,
	notifier INotifier,
	publisher IEventPublisher,
	metrics IMetrics,
	logger *zap.Logger,
) *Reconciler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Reconciler{
		txRepo:      tr,
		orderRepo:   or,
		productRepo: pr,
		cache:       cache,
		gateway:     gateway,
		notifier:    notifier,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Reconcile refreshes the session's status and returns the processor's view
// of it. Safe to call any number of times, concurrently, from both status
// polling and webhooks: at most one caller ever creates the order.
func (r *Reconciler) Reconcile(ctx context.Context, sessionID string) (*models.CheckoutStatus, error) {
	log := logger.WithRequest(ctx, r.logger).With(zap.String("session_id", sessionID))

	tx, err := r.txRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, err
	}

	status, err := r.gateway.GetCheckoutStatus(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstream, err)
	}

	if status.PaymentStatus != models.PaymentStatusPaid {
		if err := r.txRepo.UpdateStatus(ctx, sessionID, status.Status, status.PaymentStatus); err != nil {
			return nil, err
		}
		return status, nil
	}

	paidTx, won, err := r.txRepo.MarkPaid(ctx, sessionID, status.Status)
	if err != nil {
		return nil, err
	}
	if !won {
		// Another caller holds or finished the claim. payment_status belongs
		// to it, including the release when finalization fails.
		if err := r.txRepo.RefreshStatus(ctx, sessionID, status.Status); err != nil {
			return nil, err
		}
		return status, nil
	}

	if err := r.finalize(ctx, log, paidTx); err != nil {
		// Hand the claim back so the next poll or webhook retries.
		if rerr := r.txRepo.UpdateStatus(ctx, sessionID, status.Status, tx.PaymentStatus); rerr != nil {
			log.Error("failed to release payment claim", zap.Error(rerr))
		}
		return nil, err
	}
	return status, nil
}

func (r *Reconciler) finalize(ctx context.Context, log *zap.Logger, tx *models.PaymentTransaction) error {
	var items []models.OrderItem
	if raw := tx.Metadata[models.MetaItems]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return fmt.Errorf("decode item snapshot: %w", err)
		}
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		UserID:        tx.UserID,
		UserEmail:     orDefault(tx.Metadata[models.MetaUserEmail], models.GuestEmail),
		UserName:      orDefault(tx.Metadata[models.MetaUserName], models.GuestName),
		Items:         items,
		TotalAmount:   tx.Amount,
		Status:        models.OrderStatusConfirmed,
		PaymentStatus: models.PaymentStatusPaid,
		SessionID:     tx.SessionID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := r.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Info("order already exists for session")
			return nil
		}
		return fmt.Errorf("create order: %w", err)
	}
	log = log.With(zap.String("order_id", order.ID))

	for _, it := range items {
		ok, err := r.productRepo.DecrementStock(ctx, it.ProductID, it.Quantity)
		if err != nil {
			log.Error("stock decrement failed", zap.String("product_id", it.ProductID), zap.Error(err))
			continue
		}
		if !ok {
			log.Warn("insufficient stock at finalization",
				zap.String("product_id", it.ProductID),
				zap.Int("quantity", it.Quantity),
			)
			_ = r.metrics.RecordCount(ctx, aws.MetricStockShortfall, nil)
			continue
		}
		if r.cache != nil {
			r.cache.InvalidateProduct(ctx, it.ProductID)
		}
	}

	if order.UserEmail != models.GuestEmail {
		if err := r.notifier.EnqueueOrderConfirmation(ctx, order); err != nil {
			log.Error("failed to enqueue order confirmation", zap.Error(err))
		}
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, EventOrderCreated, order); err != nil {
			log.Warn("failed to publish order event", zap.Error(err))
		}
	}

	_ = r.metrics.RecordCount(ctx, aws.MetricOrdersCreated, nil)
	_ = r.metrics.RecordCount(ctx, aws.MetricPaymentSucceeded, nil)
	log.Info("order finalized", zap.Float64("total_amount", order.TotalAmount))
	return nil
}
