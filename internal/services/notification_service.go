package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/notifications"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"github.com/maryrl/loja-fullstack/pkg/aws"
	"go.uber.org/zap"
)

const (
	maxBackoff  = 15 * time.Minute
	sendTimeout = 20 * time.Second
	claimLease  = time.Minute
)

// NotificationService writes emails to the outbox. Delivery happens in
// OutboxWorker.
type NotificationService struct {
	repo        INotificationRepository
	storeName   string
	maxAttempts int
	logger      *zap.Logger
}

func NewNotificationService(repo INotificationRepository, storeName string, maxAttempts int, logger *zap.Logger) *NotificationService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &NotificationService{repo: repo, storeName: storeName, maxAttempts: maxAttempts, logger: logger}
}

// EnqueueOrderConfirmation renders and stores the confirmation email for
// order. A second call for the same order is a no-op.
func (s *NotificationService) EnqueueOrderConfirmation(ctx context.Context, order *models.Order) error {
	subject, body, err := notifications.RenderOrderConfirmation(notifications.OrderConfirmation{
		StoreName:    s.storeName,
		CustomerName: order.UserName,
		OrderID:      order.ID,
		Items:        order.Items,
		Total:        order.TotalAmount,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	n := &models.Notification{
		ID:            uuid.NewString(),
		Kind:          models.NotificationKindOrderConfirmation,
		Recipient:     order.UserEmail,
		Subject:       subject,
		Body:          body,
		OrderID:       order.ID,
		Status:        models.NotificationStatusPending,
		MaxAttempts:   s.maxAttempts,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}

	s.logger.Info("order confirmation queued",
		zap.String("notification_id", n.ID),
		zap.String("order_id", order.ID),
	)
	return nil
}

type OutboxConfig struct {
	PollInterval time.Duration
	BaseBackoff  time.Duration
	BatchSize    int
}

// OutboxWorker delivers pending notifications, retrying failures with
// exponential backoff until a row runs out of attempts.
type OutboxWorker struct {
	repo    INotificationRepository
	sender  notifications.EmailSender
	metrics IMetrics
	cfg     OutboxConfig
	logger  *zap.Logger
	now     func() time.Time
}

func NewOutboxWorker(repo INotificationRepository, sender notifications.EmailSender, metrics IMetrics, cfg OutboxConfig, logger *zap.Logger) *OutboxWorker {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	return &OutboxWorker{
		repo:    repo,
		sender:  sender,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run polls until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.cfg.PollInterval))
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.ProcessBatch(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessBatch claims and delivers up to BatchSize due notifications and
// returns how many it handled.
func (w *OutboxWorker) ProcessBatch(ctx context.Context) int {
	processed := 0
	for processed < w.cfg.BatchSize {
		if ctx.Err() != nil {
			return processed
		}

		n, err := w.repo.ClaimDue(ctx, w.now(), claimLease)
		if errors.Is(err, repository.ErrNotFound) {
			return processed
		}
		if err != nil {
			w.logger.Error("failed to claim notification", zap.Error(err))
			return processed
		}

		w.deliver(ctx, n)
		processed++
	}
	return processed
}

func (w *OutboxWorker) deliver(ctx context.Context, n *models.Notification) {
	log := w.logger.With(zap.String("notification_id", n.ID), zap.String("kind", n.Kind))

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	res, sendErr := w.sender.SendEmail(sendCtx, n.Recipient, n.Subject, n.Body)
	cancel()

	attempts := n.Attempts + 1
	now := w.now()

	if sendErr == nil {
		if err := w.repo.MarkSent(ctx, n.ID, attempts, now); err != nil {
			log.Error("failed to mark notification sent", zap.Error(err))
		}
		_ = w.metrics.RecordCount(ctx, aws.MetricEmailsSent, nil)
		log.Info("notification sent", zap.String("message_id", res.MessageID), zap.Int("attempts", attempts))
		return
	}

	if attempts >= n.MaxAttempts {
		if err := w.repo.MarkFailed(ctx, n.ID, attempts, sendErr.Error()); err != nil {
			log.Error("failed to mark notification failed", zap.Error(err))
		}
		_ = w.metrics.RecordCount(ctx, aws.MetricEmailsFailed, nil)
		log.Error("notification gave up", zap.Int("attempts", attempts), zap.Error(sendErr))
		return
	}

	next := now.Add(Backoff(w.cfg.BaseBackoff, attempts))
	if err := w.repo.MarkRetry(ctx, n.ID, attempts, sendErr.Error(), next); err != nil {
		log.Error("failed to schedule notification retry", zap.Error(err))
	}
	log.Warn("send attempt failed",
		zap.Int("attempts", attempts),
		zap.Time("next_attempt_at", next),
		zap.Error(sendErr),
	)
}

// Backoff returns base·2^(attempts-1), capped at 15 minutes.
func Backoff(base time.Duration, attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := base
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
