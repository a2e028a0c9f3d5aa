package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/logger"
	"github.com/maryrl/loja-fullstack/internal/payments"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// WebhookVerifier is satisfied by payments.Gateway.
type WebhookVerifier interface {
	ParseWebhook(payload []byte, signature string) (*payments.WebhookEvent, error)
}

type WebhookController struct {
	verifier   WebhookVerifier
	reconciler PaymentReconciler
	logger     *zap.Logger
}

func NewWebhookController(verifier WebhookVerifier, reconciler PaymentReconciler, logger *zap.Logger) *WebhookController {
	return &WebhookController{verifier: verifier, reconciler: reconciler, logger: logger}
}

// HandleStripe handles POST /webhook/stripe. Completed sessions go through
// the same reconciliation as status polling, so replays are harmless.
func (wc *WebhookController) HandleStripe(c *gin.Context) {
	log := logger.WithRequest(c, wc.logger)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Respond(c, wc.logger, apperrors.BadRequest("Unable to read request body"))
		return
	}

	event, err := wc.verifier.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if errors.Is(err, payments.ErrWebhookNotConfigured) {
		log.Warn("webhook received but no signing secret is configured")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if err != nil {
		log.Warn("webhook signature verification failed", zap.Error(err))
		apperrors.Respond(c, wc.logger, apperrors.BadRequest("Invalid signature"))
		return
	}

	log = log.With(zap.String("event_id", event.ID), zap.String("event_type", event.Type))
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		if event.SessionID == "" {
			break
		}
		if _, err := wc.reconciler.Reconcile(c.Request.Context(), event.SessionID); err != nil {
			log.Error("webhook reconciliation failed", zap.String("session_id", event.SessionID), zap.Error(err))
		}
	default:
		log.Debug("webhook event ignored")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
