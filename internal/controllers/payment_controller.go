package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/middleware"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.uber.org/zap"
)

type PaymentController struct {
	checkout   CheckoutService
	reconciler PaymentReconciler
	logger     *zap.Logger
}

func NewPaymentController(checkout CheckoutService, reconciler PaymentReconciler, logger *zap.Logger) *PaymentController {
	return &PaymentController{checkout: checkout, reconciler: reconciler, logger: logger}
}

// CreateCheckoutSession handles POST /payments/checkout/session. Guests may
// check out; a signed-in user's identity fills any blanks.
func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, pc.logger, bindError(err))
		return
	}
	buyer, _ := middleware.CurrentUser(c)

	resp, err := pc.checkout.CreateSession(c.Request.Context(), req, buyer)
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckoutStatus handles GET /payments/checkout/status/:session_id.
func (pc *PaymentController) CheckoutStatus(c *gin.Context) {
	status, err := pc.reconciler.Reconcile(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		apperrors.Respond(c, pc.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
