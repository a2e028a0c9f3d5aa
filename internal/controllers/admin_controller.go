package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"go.uber.org/zap"
)

type AdminController struct {
	adminService AdminService
	logger       *zap.Logger
}

func NewAdminController(svc AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{adminService: svc, logger: logger}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.adminService.Dashboard(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ac *AdminController) ListOrders(c *gin.Context) {
	skip, limit, err := parsePaging(c)
	if err != nil {
		apperrors.Respond(c, ac.logger, err)
		return
	}

	orders, err := ac.adminService.ListOrders(c.Request.Context(), skip, limit)
	if err != nil {
		apperrors.Respond(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status?status=shipped.
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	if err := ac.adminService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), c.Query("status")); err != nil {
		apperrors.Respond(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
