package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/middleware"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.uber.org/zap"
)

type CartController struct {
	cartService CartService
	logger      *zap.Logger
}

func NewCartController(svc CartService, logger *zap.Logger) *CartController {
	return &CartController{cartService: svc, logger: logger}
}

func (cc *CartController) GetCart(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	cart, err := cc.cartService.GetCart(c.Request.Context(), user.ID)
	if err != nil {
		apperrors.Respond(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) AddItem(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		apperrors.Respond(c, cc.logger, bindError(err))
		return
	}
	user, _ := middleware.CurrentUser(c)

	if _, err := cc.cartService.AddItem(c.Request.Context(), user.ID, item); err != nil {
		apperrors.Respond(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

// RemoveItem handles DELETE /cart/remove/:product_id. Optional size and
// color query params restrict which lines are removed.
func (cc *CartController) RemoveItem(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	err := cc.cartService.RemoveItem(c.Request.Context(), user.ID, c.Param("product_id"), c.Query("size"), c.Query("color"))
	if err != nil {
		apperrors.Respond(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
