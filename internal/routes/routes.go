package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/controllers"
	"github.com/maryrl/loja-fullstack/internal/middleware"
	"go.uber.org/zap"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Payment *controllers.PaymentController
	Webhook *controllers.WebhookController
	Admin   *controllers.AdminController
	Health  *controllers.HealthController
}

func RegisterRoutes(router *gin.Engine, h Controllers, authn middleware.Authenticator, logger *zap.Logger) {
	requireAuth := middleware.RequireAuth(authn, logger)
	requireAdmin := middleware.RequireAdmin(logger)

	// Public
	router.GET("/health", h.Health.Health)

	api := router.Group("/api")
	api.GET("/", h.Health.Root)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.GET("/me", requireAuth, h.Auth.Me)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.ListProducts)
		products.GET("/:id", h.Product.GetProduct)

		// Admin only
		products.POST("", requireAuth, requireAdmin, h.Product.CreateProduct)
		products.PUT("/:id", requireAuth, requireAdmin, h.Product.UpdateProduct)
		products.DELETE("/:id", requireAuth, requireAdmin, h.Product.DeleteProduct)
		products.POST("/images/presign", requireAuth, requireAdmin, h.Product.PresignImage)
	}

	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("/add", h.Cart.AddItem)
		cart.DELETE("/remove/:product_id", h.Cart.RemoveItem)
	}

	payments := api.Group("/payments/checkout")
	{
		payments.POST("/session", middleware.OptionalAuth(authn), h.Payment.CreateCheckoutSession)
		payments.GET("/status/:session_id", h.Payment.CheckoutStatus)
	}

	api.POST("/webhook/stripe", h.Webhook.HandleStripe)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/dashboard", h.Admin.Dashboard)
		admin.GET("/orders", h.Admin.ListOrders)
		admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
	}
}
