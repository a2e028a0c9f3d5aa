package controllers

import (
	"context"

	"github.com/maryrl/loja-fullstack/internal/models"
)

// Service ports consumed by the HTTP layer. The services package provides
// the implementations.

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, category string, skip, limit int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	PresignImageUpload(ctx context.Context, req models.ImageUploadRequest) (*models.ImageUploadResponse, error)
}

type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID, size, color string) error
}

type CheckoutService interface {
	CreateSession(ctx context.Context, req models.CheckoutRequest, buyer *models.User) (*models.CheckoutResponse, error)
}

type PaymentReconciler interface {
	Reconcile(ctx context.Context, sessionID string) (*models.CheckoutStatus, error)
}

type AdminService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	ListOrders(ctx context.Context, skip, limit int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
