package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"go.uber.org/zap"
)

type CartService struct {
	cartRepo ICartRepository
	logger   *zap.Logger
}

func NewCartService(cr ICartRepository, logger *zap.Logger) *CartService {
	return &CartService{cartRepo: cr, logger: logger}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	cart = newCart(userID)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges item into the cart. Lines are keyed by product, size and
// color; a matching line has its quantity increased.
func (s *CartService) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(item) {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops every line for productID. A non-empty size or color
// restricts removal to lines with that value. A missing cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID, size, color string) error {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	kept := make([]models.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ProductID == productID &&
			(size == "" || it.Size == size) &&
			(color == "" || it.Color == color) {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == len(cart.Items) {
		return nil
	}

	cart.Items = kept
	cart.UpdatedAt = time.Now().UTC()
	return s.cartRepo.Save(ctx, cart)
}

func newCart(userID string) *models.Cart {
	return &models.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: time.Now().UTC(),
	}
}
