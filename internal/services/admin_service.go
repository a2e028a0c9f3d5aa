package services

import (
	"context"
	"errors"
	"strings"

	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"go.uber.org/zap"
)

const recentOrdersLimit = 10

type AdminService struct {
	productRepo IProductRepository
	orderRepo   IOrderRepository
	logger      *zap.Logger
}

func NewAdminService(pr IProductRepository, or IOrderRepository, logger *zap.Logger) *AdminService {
	return &AdminService{productRepo: pr, orderRepo: or, logger: logger}
}

func (s *AdminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.PaidRevenue(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.List(ctx, 0, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalRevenue:  revenue,
		RecentOrders:  recent,
	}, nil
}

// ListOrders returns orders newest first.
func (s *AdminService) ListOrders(ctx context.Context, skip, limit int64) ([]models.Order, error) {
	skip, limit = ClampPage(skip, limit)
	return s.orderRepo.List(ctx, skip, limit)
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, id, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return apperrors.BadRequest("Status is required")
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrOrderNotFound
		}
		return err
	}

	s.logger.Info("order status updated", zap.String("order_id", id), zap.String("status", status))
	return nil
}
