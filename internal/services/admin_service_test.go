package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	svc := NewAdminService(products, orders, zap.NewNop())

	recent := []models.Order{{ID: "o-2"}, {ID: "o-1"}}
	products.On("Count", ctx).Return(int64(12), nil).Once()
	orders.On("Count", ctx).Return(int64(2), nil).Once()
	orders.On("PaidRevenue", ctx).Return(349.5, nil).Once()
	orders.On("List", ctx, int64(0), int64(10)).Return(recent, nil).Once()

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, 349.5, stats.TotalRevenue)
	assert.Equal(t, "o-2", stats.RecentOrders[0].ID)
}

func TestAdminService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("missing status", func(t *testing.T) {
		svc := NewAdminService(new(MockProductRepository), new(MockOrderRepository), zap.NewNop())
		err := svc.UpdateOrderStatus(ctx, "o-1", "  ")
		assert.Equal(t, http.StatusBadRequest, apperrors.FromError(err).Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewAdminService(new(MockProductRepository), orders, zap.NewNop())
		orders.On("UpdateStatus", ctx, "o-x", "shipped").Return(repository.ErrNotFound).Once()

		assert.ErrorIs(t, svc.UpdateOrderStatus(ctx, "o-x", "shipped"), apperrors.ErrOrderNotFound)
	})

	t.Run("success", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewAdminService(new(MockProductRepository), orders, zap.NewNop())
		orders.On("UpdateStatus", ctx, "o-1", "shipped").Return(nil).Once()

		assert.NoError(t, svc.UpdateOrderStatus(ctx, "o-1", "shipped"))
	})
}
