package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vibecart/internal/models"
	"vibecart/internal/repositories"
	"vibecart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_GetOrderByNumber(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryOrderRepository()
	service := services.NewOrderService(repo)

	require.NoError(t, repo.Create(ctx, &models.Order{OrderNumber: "VC1", CustomerName: "Ann"}))

	order, err := service.GetOrderByNumber(ctx, "VC1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", order.CustomerName)

	order, err = service.GetOrderByNumber(ctx, "VC-missing")
	assert.Nil(t, order)
	assert.True(t, services.IsNotFound(err))
	assert.Equal(t, "order VC-missing not found", err.Error())
}

func TestOrderService_ListRecentOrdersIsCapped(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryOrderRepository()
	service := services.NewOrderService(repo)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < services.RecentOrdersLimit+5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Order{
			OrderNumber: fmt.Sprintf("VC%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	orders, err := service.ListRecentOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, services.RecentOrdersLimit)
	assert.Equal(t, fmt.Sprintf("VC%d", services.RecentOrdersLimit+4), orders[0].OrderNumber)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}
}

func TestOrderService_StoreErrors(t *testing.T) {
	repo := new(MockOrderRepository)
	service := services.NewOrderService(repo)
	storeErr := errors.New("timeout")

	repo.On("ListRecent", mock.Anything, services.RecentOrdersLimit).Return(nil, storeErr).Once()
	repo.On("FindByOrderNumber", mock.Anything, "VC1").Return(nil, storeErr).Once()

	_, err := service.ListRecentOrders(context.Background())
	assert.True(t, services.IsPersistence(err))

	_, err = service.GetOrderByNumber(context.Background(), "VC1")
	assert.True(t, services.IsPersistence(err))
	assert.False(t, services.IsNotFound(err))
	repo.AssertExpectations(t)
}
