package services

import (
	"context"
	"errors"

	"vibecart/internal/models"
	"vibecart/internal/repositories"
)

// RecentOrdersLimit caps ListRecentOrders. It is not a page size; older orders are not reachable.
const RecentOrdersLimit = 50

// OrderService answers queries over stored orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// ListRecentOrders retrieves the newest orders, at most RecentOrdersLimit.
func (s *OrderService) ListRecentOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.ListRecent(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, &PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// GetOrderByNumber retrieves a single order by its order number.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, &NotFoundError{Resource: "order", Key: orderNumber}
		}
		return nil, &PersistenceError{Op: "get order", Err: err}
	}
	return order, nil
}
