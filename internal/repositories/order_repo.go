package repositories

import (
	"context"

	"vibecart/internal/models"
)

// OrderRepository is the append-only order store. Orders are never updated or deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	// ListRecent returns up to limit orders, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
}
