package repositories

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"vibecart/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders []models.Order
	byNum  map[string]int
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		byNum: make(map[string]int),
	}
}

// Create appends an order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byNum[order.OrderNumber]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, order.OrderNumber)
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.byNum[order.OrderNumber] = len(r.orders)
	r.orders = append(r.orders, cloneOrder(*order))
	return nil
}

// FindByOrderNumber returns an order by its order number.
func (r *MemoryOrderRepository) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byNum[orderNumber]
	if !ok {
		return nil, ErrOrderNotFound
	}
	order := cloneOrder(r.orders[idx])
	return &order, nil
}

// ListRecent returns up to limit orders, newest first.
func (r *MemoryOrderRepository) ListRecent(_ context.Context, limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, cloneOrder(r.orders[i]))
	}
	slices.SortStableFunc(out, func(a, b models.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
