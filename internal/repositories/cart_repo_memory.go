package repositories

import (
	"context"
	"sync"
	"time"

	"vibecart/internal/models"

	"github.com/google/uuid"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
type MemoryCartRepository struct {
	carts map[string]*models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string]*models.Cart),
	}
}

// FindByOwner returns a copy of the stored cart.
func (r *MemoryCartRepository) FindByOwner(_ context.Context, ownerID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[ownerID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart.Clone(), nil
}

// Create stores a new cart.
func (r *MemoryCartRepository) Create(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.OwnerID]; ok {
		return ErrCartExists
	}
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	cart.Recalculate()
	r.carts[cart.OwnerID] = cart.Clone()
	return nil
}

// Save replaces the stored cart document.
func (r *MemoryCartRepository) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now()
	}
	cart.UpdatedAt = time.Now()
	cart.Recalculate()
	r.carts[cart.OwnerID] = cart.Clone()
	return nil
}
