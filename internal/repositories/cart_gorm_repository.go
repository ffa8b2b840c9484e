package repositories

import (
	"context"
	"errors"
	"fmt"

	"vibecart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository stores each cart as one row with its items in a JSON column.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// FindByOwner loads the cart owned by ownerID.
func (r *GORMCartRepository) FindByOwner(ctx context.Context, ownerID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart for owner %s: %w", ownerID, err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartLineItem{}
	}
	return &cart, nil
}

// Create inserts a new cart document.
func (r *GORMCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCartExists
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Save writes every field of the cart document.
func (r *GORMCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		return fmt.Errorf("failed to save cart for owner %s: missing id", cart.OwnerID)
	}
	if err := r.db.WithContext(ctx).Save(cart).Error; err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
