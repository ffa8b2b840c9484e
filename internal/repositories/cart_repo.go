package repositories

import (
	"context"

	"vibecart/internal/models"
)

// CartRepository is the document store for carts, keyed by owner identity.
// Save writes the whole document; the last writer wins.
type CartRepository interface {
	FindByOwner(ctx context.Context, ownerID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
}
