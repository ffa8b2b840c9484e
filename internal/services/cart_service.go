package services

import (
	"context"
	"errors"
	"strings"

	"vibecart/internal/models"
	"vibecart/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CartService implements the cart operations. Every mutation recomputes the cart total
// immediately before the document is written.
type CartService struct {
	repo  repositories.CartRepository
	locks *ownerLocks
}

// CartOption configures a CartService.
type CartOption func(*CartService)

// WithOwnerSerialization toggles in-process serialization of writes per owner.
// It is on by default.
func WithOwnerSerialization(enabled bool) CartOption {
	return func(s *CartService) {
		if enabled {
			s.locks = newOwnerLocks()
		} else {
			s.locks = nil
		}
	}
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository, opts ...CartOption) *CartService {
	s := &CartService{
		repo:  repo,
		locks: newOwnerLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCart returns the owner's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, ownerID string) (*models.Cart, error) {
	owner := models.OwnerOrGuest(ownerID)
	defer s.guard(owner)()

	return s.loadOrCreate(ctx, owner)
}

// AddItem adds quantity of a product. A repeat add only increments the quantity of the
// existing line; its price, title and image are kept.
func (s *CartService) AddItem(ctx context.Context, req models.AddItemRequest) (*models.Cart, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.ProductID.IsZero() {
		return nil, &ValidationError{Field: "ProductID", Message: "Product ID is required"}
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	owner := models.OwnerOrGuest(req.OwnerID)
	defer s.guard(owner)()

	cart, err := s.loadOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	if idx := cart.IndexOf(req.ProductID); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, newLineItem(req.ProductID, quantity, req.ProductData))
	}

	log.Debug().Str("owner_id", owner).Str("product_id", req.ProductID.String()).Int("quantity", quantity).Msg("adding item to cart")
	return s.save(ctx, cart)
}

// UpdateQuantity sets the quantity of an existing line item.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
	}

	owner := models.OwnerOrGuest(ownerID)
	defer s.guard(owner)()

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	idx := cart.IndexOf(models.ProductID(productID))
	if idx < 0 {
		return nil, &NotFoundError{Resource: "item", Key: strings.TrimSpace(productID)}
	}
	cart.Items[idx].Quantity = quantity

	return s.save(ctx, cart)
}

// RemoveItem drops the line item for productID. Removing an absent item is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, ownerID, productID string) (*models.Cart, error) {
	owner := models.OwnerOrGuest(ownerID)
	defer s.guard(owner)()

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	target := models.ProductID(productID)
	kept := make([]models.CartLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if !item.ProductID.Equal(target) {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	return s.save(ctx, cart)
}

// ClearCart empties the owner's cart.
func (s *CartService) ClearCart(ctx context.Context, ownerID string) (*models.Cart, error) {
	owner := models.OwnerOrGuest(ownerID)
	defer s.guard(owner)()

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.Clear()

	return s.save(ctx, cart)
}

func (s *CartService) guard(owner string) func() {
	if s.locks == nil {
		return func() {}
	}
	return s.locks.lock(owner)
}

func (s *CartService) load(ctx context.Context, owner string) (*models.Cart, error) {
	cart, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, repositories.ErrCartNotFound) {
			return nil, &NotFoundError{Resource: "cart"}
		}
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}
	return cart, nil
}

func (s *CartService) loadOrCreate(ctx context.Context, owner string) (*models.Cart, error) {
	cart, err := s.repo.FindByOwner(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrCartNotFound) {
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}

	cart = models.NewCart(uuid.New().String(), owner)
	if err := s.repo.Create(ctx, cart); err != nil {
		if !errors.Is(err, repositories.ErrCartExists) {
			return nil, &PersistenceError{Op: "create cart", Err: err}
		}
		// lost the create race to another writer
		existing, findErr := s.repo.FindByOwner(ctx, owner)
		if findErr != nil {
			return nil, &PersistenceError{Op: "load cart", Err: findErr}
		}
		return existing, nil
	}

	log.Info().Str("owner_id", owner).Msg("created cart")
	return cart, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.Recalculate()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, &PersistenceError{Op: "save cart", Err: err}
	}
	return cart, nil
}

func newLineItem(productID models.ProductID, quantity int, data *models.ProductData) models.CartLineItem {
	item := models.CartLineItem{
		ProductID: models.ProductID(productID.String()),
		Title:     models.DefaultItemTitle,
		Quantity:  quantity,
	}
	if data != nil {
		item.Price = data.Price
		item.Image = data.Image
		if data.Title != "" {
			item.Title = data.Title
		}
	}
	return item
}
