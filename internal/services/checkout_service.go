package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibecart/internal/models"
	"vibecart/internal/pricing"
	"vibecart/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CheckoutService turns a submitted cart snapshot into an order, then clears the cart.
type CheckoutService struct {
	orders      repositories.OrderRepository
	carts       *CartService
	publisher   EventPublisher
	now         func() time.Time
	orderNumber func(time.Time) string
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(orders repositories.OrderRepository, carts *CartService, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		orders:      orders,
		carts:       carts,
		publisher:   publisher,
		now:         time.Now,
		orderNumber: NewOrderNumber,
	}
}

// ProcessCheckout validates and prices the snapshot, stores the order and clears the
// owner's cart.
//
// The order is committed before the cart is cleared. If clearing fails the receipt is
// still returned, together with an error matching ErrCartNotCleared. A missing cart is
// not an error.
func (s *CheckoutService) ProcessCheckout(ctx context.Context, req models.CheckoutRequest) (*models.Receipt, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	owner := models.OwnerOrGuest(req.OwnerID)

	items := snapshotItems(req.CartItems)
	quote := pricing.Quote(pricing.ComputeTotal(items))
	now := s.now().UTC()

	order := &models.Order{
		ID:            uuid.New().String(),
		OrderNumber:   s.orderNumber(now),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         items,
		TotalAmount:   quote.Subtotal,
		Tax:           quote.Tax,
		Shipping:      quote.Shipping,
		GrandTotal:    quote.GrandTotal,
		Status:        models.OrderStatusCompleted,
		CreatedAt:     now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, &PersistenceError{Op: "create order", Err: err}
	}
	log.Info().
		Str("order_number", order.OrderNumber).
		Str("owner_id", owner).
		Str("grand_total", order.GrandTotal.String()).
		Msg("order placed")

	s.publishOrderPlaced(ctx, owner, order)

	receipt := order.Receipt()
	if _, err := s.carts.ClearCart(ctx, owner); err != nil {
		if IsNotFound(err) {
			return receipt, nil
		}
		log.Error().Err(err).Str("order_number", order.OrderNumber).Str("owner_id", owner).Msg("cart not cleared after checkout")
		return receipt, fmt.Errorf("%w: %w", ErrCartNotCleared, err)
	}
	return receipt, nil
}

func (s *CheckoutService) publishOrderPlaced(ctx context.Context, owner string, order *models.Order) {
	if s.publisher == nil {
		log.Debug().Str("order_number", order.OrderNumber).Msg("no event publisher configured, skipping order.placed")
		return
	}
	event := models.OrderPlacedEvent{
		OrderNumber: order.OrderNumber,
		OwnerID:     owner,
		GrandTotal:  order.GrandTotal,
		ItemCount:   len(order.Items),
		PlacedAt:    order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, OrderPlacedRoutingKey, event); err != nil {
		log.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order.placed event")
	}
}

func snapshotItems(in []models.CheckoutItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(in))
	for _, item := range in {
		out = append(out, models.OrderItem{
			ProductID: item.Identity(),
			Name:      item.Label(),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return out
}

// IsCartNotCleared reports whether a checkout error only concerns the post-order cart clear.
func IsCartNotCleared(err error) bool {
	return errors.Is(err, ErrCartNotCleared)
}
