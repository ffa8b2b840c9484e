package handlers

import (
	"vibecart/internal/middleware"
	"vibecart/internal/models"
	"vibecart/internal/services"
	"vibecart/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CheckoutHandler handles checkout and order queries.
type CheckoutHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	metrics  *metrics.ServerMetrics
}

// NewCheckoutHandler creates a new CheckoutHandler. m may be nil.
func NewCheckoutHandler(checkout *services.CheckoutService, orders *services.OrderService, m *metrics.ServerMetrics) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		orders:   orders,
		metrics:  m,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleCheckout)
	checkoutRoutes.Get("/orders", h.HandleGetOrders)
	checkoutRoutes.Get("/orders/:orderNumber", h.HandleGetOrderByNumber)
}

// HandleCheckout places an order from the submitted cart snapshot.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		h.record(metrics.OutcomeRejected)
		return badRequest(c, "Invalid request body", err)
	}
	req.OwnerID = middleware.OwnerID(c, req.OwnerID)

	receipt, err := h.checkout.ProcessCheckout(c.UserContext(), req)
	switch {
	case err == nil:
		h.record(metrics.OutcomeCompleted)
		return success(c, fiber.StatusCreated, "Order placed successfully", receipt)
	case services.IsCartNotCleared(err) && receipt != nil:
		h.record(metrics.OutcomeCartNotCleared)
		log.Warn().Err(err).Str("order_number", receipt.OrderNumber).Msg("checkout completed with stale cart")
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":     true,
			"message":     "Order placed successfully",
			"data":        receipt,
			"cartCleared": false,
			"warning":     "Order was placed but the cart could not be cleared",
		})
	case services.IsValidation(err):
		h.record(metrics.OutcomeRejected)
	default:
		h.record(metrics.OutcomeFailed)
	}
	return fail(c, err, "Error processing checkout")
}

// HandleGetOrders lists the most recent orders.
func (h *CheckoutHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListRecentOrders(c.UserContext())
	if err != nil {
		return fail(c, err, "Error fetching orders")
	}
	return list(c, orders)
}

// HandleGetOrderByNumber retrieves a single order.
func (h *CheckoutHandler) HandleGetOrderByNumber(c *fiber.Ctx) error {
	order, err := h.orders.GetOrderByNumber(c.UserContext(), c.Params("orderNumber"))
	if err != nil {
		return fail(c, err, "Error fetching order")
	}
	return success(c, fiber.StatusOK, "", order)
}

func (h *CheckoutHandler) record(outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.CheckoutOutcomes.WithLabelValues(outcome).Inc()
}
