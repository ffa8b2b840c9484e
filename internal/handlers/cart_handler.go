package handlers

import (
	"vibecart/internal/middleware"
	"vibecart/internal/models"
	"vibecart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Put("/:itemId", h.HandleUpdateItem)
	cartRoutes.Delete("/:itemId", h.HandleRemoveItem)
}

// HandleGetCart returns the cart, creating it on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.OwnerID(c, ""))
	if err != nil {
		return fail(c, err, "Error fetching cart")
	}
	return success(c, fiber.StatusOK, "", cart)
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req models.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	req.OwnerID = middleware.OwnerID(c, req.OwnerID)

	cart, err := h.service.AddItem(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "Error adding item to cart")
	}
	return success(c, fiber.StatusCreated, "Item added to cart", cart)
}

// HandleUpdateItem sets the quantity of the line item for :itemId.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req models.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	cart, err := h.service.UpdateQuantity(c.UserContext(), middleware.OwnerID(c, req.OwnerID), c.Params("itemId"), req.Quantity)
	if err != nil {
		return fail(c, err, "Error updating cart")
	}
	return success(c, fiber.StatusOK, "Cart updated", cart)
}

// HandleRemoveItem drops the line item for :itemId.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(c.UserContext(), middleware.OwnerID(c, ""), c.Params("itemId"))
	if err != nil {
		return fail(c, err, "Error removing item from cart")
	}
	return success(c, fiber.StatusOK, "Item removed from cart", cart)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.service.ClearCart(c.UserContext(), middleware.OwnerID(c, ""))
	if err != nil {
		return fail(c, err, "Error clearing cart")
	}
	return success(c, fiber.StatusOK, "Cart cleared", cart)
}
