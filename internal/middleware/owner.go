package middleware

import (
	"strings"

	"vibecart/internal/models"

	"github.com/gofiber/fiber/v2"
)

// OwnerHeader carries the caller's owner identity when no userId query parameter is given.
const OwnerHeader = "X-User-ID"

const ownerLocalsKey = "owner_id"

// OwnerIdentity stores the caller's owner identity in the Fiber context. The userId query
// parameter wins over the X-User-ID header; with neither present the identity is empty
// and resolves to the guest owner.
func OwnerIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner := strings.TrimSpace(c.Query("userId"))
		if owner == "" {
			owner = strings.TrimSpace(c.Get(OwnerHeader))
		}
		c.Locals(ownerLocalsKey, owner)
		return c.Next()
	}
}

// OwnerID returns the owner identity for the request. A non-empty bodyOwner, taken from
// the request body, takes precedence.
func OwnerID(c *fiber.Ctx, bodyOwner string) string {
	if owner := strings.TrimSpace(bodyOwner); owner != "" {
		return owner
	}
	owner, _ := c.Locals(ownerLocalsKey).(string)
	return models.OwnerOrGuest(owner)
}
