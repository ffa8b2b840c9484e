package services

import (
	"math/rand"
	"strconv"
	"time"
)

// OrderNumberPrefix starts every order number.
const OrderNumberPrefix = "VC"

// NewOrderNumber builds prefix + epoch milliseconds + a random suffix in [0, 999].
// Collisions are unlikely but possible; the order store's unique index is the guard.
func NewOrderNumber(now time.Time) string {
	return OrderNumberPrefix +
		strconv.FormatInt(now.UnixMilli(), 10) +
		strconv.Itoa(rand.Intn(1000))
}
