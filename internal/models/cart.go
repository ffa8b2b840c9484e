package models

import (
	"strings"
	"time"

	"vibecart/internal/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GuestOwner is the owner identity used when the caller supplies none.
const GuestOwner = "guest"

// DefaultItemTitle is stored for line items added without catalog copy.
const DefaultItemTitle = "Product"

// OwnerOrGuest normalizes a caller-supplied owner identity.
func OwnerOrGuest(ownerID string) string {
	if id := strings.TrimSpace(ownerID); id != "" {
		return id
	}
	return GuestOwner
}

// CartLineItem is one product entry in a cart. Title, price and image are a snapshot
// taken when the item was first added.
type CartLineItem struct {
	ProductID ProductID       `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the per-owner shopping cart document.
type Cart struct {
	ID          string          `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string          `json:"userId" gorm:"uniqueIndex;type:varchar(255);not null"`
	Items       []CartLineItem  `json:"items" gorm:"type:text;serializer:json"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:text"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewCart returns an empty cart for ownerID.
func NewCart(id, ownerID string) *Cart {
	return &Cart{
		ID:          id,
		OwnerID:     OwnerOrGuest(ownerID),
		Items:       []CartLineItem{},
		TotalAmount: decimal.Zero,
	}
}

// Recalculate derives TotalAmount from Items.
func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartLineItem{}
	}
	c.TotalAmount = pricing.ComputeTotal(c.Items)
}

// IndexOf returns the position of the line item for productID, or -1.
func (c *Cart) IndexOf(productID ProductID) int {
	for i := range c.Items {
		if c.Items[i].ProductID.Equal(productID) {
			return i
		}
	}
	return -1
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartLineItem{}
	c.TotalAmount = decimal.Zero
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Items = make([]CartLineItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}

// BeforeSave keeps the stored total consistent with the stored items.
func (c *Cart) BeforeSave(tx *gorm.DB) error {
	c.Recalculate()
	return nil
}

// AfterFind derives the total from the loaded items instead of trusting the stored column.
func (c *Cart) AfterFind(tx *gorm.DB) error {
	c.Recalculate()
	return nil
}
