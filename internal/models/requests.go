package models

import "github.com/shopspring/decimal"

// ProductData carries the catalog copy a client captured when adding an item.
type ProductData struct {
	Price decimal.Decimal `json:"price"`
	Title string          `json:"title"`
	Image string          `json:"image"`
}

// AddItemRequest is the input of the add-to-cart operation. A nil Quantity means 1.
type AddItemRequest struct {
	OwnerID     string       `json:"userId"`
	ProductID   ProductID    `json:"productId" validate:"required"`
	Quantity    *int         `json:"quantity" validate:"omitempty,gte=1"`
	ProductData *ProductData `json:"productData"`
}

// UpdateQuantityRequest is the body of the update-quantity operation.
type UpdateQuantityRequest struct {
	OwnerID  string `json:"userId"`
	Quantity int    `json:"quantity"`
}

// CheckoutItem is one line of the cart snapshot submitted at checkout. Clients identify
// the product by id, _id or productId and label it by title or name.
type CheckoutItem struct {
	ID        ProductID       `json:"id"`
	LegacyID  ProductID       `json:"_id"`
	ProductID ProductID       `json:"productId"`
	Title     string          `json:"title"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
}

// Identity returns the first non-empty identifier of the line.
func (i CheckoutItem) Identity() ProductID {
	for _, id := range []ProductID{i.ID, i.LegacyID, i.ProductID} {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}

// Label returns the title, falling back to name.
func (i CheckoutItem) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// CheckoutRequest is the input of the checkout operation. Field order is the order in
// which validation failures are reported.
type CheckoutRequest struct {
	CustomerName  string         `json:"customerName" validate:"required"`
	CustomerEmail string         `json:"customerEmail" validate:"required"`
	CartItems     []CheckoutItem `json:"cartItems" validate:"required,min=1,dive"`
	OwnerID       string         `json:"userId"`
}
