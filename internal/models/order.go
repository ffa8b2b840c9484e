package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusCompleted is the only status an order is ever created with.
const OrderStatusCompleted = "completed"

// OrderItem is the immutable snapshot of one ordered line.
type OrderItem struct {
	ProductID ProductID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is an append-only record created by checkout. TotalAmount is the pre-tax subtotal.
type Order struct {
	ID            string          `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber   string          `json:"orderNumber" gorm:"uniqueIndex;type:varchar(64);not null"`
	CustomerName  string          `json:"customerName" gorm:"type:varchar(255);not null"`
	CustomerEmail string          `json:"customerEmail" gorm:"type:varchar(255);not null"`
	Items         []OrderItem     `json:"items" gorm:"type:text;serializer:json"`
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:text"`
	Tax           decimal.Decimal `json:"tax" gorm:"type:text"`
	Shipping      decimal.Decimal `json:"shipping" gorm:"type:text"`
	GrandTotal    decimal.Decimal `json:"grandTotal" gorm:"type:text"`
	Status        string          `json:"status" gorm:"type:varchar(32)"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"index"`
}

// Receipt is the checkout response built from a freshly created order.
type Receipt struct {
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Tax           decimal.Decimal `json:"tax"`
	Shipping      decimal.Decimal `json:"shipping"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Timestamp     time.Time       `json:"timestamp"`
	Items         []OrderItem     `json:"items"`
}

// Receipt projects the order onto its receipt view.
func (o *Order) Receipt() *Receipt {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	return &Receipt{
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		GrandTotal:    o.GrandTotal,
		Timestamp:     o.CreatedAt,
		Items:         items,
	}
}

// OrderPlacedEvent is published after an order has been stored.
type OrderPlacedEvent struct {
	OrderNumber string          `json:"orderNumber"`
	OwnerID     string          `json:"userId"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	ItemCount   int             `json:"itemCount"`
	PlacedAt    time.Time       `json:"placedAt"`
}
