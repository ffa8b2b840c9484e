// Package pricing holds the fixed pricing rules used by carts and checkout.
package pricing

import "github.com/shopspring/decimal"

var (
	// TaxRate is applied to the pre-tax subtotal of every order.
	TaxRate = decimal.RequireFromString("0.10")
	// FlatShipping is charged on any order with a positive subtotal.
	FlatShipping = decimal.RequireFromString("5.99")
)

// Line is anything that contributes price × quantity to a total.
type Line interface {
	LineTotal() decimal.Decimal
}

// ComputeTotal sums the line totals of items. An empty or nil slice totals zero.
func ComputeTotal[L Line](items []L) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Breakdown is the frozen set of amounts derived for an order.
type Breakdown struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Quote derives tax, shipping and grand total from a subtotal.
func Quote(subtotal decimal.Decimal) Breakdown {
	tax := subtotal.Mul(TaxRate)
	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = FlatShipping
	}
	return Breakdown{
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: subtotal.Add(tax).Add(shipping),
	}
}
