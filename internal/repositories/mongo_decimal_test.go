package repositories

import (
	"testing"
	"time"

	"vibecart/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal128_RoundTripIsExact(t *testing.T) {
	for _, s := range []string{"0", "19.99", "12345678.123456789", "-0.01", "37037034.370370367"} {
		d := decimal.RequireFromString(s)
		v, err := toDecimal128(d)
		require.NoError(t, err, s)
		back, err := fromDecimal128(v)
		require.NoError(t, err, s)
		assert.True(t, d.Equal(back), "%s came back as %s", s, back)
	}
}

func TestDecimal128_OutOfRangeIsAnError(t *testing.T) {
	for _, s := range []string{"1234567890123456789012345678901234.5", "1e7000"} {
		_, err := toDecimal128(decimal.RequireFromString(s))
		assert.Error(t, err, s)
	}
}

func TestNewCartDocument_RejectsUnrepresentablePrice(t *testing.T) {
	cart := models.NewCart("c1", "owner")
	cart.Items = []models.CartLineItem{{
		ProductID: "1",
		Title:     "Huge",
		Price:     decimal.RequireFromString("1234567890123456789012345678901234.5"),
		Quantity:  1,
	}}
	cart.Recalculate()

	_, err := newCartDocument(cart)
	assert.Error(t, err)
}

func TestNewOrderDocument_RejectsUnrepresentableTotal(t *testing.T) {
	order := &models.Order{
		ID:          "o1",
		OrderNumber: "ORD-1",
		TotalAmount: decimal.RequireFromString("1e7000"),
		CreatedAt:   time.Now().UTC(),
	}

	_, err := newOrderDocument(order)
	assert.Error(t, err)
}

func TestCartDocument_ToModelKeepsAmounts(t *testing.T) {
	cart := models.NewCart("c1", "owner")
	cart.Items = []models.CartLineItem{{ProductID: "1", Title: "A", Price: decimal.RequireFromString("12345678.123456789"), Quantity: 3}}
	cart.Recalculate()

	doc, err := newCartDocument(cart)
	require.NoError(t, err)
	got, err := doc.toModel()
	require.NoError(t, err)
	assert.Equal(t, "37037034.370370367", got.TotalAmount.String())
}
