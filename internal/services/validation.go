package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationMessages maps a struct namespace (slice indices removed) to the message
// reported to callers.
var validationMessages = map[string]string{
	"AddItemRequest.ProductID":           "Product ID is required",
	"AddItemRequest.Quantity":            "Quantity must be at least 1",
	"CheckoutRequest.CustomerName":       "Customer name and email are required",
	"CheckoutRequest.CustomerEmail":      "Customer name and email are required",
	"CheckoutRequest.CartItems":          "Cart is empty",
	"CheckoutRequest.CartItems.Quantity": "Item quantity must be at least 1",
}

// validateStruct runs the struct's validate tags and reports the first failure.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := fieldErrs[0]
	key := stripIndices(first.StructNamespace())
	msg, ok := validationMessages[key]
	if !ok {
		msg = "Field '" + first.Field() + "' failed on the '" + first.Tag() + "' tag"
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}

func stripIndices(ns string) string {
	var b strings.Builder
	depth := 0
	for _, r := range ns {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
