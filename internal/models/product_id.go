package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID identifies a catalog item. The catalog is external, so identifiers arrive
// as JSON strings from some clients and as numbers from others; both decode to the same
// string form.
type ProductID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid product id: %w", err)
		}
		*id = ProductID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid product id %s: %w", data, err)
	}
	// 1, 1.0 and 1e0 name the same product
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("invalid product id %s: %w", data, err)
	}
	*id = ProductID(d.String())
	return nil
}

// String returns the normalized identifier.
func (id ProductID) String() string {
	return strings.TrimSpace(string(id))
}

// Equal compares two identifiers by their normalized string form.
func (id ProductID) Equal(other ProductID) bool {
	return id.String() == other.String()
}

// IsZero reports whether the identifier is empty.
func (id ProductID) IsZero() bool {
	return id.String() == ""
}
