package repositories

import "errors"

var (
	ErrCartNotFound         = errors.New("cart not found")
	ErrCartExists           = errors.New("cart already exists for owner")
	ErrOrderNotFound        = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)
