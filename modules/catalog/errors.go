package catalog

import "errors"

var (
	ErrNameRequired  = errors.New("catalog: product name is required")
	ErrNegativePrice = errors.New("catalog: unit price cannot be negative")
)
