package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateProduct is returned when two products share an id.
	ErrDuplicateProduct = errors.New("duplicate product id")
	// ErrInvalidProduct is returned for a product that fails validation.
	ErrInvalidProduct = errors.New("invalid product")
)

// ProductError ties a catalog error to the offending product id.
type ProductError struct {
	ID     string
	Reason string
	Err    error
}

func (e *ProductError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("product %q: %v: %s", e.ID, e.Err, e.Reason)
	}
	return fmt.Sprintf("product %q: %v", e.ID, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}
