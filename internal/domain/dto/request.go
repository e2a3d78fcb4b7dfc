// Package dto defines the request and response bodies of the HTTP API.
package dto

import "strings"

// MaxQuantityDelta bounds a single quantity adjustment.
const MaxQuantityDelta = 1000

// AddItemRequest adds one unit of a catalog product to the cart.
//
// @Description Add one unit of a product
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"1"`
} // @name AddItemRequest

// UpdateQuantityRequest adjusts a cart line by Delta units. A line that
// reaches zero is removed.
//
// @Description Adjust a cart line quantity
type UpdateQuantityRequest struct {
	Delta *int `json:"delta" binding:"required" example:"-1"`
} // @name UpdateQuantityRequest

// ValidationError is a field-level request error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidProductID is returned for a blank product id.
	ErrInvalidProductID = &ValidationError{Field: "product_id", Message: "must not be blank"}
	// ErrInvalidDelta is returned for a missing or out of range delta.
	ErrInvalidDelta = &ValidationError{Field: "delta", Message: "must be an integer between -1000 and 1000"}
)

// Validate trims the product id and rejects a blank one.
func (r *AddItemRequest) Validate() error {
	r.ProductID = strings.TrimSpace(r.ProductID)
	if r.ProductID == "" {
		return ErrInvalidProductID
	}
	return nil
}

// Validate rejects a missing or out of range delta. Zero is accepted and
// leaves the cart unchanged.
func (r *UpdateQuantityRequest) Validate() error {
	if r.Delta == nil || *r.Delta > MaxQuantityDelta || *r.Delta < -MaxQuantityDelta {
		return ErrInvalidDelta
	}
	return nil
}
