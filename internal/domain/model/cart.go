package model

import (
	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places money is rounded to for display.
const DisplayPlaces = 2

// CartLine is a product plus the quantity held in the cart.
// Quantity is always >= 1 while the line is in a cart.
type CartLine struct {
	Product
	Quantity int `json:"quantity" example:"2"`
}

// LineTotal returns unit price times quantity, unrounded.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals holds the derived money amounts of a cart.
// Values are exact; round them only for display.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Rounded returns the totals rounded half-up to DisplayPlaces.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(DisplayPlaces),
		Tax:      t.Tax.Round(DisplayPlaces),
		Total:    t.Total.Round(DisplayPlaces),
	}
}
