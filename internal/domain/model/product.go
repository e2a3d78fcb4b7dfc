// Package model defines the core domain entities for the POS service.
package model

import (
	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryProduce   Category = "Produce"
	CategoryDairy     Category = "Dairy"
	CategoryBakery    Category = "Bakery"
	CategoryMeat      Category = "Meat"
	CategoryPantry    Category = "Pantry"
	CategoryBeverages Category = "Beverages"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryBakery,
	CategoryMeat,
	CategoryPantry,
	CategoryBeverages,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is an immutable catalog item.
//
// @Description Purchasable catalog item
// @Example {"id": "1", "name": "Banana", "price": "0.79", "category": "Produce", "emoji": "🍌", "color": "bg-yellow-100"}
type Product struct {
	// ID is the unique product identifier
	ID string `json:"id" yaml:"id" example:"1"`
	// Name is the display name
	Name string `json:"name" yaml:"name" example:"Banana"`
	// Price is the unit price with two-decimal precision
	Price decimal.Decimal `json:"price" yaml:"price" swaggertype:"string" example:"0.79"`
	// Category is one of the catalog categories
	Category Category `json:"category" yaml:"category" example:"Produce"`
	// Emoji and Color are display metadata, opaque to the cart
	Emoji string `json:"emoji" yaml:"emoji" example:"🍌"`
	Color string `json:"color" yaml:"color" example:"bg-yellow-100"`
}
