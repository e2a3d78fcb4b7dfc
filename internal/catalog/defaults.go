package catalog

import (
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

func product(id, name, price string, category model.Category, emoji, color string) model.Product {
	return model.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Emoji:    emoji,
		Color:    color,
	}
}

// DefaultProducts is the built-in store catalog.
func DefaultProducts() []model.Product {
	return []model.Product{
		product("1", "Banana", "0.79", model.CategoryProduce, "🍌", "bg-yellow-100"),
		product("2", "Apple", "1.20", model.CategoryProduce, "🍎", "bg-red-100"),
		product("3", "Avocado", "2.50", model.CategoryProduce, "🥑", "bg-green-100"),
		product("4", "Carrot", "0.50", model.CategoryProduce, "🥕", "bg-orange-100"),
		product("5", "Broccoli", "1.80", model.CategoryProduce, "🥦", "bg-green-100"),
		product("6", "Milk", "3.50", model.CategoryDairy, "🥛", "bg-blue-50"),
		product("7", "Cheese", "4.99", model.CategoryDairy, "🧀", "bg-yellow-100"),
		product("8", "Yogurt", "1.25", model.CategoryDairy, "🥣", "bg-pink-50"),
		product("9", "Bread", "2.99", model.CategoryBakery, "🍞", "bg-orange-50"),
		product("10", "Croissant", "1.99", model.CategoryBakery, "🥐", "bg-amber-100"),
		product("11", "Steak", "15.99", model.CategoryMeat, "🥩", "bg-red-100"),
		product("12", "Chicken", "8.50", model.CategoryMeat, "🍗", "bg-orange-100"),
		product("13", "Pasta", "1.50", model.CategoryPantry, "🍝", "bg-yellow-50"),
		product("14", "Rice", "2.00", model.CategoryPantry, "🍚", "bg-gray-50"),
		product("15", "Tomato Sauce", "2.50", model.CategoryPantry, "🥫", "bg-red-50"),
		product("16", "Water", "0.99", model.CategoryBeverages, "💧", "bg-blue-100"),
		product("17", "Coffee", "5.99", model.CategoryBeverages, "☕", "bg-amber-100"),
		product("18", "Orange Juice", "3.99", model.CategoryBeverages, "🧃", "bg-orange-100"),
	}
}

// Default returns a catalog holding DefaultProducts.
func Default() *Catalog {
	c, err := New(DefaultProducts())
	if err != nil {
		panic("catalog: built-in products are invalid: " + err.Error())
	}
	return c
}
