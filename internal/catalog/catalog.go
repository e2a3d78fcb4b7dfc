// Package catalog provides the read-only product list the register sells from.
package catalog

import (
	"strings"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
)

// Provider exposes an immutable, ordered product catalog.
type Provider interface {
	// ListProducts returns the full catalog in display order.
	ListProducts() []model.Product
	// Product looks up a single product by id.
	Product(id string) (model.Product, bool)
}

// Catalog is an in-memory Provider. It never changes after construction.
type Catalog struct {
	products []model.Product
	byID     map[string]int
}

// New builds a catalog from the given products, keeping their order.
// It returns ErrDuplicateProduct or ErrInvalidProduct when the list is malformed.
func New(products []model.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]model.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, &ProductError{ID: p.ID, Err: ErrDuplicateProduct}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// ListProducts returns a copy of the catalog.
func (c *Catalog) ListProducts() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product returns the product with the given id.
func (c *Catalog) Product(id string) (model.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

// Filter narrows products to a category (empty means all) and a
// case-insensitive name substring (empty means any).
func Filter(products []model.Product, category model.Category, query string) []model.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func validate(p model.Product) error {
	switch {
	case p.ID == "":
		return &ProductError{ID: p.ID, Err: ErrInvalidProduct, Reason: "empty id"}
	case p.Name == "":
		return &ProductError{ID: p.ID, Err: ErrInvalidProduct, Reason: "empty name"}
	case p.Price.IsNegative():
		return &ProductError{ID: p.ID, Err: ErrInvalidProduct, Reason: "negative price"}
	case !p.Category.Valid():
		return &ProductError{ID: p.ID, Err: ErrInvalidProduct, Reason: "unknown category " + string(p.Category)}
	}
	return nil
}
