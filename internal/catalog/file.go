package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// fileProduct mirrors a catalog entry on disk. Price stays a string so
// values like 1.20 keep their precision.
type fileProduct struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
	Emoji    string `yaml:"emoji"`
	Color    string `yaml:"color"`
}

type fileCatalog struct {
	Products []fileProduct `yaml:"products"`
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a YAML catalog of the form:
//
//	products:
//	  - id: "1"
//	    name: Banana
//	    price: "0.79"
//	    category: Produce
func Load(r io.Reader) (*Catalog, error) {
	var raw fileCatalog
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(raw.Products) == 0 {
		return nil, fmt.Errorf("decode catalog: %w: no products", ErrInvalidProduct)
	}

	products := make([]model.Product, 0, len(raw.Products))
	for _, fp := range raw.Products {
		price, err := decimal.NewFromString(fp.Price)
		if err != nil {
			return nil, &ProductError{ID: fp.ID, Err: ErrInvalidProduct, Reason: "bad price " + fp.Price}
		}
		products = append(products, model.Product{
			ID:       fp.ID,
			Name:     fp.Name,
			Price:    price,
			Category: model.Category(fp.Category),
			Emoji:    fp.Emoji,
			Color:    fp.Color,
		})
	}
	return New(products)
}
