package cart

import (
	"math/rand"
	"testing"

	"github.com/guttosm/freshcart-pos/internal/catalog"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, id string) model.Product {
	t.Helper()
	p, ok := catalog.Default().Product(id)
	require.True(t, ok, "product %s", id)
	return p
}

func ids(lines []model.CartLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.ID
	}
	return out
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{name: "default tax rate", want: "0.08"},
		{name: "custom tax rate", options: []Option{WithTaxRate(decimal.RequireFromString("0.2"))}, want: "0.2"},
		{name: "negative tax rate ignored", options: []Option{WithTaxRate(decimal.NewFromInt(-1))}, want: "0.08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.options...)
			assert.True(t, e.IsEmpty())
			assert.Equal(t, tt.want, e.TaxRate().String())
		})
	}
}

func TestEngine_AddItemMerges(t *testing.T) {
	e := NewEngine()
	banana := testProduct(t, "1")
	milk := testProduct(t, "6")

	e.AddItem(banana)
	e.AddItem(milk)
	e.AddItem(banana)
	e.AddItem(banana)

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"1", "6"}, ids(lines))
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 4, e.ItemCount())
}

func TestEngine_AddItemNeverDuplicates(t *testing.T) {
	products := catalog.Default().ListProducts()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		e := NewEngine()
		counts := make(map[string]int)
		for i := 0; i < 40; i++ {
			p := products[rng.Intn(len(products))]
			e.AddItem(p)
			counts[p.ID]++
		}

		seen := make(map[string]bool)
		for _, l := range e.Lines() {
			require.False(t, seen[l.ID], "duplicate line %s", l.ID)
			seen[l.ID] = true
			assert.Equal(t, counts[l.ID], l.Quantity)
		}
		assert.Len(t, seen, len(counts))
	}
}

func TestEngine_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		delta       int
		wantChanged bool
		wantIDs     []string
		wantQty     map[string]int
	}{
		{
			name:        "increment",
			id:          "6",
			delta:       4,
			wantChanged: true,
			wantIDs:     []string{"1", "6", "9"},
			wantQty:     map[string]int{"1": 2, "6": 5, "9": 1},
		},
		{
			name:        "decrement keeps line",
			id:          "1",
			delta:       -1,
			wantChanged: true,
			wantIDs:     []string{"1", "6", "9"},
			wantQty:     map[string]int{"1": 1, "6": 1, "9": 1},
		},
		{
			name:        "reaching zero removes and keeps order",
			id:          "6",
			delta:       -1,
			wantChanged: true,
			wantIDs:     []string{"1", "9"},
			wantQty:     map[string]int{"1": 2, "9": 1},
		},
		{
			name:        "below zero clamps and removes",
			id:          "1",
			delta:       -10,
			wantChanged: true,
			wantIDs:     []string{"6", "9"},
			wantQty:     map[string]int{"6": 1, "9": 1},
		},
		{
			name:    "unknown id is a no-op",
			id:      "404",
			delta:   3,
			wantIDs: []string{"1", "6", "9"},
			wantQty: map[string]int{"1": 2, "6": 1, "9": 1},
		},
		{
			name:    "zero delta is a no-op",
			id:      "1",
			wantIDs: []string{"1", "6", "9"},
			wantQty: map[string]int{"1": 2, "6": 1, "9": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			e.AddItem(testProduct(t, "1"))
			e.AddItem(testProduct(t, "6"))
			e.AddItem(testProduct(t, "9"))
			e.AddItem(testProduct(t, "1"))

			changed := e.UpdateQuantity(tt.id, tt.delta)

			assert.Equal(t, tt.wantChanged, changed)
			lines := e.Lines()
			assert.Equal(t, tt.wantIDs, ids(lines))
			for _, l := range lines {
				assert.Equal(t, tt.wantQty[l.ID], l.Quantity, "quantity of %s", l.ID)
				assert.GreaterOrEqual(t, l.Quantity, 1)
			}
		})
	}
}

func TestEngine_BananaAddedThreeTimesThenRemoved(t *testing.T) {
	e := NewEngine()
	banana := testProduct(t, "1")
	for i := 0; i < 3; i++ {
		e.AddItem(banana)
	}

	assert.True(t, e.UpdateQuantity("1", -5))

	assert.True(t, e.IsEmpty())
}

func TestEngine_Clear(t *testing.T) {
	e := NewEngine()
	e.AddItem(testProduct(t, "1"))
	e.AddItem(testProduct(t, "2"))

	e.Clear()

	assert.True(t, e.IsEmpty())
	assert.Empty(t, e.Lines())
	assert.Equal(t, 0, e.ItemCount())
	assert.True(t, e.ComputeTotals().Total.IsZero())
}

func TestEngine_LinesIsSnapshot(t *testing.T) {
	e := NewEngine()
	e.AddItem(testProduct(t, "1"))

	lines := e.Lines()
	lines[0].Quantity = 99

	require.Len(t, e.Lines(), 1)
	assert.Equal(t, 1, e.Lines()[0].Quantity)
}

func TestEngine_ComputeTotals(t *testing.T) {
	e := NewEngine()
	banana := testProduct(t, "1")
	e.AddItem(banana)
	e.AddItem(banana)
	e.AddItem(testProduct(t, "6"))

	first := e.ComputeTotals()
	second := e.ComputeTotals()

	assert.True(t, decimal.RequireFromString("5.08").Equal(first.Subtotal))
	assert.True(t, decimal.RequireFromString("0.4064").Equal(first.Tax))
	assert.True(t, decimal.RequireFromString("5.4864").Equal(first.Total))
	assert.Equal(t, "5.49", first.Rounded().Total.StringFixed(2))
	assert.Equal(t, "0.41", first.Rounded().Tax.StringFixed(2))

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))

	expected := first.Subtotal.Add(first.Subtotal.Mul(DefaultTaxRate))
	assert.True(t, expected.Equal(first.Total))
}

func TestEngine_ComputeTotalsNoCompoundingRounding(t *testing.T) {
	e := NewEngine()
	water := testProduct(t, "16")
	for i := 0; i < 7; i++ {
		e.AddItem(water)
	}

	totals := e.ComputeTotals()

	// 6.93 * 0.08 = 0.5544 exactly
	assert.Equal(t, "0.5544", totals.Tax.String())
	assert.Equal(t, "7.4844", totals.Total.String())
}

func TestEngine_AnalysisItems(t *testing.T) {
	e := NewEngine()
	e.AddItem(testProduct(t, "3"))
	e.AddItem(testProduct(t, "9"))
	e.AddItem(testProduct(t, "3"))

	assert.Equal(t, []model.AnalysisItem{
		{Name: "Avocado", Quantity: 2},
		{Name: "Bread", Quantity: 1},
	}, e.AnalysisItems())
}
