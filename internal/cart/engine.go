// Package cart implements the shopping cart state machine.
package cart

import (
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat sales tax applied to the subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Option configures an Engine.
type Option func(*Engine)

// WithTaxRate overrides the tax rate. Negative rates are ignored.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(e *Engine) {
		if !rate.IsNegative() {
			e.taxRate = rate
		}
	}
}

// Engine owns the ordered line items of a single cart.
//
// Invariants: at most one line per product id, every quantity >= 1,
// lines keep insertion order. Engine is not safe for concurrent use;
// callers serialize access.
type Engine struct {
	lines   []model.CartLine
	taxRate decimal.Decimal
}

// NewEngine creates an empty cart.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{taxRate: DefaultTaxRate}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TaxRate returns the rate used by ComputeTotals.
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// AddItem adds one unit of p. An existing line is incremented in place,
// otherwise a new line with quantity 1 is appended.
func (e *Engine) AddItem(p model.Product) {
	if i := e.index(p.ID); i >= 0 {
		e.lines[i].Quantity++
		return
	}
	e.lines = append(e.lines, model.CartLine{Product: p, Quantity: 1})
}

// UpdateQuantity adjusts the line for id by delta, clamping at zero.
// A line that reaches zero is removed. Unknown ids are ignored.
// It reports whether the cart changed.
func (e *Engine) UpdateQuantity(id string, delta int) bool {
	i := e.index(id)
	if i < 0 || delta == 0 {
		return false
	}

	qty := e.lines[i].Quantity + delta
	if qty > 0 {
		e.lines[i].Quantity = qty
		return true
	}

	e.lines = append(e.lines[:i], e.lines[i+1:]...)
	return true
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = nil
}

// Lines returns a snapshot of the cart in insertion order.
func (e *Engine) Lines() []model.CartLine {
	out := make([]model.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// ItemCount returns the sum of all quantities.
func (e *Engine) ItemCount() int {
	n := 0
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

// ComputeTotals derives subtotal, tax and total without rounding.
func (e *Engine) ComputeTotals() model.Totals {
	return Totals(e.lines, e.taxRate)
}

// AnalysisItems projects the cart onto the name/quantity pairs sent for analysis.
func (e *Engine) AnalysisItems() []model.AnalysisItem {
	items := make([]model.AnalysisItem, len(e.lines))
	for i, l := range e.lines {
		items[i] = model.AnalysisItem{Name: l.Name, Quantity: l.Quantity}
	}
	return items
}

// Totals computes totals for an arbitrary set of lines.
func Totals(lines []model.CartLine, taxRate decimal.Decimal) model.Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := subtotal.Mul(taxRate)
	return model.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func (e *Engine) index(id string) int {
	for i, l := range e.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
