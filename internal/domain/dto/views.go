package dto

import (
	"time"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

// CartLineView is one cart line with display-rounded amounts.
//
// @Description Cart line
type CartLineView struct {
	ProductID string         `json:"product_id" example:"1"`
	Name      string         `json:"name" example:"Banana"`
	Category  model.Category `json:"category" example:"Produce"`
	Emoji     string         `json:"emoji" example:"🍌"`
	Color     string         `json:"color" example:"bg-yellow-100"`
	UnitPrice string         `json:"unit_price" example:"0.79"`
	Quantity  int            `json:"quantity" example:"2"`
	LineTotal string         `json:"line_total" example:"1.58"`
} // @name CartLineView

// CartView is the cart read model.
//
// @Description Cart with derived totals
type CartView struct {
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count" example:"3"`
	Subtotal  string         `json:"subtotal" example:"5.08"`
	Tax       string         `json:"tax" example:"0.41"`
	Total     string         `json:"total" example:"5.49"`
	TaxRate   string         `json:"tax_rate" example:"0.08"`
	// CheckoutReceiptID is set while a checkout awaits acknowledgment
	CheckoutReceiptID string `json:"checkout_receipt_id,omitempty" example:"6f1c2a1e-5b9d-4a57-9a51-0d0d3c1b9f10"`
} // @name CartView

// UpdateQuantityView is the cart after an adjustment and whether it changed.
//
// @Description Cart after a quantity adjustment
type UpdateQuantityView struct {
	Cart    CartView `json:"cart"`
	Changed bool     `json:"changed" example:"true"`
} // @name UpdateQuantityView

// AnalysisResultView is an analysis result with its display band.
//
// @Description Cart health analysis
type AnalysisResultView struct {
	HealthScore   int             `json:"health_score" example:"72"`
	HealthSummary string          `json:"health_summary" example:"A balanced cart with plenty of produce."`
	ScoreBand     model.ScoreBand `json:"score_band" example:"fair"`
	Recipes       []model.Recipe  `json:"recipes"`
} // @name AnalysisResultView

// AnalysisView is the analysis session read model.
//
// @Description Analysis session state
type AnalysisView struct {
	Status   string              `json:"status" example:"ready" enums:"idle,pending,ready"`
	Result   *AnalysisResultView `json:"result,omitempty"`
	Fallback bool                `json:"fallback" example:"false"`
	// Busy is true while a service call is running; a new request gets 409
	Busy bool `json:"busy" example:"false"`
	// Notice is set once, on the response of the request that fell back
	Notice string `json:"notice,omitempty" example:"Chef AI is offline right now, showing a default suggestion."`
} // @name AnalysisView

// ReceiptView is a completed checkout.
//
// @Description Checkout receipt
type ReceiptView struct {
	ReceiptID string         `json:"receipt_id" example:"6f1c2a1e-5b9d-4a57-9a51-0d0d3c1b9f10"`
	IssuedAt  time.Time      `json:"issued_at" example:"2026-01-28T10:00:00Z"`
	Date      string         `json:"date" example:"2026-01-28"`
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count" example:"3"`
	Subtotal  string         `json:"subtotal" example:"5.08"`
	Tax       string         `json:"tax" example:"0.41"`
	Total     string         `json:"total" example:"5.49"`
} // @name ReceiptView

// CategoryView lists the catalog categories.
//
// @Description Catalog categories
type CategoryView struct {
	Categories []model.Category `json:"categories"`
} // @name CategoryView

// ReceiptDateLayout formats ReceiptView.Date.
const ReceiptDateLayout = "2006-01-02"

// Money formats an amount rounded to display places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(model.DisplayPlaces)
}

// NewCartLineViews maps cart lines in order.
func NewCartLineViews(lines []model.CartLine) []CartLineView {
	views := make([]CartLineView, len(lines))
	for i, l := range lines {
		views[i] = CartLineView{
			ProductID: l.ID,
			Name:      l.Name,
			Category:  l.Category,
			Emoji:     l.Emoji,
			Color:     l.Color,
			UnitPrice: Money(l.Price),
			Quantity:  l.Quantity,
			LineTotal: Money(l.LineTotal()),
		}
	}
	return views
}

// NewAnalysisResultView maps a result and derives its band.
func NewAnalysisResultView(r model.AnalysisResult) *AnalysisResultView {
	recipes := r.Clone().Recipes
	return &AnalysisResultView{
		HealthScore:   r.HealthScore,
		HealthSummary: r.HealthSummary,
		ScoreBand:     r.Band(),
		Recipes:       recipes,
	}
}

// NewReceiptView maps a receipt. Amounts are rounded here and only here.
func NewReceiptView(r model.Receipt) ReceiptView {
	return ReceiptView{
		ReceiptID: r.ID,
		IssuedAt:  r.IssuedAt,
		Date:      r.IssuedAt.Format(ReceiptDateLayout),
		Lines:     NewCartLineViews(r.Lines),
		ItemCount: r.ItemCount(),
		Subtotal:  Money(r.Totals.Subtotal),
		Tax:       Money(r.Totals.Tax),
		Total:     Money(r.Totals.Total),
	}
}

// LogListView is one page of the activity log.
//
// @Description Activity log page
type LogListView struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total" example:"42"`
	Limit   int              `json:"limit" example:"100"`
	Skip    int              `json:"skip" example:"0"`
} // @name LogListView
