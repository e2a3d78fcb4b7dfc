package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/freshcart-pos/internal/analysis"
	"github.com/guttosm/freshcart-pos/internal/cart"
	"github.com/guttosm/freshcart-pos/internal/catalog"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidOperation is the parent of every state-machine rejection.
var ErrInvalidOperation = errors.New("invalid operation")

var (
	// ErrCheckoutInProgress is returned for cart or analysis changes while a
	// checkout awaits acknowledgment.
	ErrCheckoutInProgress = fmt.Errorf("%w: checkout in progress", ErrInvalidOperation)
	// ErrNoCheckout is returned when acknowledging without a pending checkout.
	ErrNoCheckout = fmt.Errorf("%w: no checkout in progress", ErrInvalidOperation)
	// ErrReceiptMismatch is returned when the acknowledged receipt is not the pending one.
	ErrReceiptMismatch = fmt.Errorf("%w: receipt does not match pending checkout", ErrInvalidOperation)
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrInvalidOperation)
	// ErrProductNotFound is returned when adding an id the catalog does not know.
	ErrProductNotFound = errors.New("product not found")
)

// IsInvalidOperation reports whether err is a state-machine rejection,
// including a busy analysis session.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation) || errors.Is(err, analysis.ErrSessionBusy)
}

// CartSnapshot is the cart read model.
type CartSnapshot struct {
	Lines     []model.CartLine
	Totals    model.Totals
	ItemCount int
	TaxRate   decimal.Decimal
	// CheckoutReceiptID is set while a checkout awaits acknowledgment.
	CheckoutReceiptID string
}

// Register is the single point of sale. It owns the only cart and analysis
// session and is the only path that mutates them.
type Register interface {
	Cart() CartSnapshot
	AddItem(productID string) (CartSnapshot, error)
	UpdateQuantity(productID string, delta int) (CartSnapshot, bool, error)
	ClearCart() (CartSnapshot, error)

	AnalysisState() analysis.State
	RequestAnalysis(ctx context.Context) (analysis.Outcome, error)

	Checkout() (model.Receipt, error)
	PendingCheckout() (model.Receipt, bool)
	AcknowledgeCheckout(receiptID string) error
}

// RegisterOption configures a RegisterImpl.
type RegisterOption func(*RegisterImpl)

// WithCart replaces the default cart engine.
func WithCart(engine *cart.Engine) RegisterOption {
	return func(r *RegisterImpl) {
		if engine != nil {
			r.cart = engine
		}
	}
}

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) RegisterOption {
	return func(r *RegisterImpl) {
		if now != nil {
			r.now = now
		}
	}
}

// WithReceiptIDs overrides receipt id generation.
func WithReceiptIDs(next func() string) RegisterOption {
	return func(r *RegisterImpl) {
		if next != nil {
			r.newID = next
		}
	}
}

// RegisterImpl implements Register. Cart operations are serialized by mu;
// the analysis service call runs outside it.
type RegisterImpl struct {
	catalog catalog.Provider
	session *analysis.Session
	now     func() time.Time
	newID   func() string

	mu      sync.Mutex
	cart    *cart.Engine
	pending *model.Receipt
}

// NewRegister creates a register with an empty cart and an idle session.
func NewRegister(products catalog.Provider, session *analysis.Session, opts ...RegisterOption) *RegisterImpl {
	r := &RegisterImpl{
		catalog: products,
		session: session,
		cart:    cart.NewEngine(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cart returns the current cart read model.
func (r *RegisterImpl) Cart() CartSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// AddItem adds one unit of the catalog product.
func (r *RegisterImpl) AddItem(productID string) (CartSnapshot, error) {
	p, ok := r.catalog.Product(productID)
	if !ok {
		metrics.RecordCartOperation("add", "not_found", r.Cart().ItemCount)
		return CartSnapshot{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		metrics.RecordCartOperation("add", "rejected", r.cart.ItemCount())
		return r.snapshot(), ErrCheckoutInProgress
	}
	r.cart.AddItem(p)
	metrics.RecordCartOperation("add", "success", r.cart.ItemCount())
	return r.snapshot(), nil
}

// UpdateQuantity adjusts a line by delta. Unknown ids are not an error;
// the boolean reports whether the cart changed.
func (r *RegisterImpl) UpdateQuantity(productID string, delta int) (CartSnapshot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		metrics.RecordCartOperation("update", "rejected", r.cart.ItemCount())
		return r.snapshot(), false, ErrCheckoutInProgress
	}
	changed := r.cart.UpdateQuantity(productID, delta)
	result := "success"
	if !changed {
		result = "noop"
	}
	metrics.RecordCartOperation("update", result, r.cart.ItemCount())
	return r.snapshot(), changed, nil
}

// ClearCart empties the cart and resets the analysis session together.
func (r *RegisterImpl) ClearCart() (CartSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		metrics.RecordCartOperation("clear", "rejected", r.cart.ItemCount())
		return r.snapshot(), ErrCheckoutInProgress
	}
	r.cart.Clear()
	r.session.Reset()
	metrics.RecordCartOperation("clear", "success", 0)
	return r.snapshot(), nil
}

// AnalysisState returns the session read model.
func (r *RegisterImpl) AnalysisState() analysis.State {
	return r.session.State()
}

// RequestAnalysis analyzes the cart as it is now. The request is admitted
// under the register lock and awaited outside it, so the cart stays usable
// while the service call is pending. The call is detached from ctx
// cancellation; the analysis client bounds its duration.
func (r *RegisterImpl) RequestAnalysis(ctx context.Context) (analysis.Outcome, error) {
	r.mu.Lock()
	if r.pending != nil {
		r.mu.Unlock()
		metrics.RecordAnalysis("rejected")
		return analysis.Outcome{}, ErrCheckoutInProgress
	}
	call, err := r.session.Start(r.cart.AnalysisItems())
	r.mu.Unlock()
	if err != nil {
		return analysis.Outcome{}, err
	}

	return call.Run(context.WithoutCancel(ctx)), nil
}

// Checkout freezes the cart and returns the receipt for it.
func (r *RegisterImpl) Checkout() (model.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		metrics.RecordCheckout("rejected", 0)
		return model.Receipt{}, ErrCheckoutInProgress
	}
	if r.cart.IsEmpty() {
		metrics.RecordCheckout("rejected", 0)
		return model.Receipt{}, ErrEmptyCart
	}

	receipt := model.Receipt{
		ID:       r.newID(),
		IssuedAt: r.now(),
		Lines:    r.cart.Lines(),
		Totals:   r.cart.ComputeTotals(),
	}
	r.pending = &receipt

	amount, _ := receipt.Totals.Total.Float64()
	metrics.RecordCheckout("started", amount)
	log.Info().
		Str("receipt_id", receipt.ID).
		Int("items", receipt.ItemCount()).
		Str("total", receipt.Totals.Rounded().Total.StringFixed(model.DisplayPlaces)).
		Msg("Checkout started")

	return copyReceipt(receipt), nil
}

// PendingCheckout returns the receipt awaiting acknowledgment, if any.
func (r *RegisterImpl) PendingCheckout() (model.Receipt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return model.Receipt{}, false
	}
	return copyReceipt(*r.pending), true
}

// AcknowledgeCheckout completes the checkout: the cart is cleared and the
// session reset in one critical section.
func (r *RegisterImpl) AcknowledgeCheckout(receiptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		metrics.RecordCheckout("ack_rejected", 0)
		return ErrNoCheckout
	}
	if r.pending.ID != receiptID {
		metrics.RecordCheckout("ack_rejected", 0)
		return ErrReceiptMismatch
	}

	r.cart.Clear()
	r.session.Reset()
	r.pending = nil

	metrics.RecordCheckout("acknowledged", 0)
	metrics.RecordCartOperation("checkout", "success", 0)
	log.Info().Str("receipt_id", receiptID).Msg("Checkout acknowledged")
	return nil
}

// snapshot builds the read model. Callers hold r.mu.
func (r *RegisterImpl) snapshot() CartSnapshot {
	s := CartSnapshot{
		Lines:     r.cart.Lines(),
		Totals:    r.cart.ComputeTotals(),
		ItemCount: r.cart.ItemCount(),
		TaxRate:   r.cart.TaxRate(),
	}
	if r.pending != nil {
		s.CheckoutReceiptID = r.pending.ID
	}
	return s
}

func copyReceipt(rc model.Receipt) model.Receipt {
	lines := make([]model.CartLine, len(rc.Lines))
	copy(lines, rc.Lines)
	rc.Lines = lines
	return rc
}
