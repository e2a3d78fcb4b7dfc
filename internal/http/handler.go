package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/analysis"
	"github.com/guttosm/freshcart-pos/internal/catalog"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/messages"
	"github.com/guttosm/freshcart-pos/internal/middleware"
	"github.com/guttosm/freshcart-pos/internal/service"
)

// Handler serves the register API: catalog, cart, analysis and checkout.
type Handler struct {
	register service.Register
	catalog  catalog.Provider
	audit    middleware.AuditSink
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditSink sends register actions to sink.
func WithAuditSink(sink middleware.AuditSink) HandlerOption {
	return func(h *Handler) {
		h.audit = sink
	}
}

// NewHandler creates a Handler for register selling from products.
func NewHandler(register service.Register, products catalog.Provider, opts ...HandlerOption) *Handler {
	h := &Handler{
		register: register,
		catalog:  products,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListProducts handles GET /api/products.
//
// @Summary      List catalog products
// @Description  Returns the catalog in display order, optionally narrowed to one category and to names containing q (case-insensitive).
// @Tags         Catalog
// @Produce      json
// @Param        category query string false "Category filter" Enums(Produce, Dairy, Bakery, Meat, Pantry, Beverages)
// @Param        q        query string false "Name search"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Product}
// @Failure      400 {object} dto.ErrorResponse "Unknown category"
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	category := model.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		builder.Error(http.StatusBadRequest, messages.ErrInvalidRequest,
			&dto.ValidationError{Field: "category", Message: "unknown category"})
		return
	}

	builder.SuccessOK(catalog.Filter(h.catalog.ListProducts(), category, c.Query("q")))
}

// ListCategories handles GET /api/categories.
//
// @Summary      List catalog categories
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CategoryView}
// @Router       /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories := make([]model.Category, len(model.Categories))
	copy(categories, model.Categories)
	NewResponseBuilder(c).SuccessOK(dto.CategoryView{Categories: categories})
}

// writeRegisterError maps a register error to its status and message.
func (h *Handler) writeRegisterError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		builder.Error(http.StatusNotFound, messages.ErrProductNotFound, err)
	case errors.Is(err, service.ErrCheckoutInProgress):
		builder.Error(http.StatusConflict, messages.ErrCheckoutInProgress, err)
	case errors.Is(err, analysis.ErrSessionBusy):
		builder.Error(http.StatusConflict, messages.ErrAnalysisBusy, err)
	case errors.Is(err, service.ErrEmptyCart):
		builder.Error(http.StatusConflict, messages.ErrEmptyCart, err)
	case errors.Is(err, service.ErrNoCheckout):
		builder.Error(http.StatusConflict, messages.ErrNoCheckout, err)
	case errors.Is(err, service.ErrReceiptMismatch):
		builder.Error(http.StatusConflict, messages.ErrReceiptMismatch, err)
	case service.IsInvalidOperation(err):
		builder.Error(http.StatusConflict, messages.ErrConflict, err)
	default:
		builder.Error(http.StatusInternalServerError, messages.ErrInternal, err)
	}
}

// writeBindError answers 400 for a body that failed to bind or validate.
func writeBindError(c *gin.Context, err error) {
	key := messages.ErrInvalidRequestBody
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		key = messages.ErrInvalidRequest
	}
	NewResponseBuilder(c).Error(http.StatusBadRequest, key, err)
}

func (h *Handler) auditLog(c *gin.Context, ev middleware.AuditEvent) {
	middleware.AuditLog(h.audit, c, ev)
}
