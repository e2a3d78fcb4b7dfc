package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/messages"
	"github.com/guttosm/freshcart-pos/internal/middleware"
)

// GetCart handles GET /api/cart.
//
// @Summary      Get the cart
// @Description  Returns the cart lines in insertion order with display-rounded totals. checkout_receipt_id is set while a checkout awaits acknowledgment.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CartView}
// @Router       /api/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(newCartView(h.register.Cart()))
}

// AddItem handles POST /api/cart/items.
//
// @Summary      Add one unit of a product
// @Description  Adds one unit of a catalog product. A product already in the cart has its quantity incremented; a new one is appended.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body dto.AddItemRequest true "Product to add"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartView}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      409 {object} dto.ErrorResponse "Checkout in progress"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Router       /api/cart/items [post]
func (h *Handler) AddItem(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.AddItemRequest](c)
	if err != nil {
		writeBindError(c, err)
		return
	}

	snapshot, err := h.register.AddItem(req.ProductID)
	h.auditLog(c, middleware.AuditEvent{
		Activity: model.ActivityCartAdd,
		Message:  "Item added to cart",
		Err:      err,
		Fields:   map[string]interface{}{"product_id": req.ProductID},
	})
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}

	NewResponseBuilder(c).Success(http.StatusOK, newCartView(snapshot), messages.MsgItemAdded)
}

// UpdateQuantity handles PATCH /api/cart/items/:id.
//
// @Summary      Adjust a line quantity
// @Description  Adds delta to the line's quantity; a line reaching zero or below is removed. An id not in the cart leaves it unchanged and reports changed=false.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        id path string true "Product id"
// @Param        request body dto.UpdateQuantityRequest true "Quantity delta"
// @Success      200 {object} dto.SuccessResponse{data=dto.UpdateQuantityView}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      409 {object} dto.ErrorResponse "Checkout in progress"
// @Router       /api/cart/items/{id} [patch]
func (h *Handler) UpdateQuantity(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.UpdateQuantityRequest](c)
	if err != nil {
		writeBindError(c, err)
		return
	}
	productID := c.Param("id")

	snapshot, changed, err := h.register.UpdateQuantity(productID, *req.Delta)
	h.auditLog(c, middleware.AuditEvent{
		Activity: model.ActivityCartUpdate,
		Message:  "Cart quantity adjusted",
		Err:      err,
		Fields: map[string]interface{}{
			"product_id": productID,
			"delta":      *req.Delta,
			"changed":    changed,
		},
	})
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}

	key := messages.MsgQuantityUpdated
	if !changed {
		key = messages.MsgQuantityUnchanged
	}
	NewResponseBuilder(c).Success(http.StatusOK, dto.UpdateQuantityView{
		Cart:    newCartView(snapshot),
		Changed: changed,
	}, key)
}

// ClearCart handles DELETE /api/cart.
//
// @Summary      Clear the cart
// @Description  Empties the cart and resets the analysis session.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CartView}
// @Failure      409 {object} dto.ErrorResponse "Checkout in progress"
// @Router       /api/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	snapshot, err := h.register.ClearCart()
	h.auditLog(c, middleware.AuditEvent{
		Activity: model.ActivityCartClear,
		Message:  "Cart cleared",
		Err:      err,
	})
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}

	NewResponseBuilder(c).Success(http.StatusOK, newCartView(snapshot), messages.MsgCartCleared)
}
