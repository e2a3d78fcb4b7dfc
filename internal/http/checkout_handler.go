package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/messages"
	"github.com/guttosm/freshcart-pos/internal/middleware"
)

// Checkout handles POST /api/checkout.
//
// @Summary      Check out the cart
// @Description  Freezes the cart and issues a receipt. The cart cannot change until the receipt is acknowledged.
// @Tags         Checkout
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Success      201 {object} dto.SuccessResponse{data=dto.ReceiptView}
// @Failure      409 {object} dto.ErrorResponse "Empty cart or checkout already in progress"
// @Router       /api/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	receipt, err := h.register.Checkout()
	ev := middleware.AuditEvent{
		Activity:  model.ActivityCheckout,
		Message:   "Checkout started",
		ReceiptID: receipt.ID,
		Err:       err,
	}
	if err == nil {
		ev.Fields = map[string]interface{}{
			"items": receipt.ItemCount(),
			"total": dto.Money(receipt.Totals.Total),
		}
	}
	h.auditLog(c, ev)
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessCreated(dto.NewReceiptView(receipt), messages.MsgCheckoutStarted)
}

// GetCheckout handles GET /api/checkout.
//
// @Summary      Get the pending receipt
// @Tags         Checkout
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.ReceiptView}
// @Failure      404 {object} dto.ErrorResponse "No checkout in progress"
// @Router       /api/checkout [get]
func (h *Handler) GetCheckout(c *gin.Context) {
	receipt, ok := h.register.PendingCheckout()
	if !ok {
		NewResponseBuilder(c).Error(http.StatusNotFound, messages.ErrNoCheckout, nil)
		return
	}
	NewResponseBuilder(c).SuccessOK(dto.NewReceiptView(receipt))
}

// AcknowledgeCheckout handles POST /api/checkout/:id/ack.
//
// @Summary      Acknowledge a receipt
// @Description  Completes the pending checkout: the cart is cleared and the analysis session reset.
// @Tags         Checkout
// @Produce      json
// @Param        id path string true "Receipt id"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartView}
// @Failure      409 {object} dto.ErrorResponse "No checkout in progress or receipt mismatch"
// @Router       /api/checkout/{id}/ack [post]
func (h *Handler) AcknowledgeCheckout(c *gin.Context) {
	receiptID := c.Param("id")

	err := h.register.AcknowledgeCheckout(receiptID)
	h.auditLog(c, middleware.AuditEvent{
		Activity:  model.ActivityAcknowledge,
		Message:   "Checkout acknowledged",
		ReceiptID: receiptID,
		Err:       err,
	})
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}

	NewResponseBuilder(c).Success(http.StatusOK, newCartView(h.register.Cart()), messages.MsgCheckoutComplete)
}
