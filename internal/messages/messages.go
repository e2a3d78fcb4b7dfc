// Package messages holds the user-facing text of API responses.
package messages

// Key identifies a message.
type Key string

const (
	ErrInvalidRequest     Key = "error.invalid_request"
	ErrInvalidRequestBody Key = "error.invalid_request_body"
	ErrInternal           Key = "error.internal_error"
	ErrNotFound           Key = "error.not_found"
	ErrProductNotFound    Key = "error.product_not_found"
	ErrConflict           Key = "error.conflict"
	ErrCheckoutInProgress Key = "error.checkout_in_progress"
	ErrAnalysisBusy       Key = "error.analysis_busy"
	ErrEmptyCart          Key = "error.empty_cart"
	ErrNoCheckout         Key = "error.no_checkout"
	ErrReceiptMismatch    Key = "error.receipt_mismatch"
	ErrRateLimitExceeded  Key = "error.rate_limit_exceeded"
	ErrTimeout            Key = "error.timeout"
	ErrIdempotencyReplay  Key = "error.idempotency_in_progress"
	ErrLogsUnavailable    Key = "error.logs_unavailable"

	MsgItemAdded         Key = "success.item_added"
	MsgQuantityUpdated   Key = "success.quantity_updated"
	MsgQuantityUnchanged Key = "success.quantity_unchanged"
	MsgCartCleared       Key = "success.cart_cleared"
	MsgAnalysisReady     Key = "success.analysis_ready"
	MsgCheckoutStarted   Key = "success.checkout_started"
	MsgCheckoutComplete  Key = "success.checkout_complete"

	// NoticeAnalysisFallback is shown once with a fallback analysis result.
	NoticeAnalysisFallback Key = "notice.analysis_fallback"
)

var catalog = map[Key]string{
	ErrInvalidRequest:     "Invalid request",
	ErrInvalidRequestBody: "Invalid request body",
	ErrInternal:           "An unexpected error occurred",
	ErrNotFound:           "Resource not found",
	ErrProductNotFound:    "Product not found",
	ErrConflict:           "The request conflicts with the current register state",
	ErrCheckoutInProgress: "A checkout is in progress; acknowledge the receipt first",
	ErrAnalysisBusy:       "An analysis is already running for this cart",
	ErrEmptyCart:          "The cart is empty",
	ErrNoCheckout:         "There is no checkout to acknowledge",
	ErrReceiptMismatch:    "The receipt does not match the pending checkout",
	ErrRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	ErrTimeout:            "Request timed out",
	ErrIdempotencyReplay:  "A request with this idempotency key is still being processed",
	ErrLogsUnavailable:    "The activity log is unavailable right now",

	MsgItemAdded:         "Item added to cart",
	MsgQuantityUpdated:   "Quantity updated",
	MsgQuantityUnchanged: "Product is not in the cart",
	MsgCartCleared:       "Cart cleared",
	MsgAnalysisReady:     "Cart analysis ready",
	MsgCheckoutStarted:   "Checkout complete, please review the receipt",
	MsgCheckoutComplete:  "Thank you for shopping",

	NoticeAnalysisFallback: "Chef AI is offline right now, showing a default suggestion.",
}

// Text returns the message for key, or the key itself when unknown.
func Text(key Key) string {
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return string(key)
}
