package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup registers a set of API routes.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegisterRoutes wires the register API under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/categories", h.ListCategories)

	cart := rg.Group("/cart")
	cart.GET("", h.GetCart)
	cart.DELETE("", h.ClearCart)
	cart.POST("/items", h.AddItem)
	cart.PATCH("/items/:id", h.UpdateQuantity)

	rg.GET("/analysis", h.GetAnalysis)
	rg.POST("/analysis", h.RequestAnalysis)

	checkout := rg.Group("/checkout")
	checkout.GET("", h.GetCheckout)
	checkout.POST("", h.Checkout)
	checkout.POST("/:id/ack", h.AcknowledgeCheckout)
}

// RegisterRoutes wires the activity log under rg.
func (h *LogsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", h.ListLogs)
}

var (
	_ RouteGroup = (*Handler)(nil)
	_ RouteGroup = (*LogsHandler)(nil)
)
