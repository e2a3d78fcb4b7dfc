package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/analysis"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/messages"
	"github.com/guttosm/freshcart-pos/internal/middleware"
)

// GetAnalysis handles GET /api/analysis.
//
// @Summary      Get the analysis state
// @Description  Returns the session status and its latest result. The previous result stays visible while a new request is pending.
// @Tags         Analysis
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.AnalysisView}
// @Router       /api/analysis [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(newAnalysisView(h.register.AnalysisState()))
}

// RequestAnalysis handles POST /api/analysis.
//
// @Summary      Analyze the cart
// @Description  Sends the current cart to the analysis service and waits for the result. When the service fails the response carries the default suggestion with fallback=true and a one-time notice. An empty cart is answered without calling the service.
// @Tags         Analysis
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.AnalysisView}
// @Failure      409 {object} dto.ErrorResponse "Analysis already running or checkout in progress"
// @Failure      504 {object} dto.ErrorResponse "Request timed out"
// @Router       /api/analysis [post]
func (h *Handler) RequestAnalysis(c *gin.Context) {
	out, err := h.register.RequestAnalysis(c.Request.Context())
	if err != nil {
		h.auditLog(c, middleware.AuditEvent{
			Activity: model.ActivityAnalyze,
			Message:  "Cart analysis rejected",
			Err:      err,
		})
		h.writeRegisterError(c, err)
		return
	}

	delivered := c.Request.Context().Err() == nil
	fields := map[string]interface{}{
		"health_score": out.Result.HealthScore,
		"fallback":     out.Fallback,
		"discarded":    out.Discarded,
		"delivered":    delivered,
	}
	if out.Fallback {
		fields["notice"] = messages.Text(messages.NoticeAnalysisFallback)
		if out.Cause != nil {
			fields["cause"] = string(analysis.KindOf(out.Cause))
		}
	}
	h.auditLog(c, middleware.AuditEvent{
		Activity: model.ActivityAnalyze,
		Message:  "Cart analysis settled",
		Fields:   fields,
	})

	// The client may have given up while the service call ran; the audit
	// entry above still carries the notice.
	if !delivered {
		return
	}
	NewResponseBuilder(c).Success(http.StatusOK,
		newOutcomeView(out, h.register.AnalysisState()), messages.MsgAnalysisReady)
}
