package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/guttosm/freshcart-pos/internal/domain/dto"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/messages"
	"github.com/guttosm/freshcart-pos/internal/service"
)

// MaxLogsLimit caps one page of the activity log.
const MaxLogsLimit = 500

// LogsHandler serves the activity log.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a LogsHandler reading from logs.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// ListLogs handles GET /api/logs.
//
// @Summary      Query the activity log
// @Description  Returns activity log entries, newest first. Filters combine with AND; since and until are RFC 3339 timestamps.
// @Tags         Logs
// @Produce      json
// @Param        activity   query string false "Register action" Enums(cart_add, cart_update, cart_clear, analyze, checkout, checkout_ack)
// @Param        receipt_id query string false "Receipt id"
// @Param        request_id query string false "Request id"
// @Param        level      query string false "Log level"
// @Param        path       query string false "Path substring"
// @Param        since      query string false "Earliest timestamp (RFC 3339)"
// @Param        until      query string false "Latest timestamp (RFC 3339)"
// @Param        limit      query int    false "Page size (max 500)" default(100)
// @Param        skip       query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogListView}
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      503 {object} dto.ErrorResponse "Activity log unavailable"
// @Router       /api/logs [get]
func (h *LogsHandler) ListLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := parseLogQuery(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, messages.ErrInvalidRequest, err)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		h.writeLogsError(c, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		h.writeLogsError(c, err)
		return
	}

	builder.SuccessOK(dto.LogListView{
		Entries: entries,
		Total:   total,
		Limit:   opts.Limit,
		Skip:    opts.Skip,
	})
}

func (h *LogsHandler) writeLogsError(c *gin.Context, err error) {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		NewResponseBuilder(c).Error(http.StatusServiceUnavailable, messages.ErrLogsUnavailable, err)
		return
	}
	NewResponseBuilder(c).Error(http.StatusInternalServerError, messages.ErrInternal, err)
}

func parseLogQuery(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		RequestID: c.Query("request_id"),
		Level:     c.Query("level"),
		Path:      c.Query("path"),
		Activity:  model.Activity(c.Query("activity")),
		ReceiptID: c.Query("receipt_id"),
		Limit:     100,
	}

	var err error
	if opts.Limit, err = intParam(c, "limit", opts.Limit, 1, MaxLogsLimit); err != nil {
		return opts, err
	}
	if opts.Skip, err = intParam(c, "skip", 0, 0, -1); err != nil {
		return opts, err
	}
	if opts.StartTime, err = timeParam(c, "since"); err != nil {
		return opts, err
	}
	if opts.EndTime, err = timeParam(c, "until"); err != nil {
		return opts, err
	}
	if opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime) {
		return opts, &dto.ValidationError{Field: "until", Message: "must not be before since"}
	}
	return opts, nil
}

// intParam parses an integer query parameter in [lo, hi]; hi < 0 means
// unbounded.
func intParam(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || (hi >= 0 && n > hi) {
		msg := "must be an integer of at least " + strconv.Itoa(lo)
		if hi >= 0 {
			msg = "must be an integer between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)
		}
		return 0, &dto.ValidationError{Field: name, Message: msg}
	}
	return n, nil
}

func timeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &dto.ValidationError{Field: name, Message: "must be an RFC 3339 timestamp"}
	}
	return &t, nil
}
