package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
)

// AuditEvent describes one register action.
type AuditEvent struct {
	Activity  model.Activity
	Message   string
	ReceiptID string
	// Err marks the action as rejected.
	Err    error
	Fields map[string]interface{}
}

// AuditLog records a register action with the request's metadata. Rejected
// actions are logged at warn. A nil sink disables auditing.
func AuditLog(sink AuditSink, c *gin.Context, ev AuditEvent) {
	if sink == nil {
		return
	}

	entry := &model.LogEntry{
		Timestamp: time.Now(),
		Level:     "info",
		Message:   ev.Message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Activity:  ev.Activity,
		ReceiptID: ev.ReceiptID,
	}
	entry.WithFields(ev.Fields)
	if ev.Err != nil {
		entry.Level = "warn"
		entry.Error = ev.Err.Error()
	}

	sink.Log(entry)
}
