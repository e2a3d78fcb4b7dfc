package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity names an audited register action.
type Activity string

const (
	ActivityCartAdd     Activity = "cart_add"
	ActivityCartUpdate  Activity = "cart_update"
	ActivityCartClear   Activity = "cart_clear"
	ActivityAnalyze     Activity = "analyze"
	ActivityCheckout    Activity = "checkout"
	ActivityAcknowledge Activity = "checkout_ack"
)

// LogEntry is one entry of the register activity log. HTTP request entries
// carry the request fields; audit entries also carry Activity and, for
// checkout, the receipt id. Anything else goes in Fields.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Activity   Activity               `bson:"activity,omitempty" json:"activity,omitempty"`
	ReceiptID  string                 `bson:"receipt_id,omitempty" json:"receipt_id,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// IsAudit reports whether the entry records a register action.
func (e *LogEntry) IsAudit() bool {
	return e.Activity != ""
}

// WithField sets one entry of Fields, allocating the map on first use.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into Fields.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	for k, v := range fields {
		e.WithField(k, v)
	}
	return e
}

// LogQueryOptions filters the activity log.
type LogQueryOptions struct {
	RequestID string
	Level     string
	Method    string
	Path      string
	Activity  Activity
	ReceiptID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
