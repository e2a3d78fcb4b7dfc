package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name  string
		entry *LogEntry
		key   string
		value interface{}
		want  map[string]interface{}
	}{
		{
			name:  "nil fields are allocated",
			entry: &LogEntry{},
			key:   "product_id",
			value: "1",
			want:  map[string]interface{}{"product_id": "1"},
		},
		{
			name:  "existing fields are kept",
			entry: &LogEntry{Fields: map[string]interface{}{"delta": -1}},
			key:   "product_id",
			value: "4",
			want:  map[string]interface{}{"delta": -1, "product_id": "4"},
		},
		{
			name:  "same key is overwritten",
			entry: &LogEntry{Fields: map[string]interface{}{"items": 2}},
			key:   "items",
			value: 3,
			want:  map[string]interface{}{"items": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, got)
			assert.Equal(t, tt.want, got.Fields)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := (&LogEntry{}).WithFields(map[string]interface{}{
		"items": 3,
		"total": "5.49",
	})
	assert.Equal(t, 3, entry.Fields["items"])
	assert.Equal(t, "5.49", entry.Fields["total"])

	empty := (&LogEntry{}).WithFields(nil)
	assert.Nil(t, empty.Fields)
}

func TestLogEntry_IsAudit(t *testing.T) {
	assert.False(t, (&LogEntry{Message: "GET /api/cart"}).IsAudit())
	assert.True(t, (&LogEntry{Activity: ActivityCheckout}).IsAudit())
}
