// Package cache holds analysis results for recently seen cart contents.
package cache

import "github.com/guttosm/freshcart-pos/internal/domain/model"

// Cache stores analysis results keyed by a cart fingerprint.
type Cache interface {
	Get(key string) (model.AnalysisResult, bool)
	Set(key string, value model.AnalysisResult)
	Stop()
}

// Metrics is a point-in-time view of cache usage, reported on readiness.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}
