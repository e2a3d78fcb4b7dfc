package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/service/cache"
)

// CachingClient serves repeated analyses of identical cart contents from a
// cache. Only successful results are stored.
type CachingClient struct {
	client Client
	cache  cache.Cache
}

// NewCachingClient wraps client with c. A nil cache disables caching.
func NewCachingClient(client Client, c cache.Cache) *CachingClient {
	return &CachingClient{client: client, cache: c}
}

// Analyze returns a cached result for the same items or calls the wrapped client.
func (c *CachingClient) Analyze(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error) {
	if c.cache == nil {
		return c.client.Analyze(ctx, items)
	}

	key := Fingerprint(items)
	if result, ok := c.cache.Get(key); ok {
		return result, nil
	}

	result, err := c.client.Analyze(ctx, items)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	c.cache.Set(key, result)
	return result, nil
}

// Fingerprint identifies cart contents independent of line order and name case.
func Fingerprint(items []model.AnalysisItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%dx%s", it.Quantity, strings.ToLower(strings.TrimSpace(it.Name)))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
