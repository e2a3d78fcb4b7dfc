//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	repo := NewLogsRepository(db)
	base := time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond)

	t.Run("create fills id and timestamp", func(t *testing.T) {
		entry := &LogEntryDocument{
			Level:      "info",
			Message:    "HTTP request",
			RequestID:  "req-http",
			Method:     "GET",
			Path:       "/api/cart",
			StatusCode: 200,
			Duration:   3,
		}
		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("create many audit entries", func(t *testing.T) {
		entries := []*LogEntryDocument{
			{Timestamp: base, Level: "info", Message: "Item added", Activity: "cart_add", RequestID: "req-a",
				Fields: map[string]interface{}{"product_id": "1"}},
			{Timestamp: base.Add(time.Minute), Level: "info", Message: "Checkout started", Activity: "checkout", ReceiptID: "rcpt-1"},
			{Timestamp: base.Add(2 * time.Minute), Level: "info", Message: "Checkout acknowledged", Activity: "checkout_ack", ReceiptID: "rcpt-1"},
		}
		require.NoError(t, repo.CreateMany(ctx, entries))
		assert.NoError(t, repo.CreateMany(ctx, nil))
	})

	t.Run("query by activity", func(t *testing.T) {
		got, err := repo.Query(ctx, LogQueryOptions{Activity: "cart_add"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "req-a", got[0].RequestID)
		assert.Equal(t, "1", got[0].Fields["product_id"])
	})

	t.Run("query by receipt is newest first", func(t *testing.T) {
		got, err := repo.Query(ctx, LogQueryOptions{ReceiptID: "rcpt-1"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "checkout_ack", got[0].Activity)
		assert.Equal(t, "checkout", got[1].Activity)
	})

	t.Run("query by path substring", func(t *testing.T) {
		got, err := repo.Query(ctx, LogQueryOptions{Path: "/API/CART"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "req-http", got[0].RequestID)
	})

	t.Run("limit and skip", func(t *testing.T) {
		got, err := repo.Query(ctx, LogQueryOptions{Limit: 1, Skip: 1})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("time window", func(t *testing.T) {
		end := base.Add(90 * time.Second)
		n, err := repo.Count(ctx, LogQueryOptions{StartTime: &base, EndTime: &end})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("count all", func(t *testing.T) {
		n, err := repo.Count(ctx, LogQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("no match is an empty slice", func(t *testing.T) {
		got, err := repo.Query(ctx, LogQueryOptions{RequestID: "missing"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("mongodb-logs"))
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "Cart cleared", Activity: "cart_clear"}))

	n, err := repo.Count(ctx, LogQueryOptions{Activity: "cart_clear"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
}
