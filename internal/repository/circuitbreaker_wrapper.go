package repository

import (
	"context"
	"errors"

	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
)

// LogsRepositoryWithCircuitBreaker guards a logs repository with a circuit
// breaker. Writes are dropped silently while the circuit is open; the
// activity log never blocks the register.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// Create stores one entry.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return dropWhenOpen(r.cb.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

// CreateMany stores a batch of entries.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return dropWhenOpen(r.cb.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

// Query reads entries. An open circuit is returned as ErrCircuitOpen.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.cb.Execute(ctx, func() error {
		var err error
		result, err = r.repo.Query(ctx, opts)
		return err
	})
	return result, err
}

// Count counts entries. An open circuit is returned as ErrCircuitOpen.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var n int64
	err := r.cb.Execute(ctx, func() error {
		var err error
		n, err = r.repo.Count(ctx, opts)
		return err
	})
	return n, err
}

// CircuitBreaker returns the breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}
