package analysis

import (
	"context"
	"errors"

	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/guttosm/freshcart-pos/internal/domain/model"
)

// BreakerClient wraps a Client with circuit breaker protection.
type BreakerClient struct {
	client         Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewBreakerClient creates a new client wrapper with circuit breaker.
func NewBreakerClient(client Client, cb *circuitbreaker.CircuitBreaker) *BreakerClient {
	return &BreakerClient{
		client:         client,
		circuitBreaker: cb,
	}
}

// Analyze calls the wrapped client unless the circuit is open, in which
// case it fails fast with a network ServiceError.
func (c *BreakerClient) Analyze(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error) {
	var result model.AnalysisResult
	err := c.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = c.client.Analyze(ctx, items)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return model.AnalysisResult{}, NewServiceError(KindNetwork, err)
	}
	if err != nil {
		var se *ServiceError
		if !errors.As(err, &se) {
			err = NewServiceError(KindOf(err), err)
		}
		return model.AnalysisResult{}, err
	}
	return result, nil
}

// CountsAsFailure is the breaker failure filter for analysis calls: a
// missing API key says nothing about the service's health.
func CountsAsFailure(err error) bool {
	return KindOf(err) != KindUnconfigured
}
