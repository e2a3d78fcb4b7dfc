// Package analysis requests AI health ratings and recipe suggestions for a
// cart and manages the single in-flight request lifecycle.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
)

// Client is the boundary to the remote analysis service.
// Implementations fail with *ServiceError.
type Client interface {
	Analyze(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error)
}

// ErrorKind classifies analysis service failures.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindParse        ErrorKind = "parse"
	KindEmptyPayload ErrorKind = "empty_payload"
	KindService      ErrorKind = "service"
	KindUnconfigured ErrorKind = "unconfigured"
)

// ErrNotConfigured is wrapped when no API key is available.
var ErrNotConfigured = errors.New("analysis service is not configured")

// ServiceError is the only error type returned across the Client boundary.
type ServiceError struct {
	Kind ErrorKind
	Err  error
}

// NewServiceError wraps err with a failure kind.
func NewServiceError(kind ErrorKind, err error) *ServiceError {
	return &ServiceError{Kind: kind, Err: err}
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("analysis service error (%s)", e.Kind)
	}
	return fmt.Sprintf("analysis service error (%s): %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches another *ServiceError of the same kind, so errors.Is can test
// for a kind with a bare &ServiceError{Kind: ...} target.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the ServiceError kind of err, or KindService for foreign errors.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}
	return KindService
}
