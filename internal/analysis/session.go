package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ErrSessionBusy is returned when a request is made while another is in flight.
var ErrSessionBusy = errors.New("analysis request already in flight")

// Status is the externally visible session state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
)

// State is the session read model. Result is the most recent settled result;
// it stays visible while a newer request is pending and is nil when idle.
type State struct {
	Status   Status
	Result   *model.AnalysisResult
	Fallback bool
	// InFlight is true while a service call is outstanding, including one
	// whose result will be discarded after a reset. New requests are
	// refused until it settles.
	InFlight bool
}

// Outcome describes how one RequestAnalysis call settled.
type Outcome struct {
	Result model.AnalysisResult
	// Fallback is set when the service failed and Result is FallbackResult.
	Fallback bool
	// Cause is the service failure behind a fallback.
	Cause error
	// Discarded is set when the session was reset while the call was in
	// flight; the result was not stored.
	Discarded bool
}

// Notifier receives the one-shot failure signal for a fallback result.
type Notifier func(ctx context.Context, cause error)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNotifier registers the failure notifier.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) {
		s.notify = n
	}
}

// Session owns at most one outstanding analysis request and its result.
type Session struct {
	client Client
	notify Notifier

	mu         sync.Mutex
	status     Status
	result     *model.AnalysisResult
	fallback   bool
	inFlight   bool
	generation uint64
}

// NewSession creates an idle session backed by client.
func NewSession(client Client, opts ...SessionOption) *Session {
	s := &Session{
		client: client,
		status: StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestAnalysis analyzes a snapshot of the cart. It blocks until the
// service call settles and never returns a service failure: failures
// settle to FallbackResult with Outcome.Fallback set. The only error is
// ErrSessionBusy.
func (s *Session) RequestAnalysis(ctx context.Context, items []model.AnalysisItem) (Outcome, error) {
	call, err := s.Start(items)
	if err != nil {
		return Outcome{}, err
	}
	return call.Run(ctx), nil
}

// Call is an admitted analysis request. Run must be called exactly once.
type Call struct {
	session *Session
	gen     uint64
	items   []model.AnalysisItem
	settled *Outcome
}

// Start admits a request without blocking: it rejects with ErrSessionBusy,
// settles an empty cart immediately, or moves the session to pending.
func (s *Session) Start(items []model.AnalysisItem) (*Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		metrics.RecordAnalysis("busy")
		return nil, ErrSessionBusy
	}

	if len(items) == 0 {
		empty := EmptyCartResult()
		s.settle(empty, false)
		metrics.RecordAnalysis("empty")
		return &Call{session: s, settled: &Outcome{Result: empty}}, nil
	}

	snapshot := make([]model.AnalysisItem, len(items))
	copy(snapshot, items)

	s.inFlight = true
	s.status = StatusPending
	return &Call{session: s, gen: s.generation, items: snapshot}, nil
}

// Run performs the service call and settles the session.
func (c *Call) Run(ctx context.Context) Outcome {
	if c.settled != nil {
		out := *c.settled
		out.Result = out.Result.Clone()
		return out
	}
	s := c.session

	start := time.Now()
	result, err := s.call(ctx, c.items)
	elapsed := time.Since(start)

	out := Outcome{Result: result}
	if err != nil {
		out = Outcome{Result: FallbackResult(), Fallback: true, Cause: err}
	}

	s.mu.Lock()
	s.inFlight = false
	if c.gen == s.generation {
		s.settle(out.Result, out.Fallback)
	} else {
		out.Discarded = true
	}
	s.mu.Unlock()

	logEvent := log.Info()
	if out.Fallback {
		metrics.RecordAnalysisCall(elapsed, string(KindOf(err)))
		metrics.RecordAnalysis("fallback")
		logEvent = log.Warn().Err(err).Str("kind", string(KindOf(err)))
	} else {
		metrics.RecordAnalysisCall(elapsed, "")
		metrics.RecordAnalysis("success")
	}
	logEvent.
		Int("items", len(c.items)).
		Int("health_score", out.Result.HealthScore).
		Bool("fallback", out.Fallback).
		Bool("discarded", out.Discarded).
		Dur("duration", elapsed).
		Msg("Cart analysis settled")

	if out.Fallback && !out.Discarded && s.notify != nil {
		s.notify(ctx, err)
	}

	out.Result = out.Result.Clone()
	return out
}

// call invokes the client, turning a panic into a service error so the
// session always settles.
func (s *Session) call(ctx context.Context, items []model.AnalysisItem) (result model.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewServiceError(KindService, fmt.Errorf("panic: %v", r))
		}
	}()
	if s.client == nil {
		return model.AnalysisResult{}, NewServiceError(KindUnconfigured, ErrNotConfigured)
	}
	return s.client.Analyze(ctx, items)
}

// settle stores a result. Callers hold s.mu.
func (s *Session) settle(result model.AnalysisResult, fallback bool) {
	r := result.Clone()
	s.status = StatusReady
	s.result = &r
	s.fallback = fallback
}

// Reset clears the result and returns the session to idle. A request still
// in flight keeps blocking new requests until it settles, but its result is
// discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusIdle
	s.result = nil
	s.fallback = false
	s.generation++
}

// State returns the current read model.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{Status: s.status, Fallback: s.fallback, InFlight: s.inFlight}
	if s.result != nil {
		r := s.result.Clone()
		st.Result = &r
	}
	return st
}
