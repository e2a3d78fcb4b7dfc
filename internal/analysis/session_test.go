package analysis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cartItems = []model.AnalysisItem{
	{Name: "Banana", Quantity: 2},
	{Name: "Milk", Quantity: 1},
}

func healthyResult() model.AnalysisResult {
	return model.AnalysisResult{
		HealthScore:   82,
		HealthSummary: "Fruit and dairy make a good start.",
		Recipes: []model.Recipe{
			{Name: "Banana Smoothie", Description: "Blend it.", MissingIngredients: []string{"Honey"}},
		},
	}
}

// gatedClient blocks every call until release is closed.
type gatedClient struct {
	started chan struct{}
	release chan struct{}
	calls   int32
	result  model.AnalysisResult
	err     error
	seen    []model.AnalysisItem
}

func newGatedClient(result model.AnalysisResult, err error) *gatedClient {
	return &gatedClient{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
		result:  result,
		err:     err,
	}
}

func (g *gatedClient) Analyze(_ context.Context, items []model.AnalysisItem) (model.AnalysisResult, error) {
	atomic.AddInt32(&g.calls, 1)
	g.seen = items
	g.started <- struct{}{}
	<-g.release
	return g.result, g.err
}

type asyncResult struct {
	out Outcome
	err error
}

func requestAsync(s *Session, items []model.AnalysisItem) <-chan asyncResult {
	ch := make(chan asyncResult, 1)
	go func() {
		out, err := s.RequestAnalysis(context.Background(), items)
		ch <- asyncResult{out, err}
	}()
	return ch
}

func TestNewSession_StartsIdle(t *testing.T) {
	s := NewSession(&mocks.MockAnalysisClient{})

	st := s.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Nil(t, st.Result)
	assert.False(t, s.State().InFlight)
}

func TestSession_EmptyCartSkipsClient(t *testing.T) {
	client := &mocks.MockAnalysisClient{}
	s := NewSession(client)

	out, err := s.RequestAnalysis(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Result.HealthScore)
	assert.Empty(t, out.Result.Recipes)
	assert.Equal(t, "Your cart is empty. Add items to get started!", out.Result.HealthSummary)
	assert.False(t, out.Fallback)

	st := s.State()
	assert.Equal(t, StatusReady, st.Status)
	require.NotNil(t, st.Result)
	assert.Equal(t, 0, st.Result.HealthScore)
	client.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestSession_Success(t *testing.T) {
	client := &mocks.MockAnalysisClient{}
	client.On("Analyze", mock.Anything, cartItems).Return(healthyResult(), nil).Once()
	s := NewSession(client)

	out, err := s.RequestAnalysis(context.Background(), cartItems)

	require.NoError(t, err)
	assert.Equal(t, healthyResult(), out.Result)
	assert.False(t, out.Fallback)
	assert.NoError(t, out.Cause)

	st := s.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.False(t, st.Fallback)
	assert.Equal(t, healthyResult(), *st.Result)
	client.AssertExpectations(t)
}

func TestSession_AcceptsOutOfRangeScoreAsGiven(t *testing.T) {
	odd := model.AnalysisResult{HealthScore: 140, HealthSummary: "?", Recipes: []model.Recipe{}}
	s := NewSession(mocks.AnalysisClientFunc(func(context.Context, []model.AnalysisItem) (model.AnalysisResult, error) {
		return odd, nil
	}))

	out, err := s.RequestAnalysis(context.Background(), cartItems)

	require.NoError(t, err)
	assert.Equal(t, 140, out.Result.HealthScore)
}

func TestSession_FailureSettlesToFallback(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
	}{
		{name: "network", err: NewServiceError(KindNetwork, errors.New("dial tcp")), wantKind: KindNetwork},
		{name: "parse", err: NewServiceError(KindParse, errors.New("bad json")), wantKind: KindParse},
		{name: "empty payload", err: NewServiceError(KindEmptyPayload, nil), wantKind: KindEmptyPayload},
		{name: "unconfigured", err: NewServiceError(KindUnconfigured, ErrNotConfigured), wantKind: KindUnconfigured},
		{name: "foreign error", err: errors.New("weird"), wantKind: KindService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mocks.MockAnalysisClient{}
			client.On("Analyze", mock.Anything, cartItems).Return(nil, tt.err).Once()

			var notified []error
			s := NewSession(client, WithNotifier(func(_ context.Context, cause error) {
				notified = append(notified, cause)
			}))

			out, err := s.RequestAnalysis(context.Background(), cartItems)

			require.NoError(t, err)
			assert.True(t, out.Fallback)
			assert.Equal(t, tt.err, out.Cause)
			assert.Equal(t, tt.wantKind, KindOf(out.Cause))
			assert.Equal(t, FallbackResult(), out.Result)
			assert.Equal(t, 50, out.Result.HealthScore)
			require.Len(t, out.Result.Recipes, 1)
			assert.Equal(t, "Mystery Dish", out.Result.Recipes[0].Name)
			assert.Empty(t, out.Result.Recipes[0].MissingIngredients)

			assert.Equal(t, []error{tt.err}, notified)

			st := s.State()
			assert.Equal(t, StatusReady, st.Status)
			assert.True(t, st.Fallback)
			assert.False(t, s.State().InFlight)
		})
	}
}

func TestSession_PanicSettlesToFallback(t *testing.T) {
	s := NewSession(mocks.AnalysisClientFunc(func(context.Context, []model.AnalysisItem) (model.AnalysisResult, error) {
		panic("boom")
	}))

	out, err := s.RequestAnalysis(context.Background(), cartItems)

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Equal(t, KindService, KindOf(out.Cause))
	assert.Equal(t, StatusReady, s.State().Status)
}

func TestSession_NilClientFallsBack(t *testing.T) {
	s := NewSession(nil)

	out, err := s.RequestAnalysis(context.Background(), cartItems)

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Equal(t, KindUnconfigured, KindOf(out.Cause))
}

func TestSession_BusyWhilePending(t *testing.T) {
	gate := newGatedClient(healthyResult(), nil)
	s := NewSession(gate)

	first := requestAsync(s, cartItems)
	<-gate.started

	assert.Equal(t, StatusPending, s.State().Status)
	assert.True(t, s.State().InFlight)

	_, err := s.RequestAnalysis(context.Background(), cartItems)
	assert.ErrorIs(t, err, ErrSessionBusy)

	_, err = s.RequestAnalysis(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSessionBusy, "empty cart requests are busy-rejected too")

	close(gate.release)
	res := <-first

	require.NoError(t, res.err)
	assert.Equal(t, healthyResult(), res.out.Result)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gate.calls))
	assert.Equal(t, StatusReady, s.State().Status)
}

func TestSession_ConcurrentRequestsCallClientOnce(t *testing.T) {
	gate := newGatedClient(healthyResult(), nil)
	s := NewSession(gate)

	first := requestAsync(s, cartItems)
	<-gate.started

	var wg sync.WaitGroup
	var busy int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.RequestAnalysis(context.Background(), cartItems); errors.Is(err, ErrSessionBusy) {
				atomic.AddInt32(&busy, 1)
			}
		}()
	}
	wg.Wait()
	close(gate.release)
	<-first

	assert.Equal(t, int32(10), busy)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gate.calls))
}

func TestSession_PriorResultVisibleWhilePending(t *testing.T) {
	gate := newGatedClient(model.AnalysisResult{HealthScore: 30, HealthSummary: "new", Recipes: []model.Recipe{}}, nil)
	s := NewSession(gate)

	_, err := s.RequestAnalysis(context.Background(), nil)
	require.NoError(t, err)

	pending := requestAsync(s, cartItems)
	<-gate.started

	st := s.State()
	assert.Equal(t, StatusPending, st.Status)
	require.NotNil(t, st.Result)
	assert.Equal(t, emptyCartSummary, st.Result.HealthSummary)

	close(gate.release)
	<-pending

	st = s.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, "new", st.Result.HealthSummary)
}

func TestSession_ResetDuringPendingDiscardsLateResult(t *testing.T) {
	gate := newGatedClient(model.AnalysisResult{}, NewServiceError(KindNetwork, errors.New("timeout")))
	notified := 0
	s := NewSession(gate, WithNotifier(func(context.Context, error) { notified++ }))

	pending := requestAsync(s, cartItems)
	<-gate.started

	s.Reset()
	assert.Equal(t, StatusIdle, s.State().Status)
	assert.True(t, s.State().InFlight)

	_, err := s.RequestAnalysis(context.Background(), cartItems)
	assert.ErrorIs(t, err, ErrSessionBusy)

	close(gate.release)
	res := <-pending

	require.NoError(t, res.err)
	assert.True(t, res.out.Discarded)
	assert.True(t, res.out.Fallback)
	assert.Zero(t, notified)

	st := s.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Nil(t, st.Result)
	assert.False(t, s.State().InFlight)
}

func TestSession_Reset(t *testing.T) {
	client := &mocks.MockAnalysisClient{}
	client.On("Analyze", mock.Anything, mock.Anything).Return(healthyResult(), nil)
	s := NewSession(client)

	_, err := s.RequestAnalysis(context.Background(), cartItems)
	require.NoError(t, err)

	s.Reset()

	st := s.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Nil(t, st.Result)
	assert.False(t, st.Fallback)
}

func TestSession_InputIsSnapshotted(t *testing.T) {
	gate := newGatedClient(healthyResult(), nil)
	s := NewSession(gate)

	items := []model.AnalysisItem{{Name: "Rice", Quantity: 1}}
	pending := requestAsync(s, items)
	<-gate.started

	items[0].Quantity = 9
	close(gate.release)
	<-pending

	assert.Equal(t, 1, gate.seen[0].Quantity)
}

func TestSession_StateIsACopy(t *testing.T) {
	client := &mocks.MockAnalysisClient{}
	client.On("Analyze", mock.Anything, mock.Anything).Return(healthyResult(), nil)
	s := NewSession(client)
	_, err := s.RequestAnalysis(context.Background(), cartItems)
	require.NoError(t, err)

	st := s.State()
	st.Result.Recipes[0].MissingIngredients[0] = "Salt"

	assert.Equal(t, "Honey", s.State().Result.Recipes[0].MissingIngredients[0])
}

func TestSession_StartThenResetBeforeRun(t *testing.T) {
	client := &mocks.MockAnalysisClient{}
	client.On("Analyze", mock.Anything, mock.Anything).Return(healthyResult(), nil).Once()
	s := NewSession(client)

	call, err := s.Start(cartItems)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s.State().Status)

	s.Reset()
	out := call.Run(context.Background())

	assert.True(t, out.Discarded)
	assert.Equal(t, StatusIdle, s.State().Status)
	assert.False(t, s.State().InFlight)
}
