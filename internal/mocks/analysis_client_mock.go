// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockAnalysisClient struct {
	mock.Mock
}

func (m *MockAnalysisClient) Analyze(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return model.AnalysisResult{}, args.Error(1)
	}
	return args.Get(0).(model.AnalysisResult), args.Error(1)
}

// AnalysisClientFunc adapts a function to the analysis client interface.
type AnalysisClientFunc func(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error)

func (f AnalysisClientFunc) Analyze(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error) {
	return f(ctx, items)
}
