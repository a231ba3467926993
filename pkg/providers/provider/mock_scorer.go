package provider

import (
	"context"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/stretchr/testify/mock"
)

// MockScorer is a mock implementation of the Scorer interface for testing.
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Kind() catalog.Provider {
	args := m.Called()
	return args.Get(0).(catalog.Provider)
}

func (m *MockScorer) ListModels(ctx context.Context, apiKey string) []catalog.ModelInfo {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog.ModelInfo)
}

func (m *MockScorer) ScoreArticle(ctx context.Context, apiKey, model, article string) (scoring.Result, error) {
	args := m.Called(ctx, apiKey, model, article)
	return args.Get(0).(scoring.Result), args.Error(1)
}
