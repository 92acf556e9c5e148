package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"visapath/visa-advisor/internal/models"
)

type MockAdvisorService struct {
	mock.Mock
}

func (m *MockAdvisorService) ParseResume(ctx context.Context, data []byte, filename string) (map[string]any, error) {
	args := m.Called(ctx, data, filename)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockAdvisorService) AnalyzeProfile(ctx context.Context, profile models.ProfileFields) (map[string]any, error) {
	args := m.Called(ctx, profile)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]any), args.Error(1)
}
