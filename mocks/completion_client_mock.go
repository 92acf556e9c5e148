package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"visapath/visa-advisor/internal/models"
)

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}
