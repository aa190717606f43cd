package services

import (
	"context"

	"platformone/internal/model"

	"github.com/stretchr/testify/mock"
)

type AssistantServiceMock struct {
	mock.Mock
}

func NewAssistantServiceMock() *AssistantServiceMock {
	return &AssistantServiceMock{}
}

func (m *AssistantServiceMock) HandleMessage(ctx context.Context, message, timezone string) (*model.AssistantResponse, error) {
	args := m.Called(ctx, message, timezone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssistantResponse), args.Error(1)
}
