package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type SessionStoreMock struct {
	mock.Mock
}

func NewSessionStoreMock() *SessionStoreMock {
	return &SessionStoreMock{}
}

func (m *SessionStoreMock) Save(ctx context.Context, token string, userID uuid.UUID) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *SessionStoreMock) Get(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *SessionStoreMock) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
