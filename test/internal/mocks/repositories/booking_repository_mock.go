package repositories

import (
	"context"

	"platformone/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookingRepositoryMock struct {
	mock.Mock
}

func NewBookingRepositoryMock() *BookingRepositoryMock {
	return &BookingRepositoryMock{}
}

func (m *BookingRepositoryMock) ListByEventIDWithUsers(ctx context.Context, eventID uuid.UUID) ([]*model.Booking, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

type QuestionRepositoryMock struct {
	mock.Mock
}

func NewQuestionRepositoryMock() *QuestionRepositoryMock {
	return &QuestionRepositoryMock{}
}

func (m *QuestionRepositoryMock) ListByEventID(ctx context.Context, eventID uuid.UUID, targetRole *model.Role) ([]*model.Question, error) {
	args := m.Called(ctx, eventID, targetRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Question), args.Error(1)
}

func (m *QuestionRepositoryMock) CreateMany(ctx context.Context, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error) {
	args := m.Called(ctx, eventID, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Question), args.Error(1)
}

func (m *QuestionRepositoryMock) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error) {
	args := m.Called(ctx, eventID, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Question), args.Error(1)
}
