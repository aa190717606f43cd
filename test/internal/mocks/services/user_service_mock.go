package services

import (
	"context"

	"platformone/internal/model"

	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

func NewUserServiceMock() *UserServiceMock {
	return &UserServiceMock{}
}

func (m *UserServiceMock) List(ctx context.Context, role *model.Role, take int) ([]*model.User, error) {
	args := m.Called(ctx, role, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *UserServiceMock) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) Attendance(ctx context.Context, role *model.Role) ([]*model.UserAttendance, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserAttendance), args.Error(1)
}

func (m *UserServiceMock) Login(ctx context.Context, email, password string, portalRole model.Role, accessCode string) (*model.LoginResult, error) {
	args := m.Called(ctx, email, password, portalRole, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResult), args.Error(1)
}
