package service

import (
	"context"

	"platformone/config"
	"platformone/internal/cache"
	"platformone/internal/model"
	"platformone/internal/repository"
	apperrors "platformone/pkg/app_errors"

	"github.com/google/uuid"
)

type UserService interface {
	List(ctx context.Context, role *model.Role, take int) ([]*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	// Attendance lists users (optionally by role) with their booking references.
	Attendance(ctx context.Context, role *model.Role) ([]*model.UserAttendance, error)
	// Login authenticates against a portal role. Staff logins additionally
	// require the configured access code.
	Login(ctx context.Context, email, password string, portalRole model.Role, accessCode string) (*model.LoginResult, error)
}

type UserServiceImpl struct {
	users    repository.UserRepository
	sessions cache.SessionStore
	authCfg  config.AuthConfig
}

func NewUserService(users repository.UserRepository, sessions cache.SessionStore, authCfg config.AuthConfig) UserService {
	return &UserServiceImpl{
		users:    users,
		sessions: sessions,
		authCfg:  authCfg,
	}
}

func (s *UserServiceImpl) List(ctx context.Context, role *model.Role, take int) ([]*model.User, error) {
	return s.users.List(ctx, role, take)
}

func (s *UserServiceImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Tier == "" {
		user.Tier = model.TierBronze
	}
	if !user.Role.IsValid() || !user.Tier.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}
	return s.users.Create(ctx, user)
}

func (s *UserServiceImpl) Attendance(ctx context.Context, role *model.Role) ([]*model.UserAttendance, error) {
	return s.users.ListWithBookingCounts(ctx, role)
}

func (s *UserServiceImpl) Login(ctx context.Context, email, password string, portalRole model.Role, accessCode string) (*model.LoginResult, error) {
	if portalRole == model.RoleStaff && accessCode != s.authCfg.StaffAccessCode {
		return nil, apperrors.ErrInvalidAccessCode
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// demo-grade credential check, passwords are stored as-is
	if user.Password != password {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Role != portalRole {
		return nil, apperrors.ErrUnauthorizedRole
	}

	token := uuid.New().String()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return nil, err
	}

	return &model.LoginResult{
		Success: true,
		Token:   token,
		User: model.LoginUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		UserRole: user.Role,
	}, nil
}
