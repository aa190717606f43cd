package repository

import (
	"context"
	"testing"
	"time"

	"platformone/internal/model"
	"platformone/internal/repository"

	apperrors "platformone/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreate(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewUserRepository(testDB)
	ctx := context.Background()

	user := &model.User{
		ID:       uuid.New(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret",
		Role:     model.RoleParticipant,
		Tier:     model.TierSilver,
	}

	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)

	dup := &model.User{
		ID:       uuid.New(),
		Name:     "Alice Again",
		Email:    "alice@example.com",
		Password: "secret",
		Role:     model.RoleParticipant,
		Tier:     model.TierBronze,
	}
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
}

func TestUserRepositoryFindFirstByRole(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewUserRepository(testDB)
	ctx := context.Background()

	_, err := repo.FindFirstByRole(ctx, model.RoleStaff)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	first := createTestUser(t, "Staff One", "staff1@example.com", model.RoleStaff)
	createTestUser(t, "Staff Two", "staff2@example.com", model.RoleStaff)

	staff, err := repo.FindFirstByRole(ctx, model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, first, staff.ID)
}

func TestUserRepositoryList(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewUserRepository(testDB)
	ctx := context.Background()

	createTestUser(t, "Alice", "alice@example.com", model.RoleParticipant)
	createTestUser(t, "Bob", "bob@example.com", model.RoleVolunteer)
	createTestUser(t, "Carol", "carol@example.com", model.RoleVolunteer)

	t.Run("filter by role", func(t *testing.T) {
		role := model.RoleVolunteer
		users, err := repo.List(ctx, &role, 10)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("no filter returns everyone", func(t *testing.T) {
		users, err := repo.List(ctx, nil, 10)
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("take caps the result", func(t *testing.T) {
		users, err := repo.List(ctx, nil, 1)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestUserRepositoryListWithBookingCounts(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewUserRepository(testDB)
	ctx := context.Background()

	staffID := createTestUser(t, "Staff Admin", "staff@example.com", model.RoleStaff)
	alice := createTestUser(t, "Alice", "alice@example.com", model.RoleParticipant)
	eventA := createTestEvent(t, "Tech Talk", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC), staffID)
	eventB := createTestEvent(t, "Beach Cleanup", time.Date(2026, 1, 21, 9, 0, 0, 0, time.UTC), staffID)
	createTestBooking(t, eventA, alice, model.RoleParticipant)
	createTestBooking(t, eventB, alice, model.RoleParticipant)

	role := model.RoleParticipant
	attendance, err := repo.ListWithBookingCounts(ctx, &role)
	require.NoError(t, err)
	require.Len(t, attendance, 1)
	assert.Equal(t, "Alice", attendance[0].Name)
	assert.Equal(t, 2, attendance[0].BookingCount)
	assert.Len(t, attendance[0].Bookings, 2)
}
