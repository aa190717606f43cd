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

func strPtr(s string) *string       { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestEventRepositoryCreateAndFind(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	staffID := createTestUser(t, "Staff Admin", "staff@example.com", model.RoleStaff)

	event := &model.Event{
		ID:                  uuid.New(),
		Name:                "Tech Talk",
		Start:               time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC),
		End:                 time.Date(2026, 1, 5, 20, 0, 0, 0, time.UTC),
		Location:            "Auditorium",
		MinTier:             model.TierBronze,
		ParticipantCapacity: 30,
		VolunteerCapacity:   5,
		CreatedByID:         staffID,
	}

	created, err := repo.Create(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, "Tech Talk", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, model.TierBronze, found.MinTier)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventRepositorySearch(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	staffID := createTestUser(t, "Staff Admin", "staff@example.com", model.RoleStaff)
	createTestEvent(t, "Volunteer Training", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), staffID)
	createTestEvent(t, "Tech Talk", time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC), staffID)
	createTestEvent(t, "Beach Cleanup", time.Date(2026, 1, 21, 9, 0, 0, 0, time.UTC), staffID)

	t.Run("keyword matches name case-insensitively", func(t *testing.T) {
		events, err := repo.Search(ctx, model.EventFilter{Keyword: strPtr("tech")})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Tech Talk", events[0].Name)
	})

	t.Run("keyword matches location", func(t *testing.T) {
		events, err := repo.Search(ctx, model.EventFilter{Keyword: strPtr("auditor")})
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})

	t.Run("date bounds on start", func(t *testing.T) {
		events, err := repo.Search(ctx, model.EventFilter{
			From: timePtr(time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)),
			To:   timePtr(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
		})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Tech Talk", events[0].Name)
	})

	t.Run("ordered by start ascending", func(t *testing.T) {
		events, err := repo.Search(ctx, model.EventFilter{})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "Volunteer Training", events[0].Name)
		assert.Equal(t, "Beach Cleanup", events[2].Name)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		events, err := repo.Search(ctx, model.EventFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}

func TestEventRepositoryUpdate(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	staffID := createTestUser(t, "Staff Admin", "staff@example.com", model.RoleStaff)
	eventID := createTestEvent(t, "Tech Talk", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC), staffID)

	t.Run("sparse patch leaves other fields untouched", func(t *testing.T) {
		updated, err := repo.Update(ctx, eventID, model.UpdateEventParams{
			Location: strPtr("Hall B"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Hall B", updated.Location)
		assert.Equal(t, "Tech Talk", updated.Name)
	})

	t.Run("empty patch is invalid input", func(t *testing.T) {
		_, err := repo.Update(ctx, eventID, model.UpdateEventParams{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.New(), model.UpdateEventParams{Location: strPtr("Hall B")})
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventRepositoryDelete(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	staffID := createTestUser(t, "Staff Admin", "staff@example.com", model.RoleStaff)
	userID := createTestUser(t, "Alice", "alice@example.com", model.RoleParticipant)
	eventID := createTestEvent(t, "Tech Talk", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC), staffID)
	bookingID := createTestBooking(t, eventID, userID, model.RoleParticipant)
	createTestConfirmation(t, bookingID, "CONFIRMED")

	require.NoError(t, repo.Delete(ctx, eventID))

	_, err := repo.FindByID(ctx, eventID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	var bookingCount int
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM bookings WHERE event_id = $1", eventID).Scan(&bookingCount))
	assert.Equal(t, 0, bookingCount)

	assert.ErrorIs(t, repo.Delete(ctx, eventID), apperrors.ErrEventNotFound)
}

func TestEventRepositoryFindByIDWithPeople(t *testing.T) {
	setupTestWithTruncate(t)
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	staffID := createTestUser(t, "Staff Admin", "staff@example.com", model.RoleStaff)
	alice := createTestUser(t, "Alice", "alice@example.com", model.RoleParticipant)
	carol := createTestUser(t, "Carol", "carol@example.com", model.RoleVolunteer)
	eventID := createTestEvent(t, "Tech Talk", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC), staffID)

	aliceBooking := createTestBooking(t, eventID, alice, model.RoleParticipant)
	createTestBooking(t, eventID, carol, model.RoleVolunteer)
	createTestConfirmation(t, aliceBooking, "CONFIRMED")

	event, err := repo.FindByIDWithPeople(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, event.Bookings, 2)

	byUser := map[uuid.UUID]*model.Booking{}
	for i := range event.Bookings {
		b := &event.Bookings[i]
		require.NotNil(t, b.User)
		byUser[b.UserID] = b
	}
	assert.Equal(t, model.BookingStatusConfirmed, byUser[alice].Status())
	assert.Equal(t, model.BookingStatusPending, byUser[carol].Status())
}
