package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"platformone/config"
	"platformone/internal/database"
	"platformone/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running repository tests...")

	code := m.Run()
	testDB.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, "TRUNCATE answers, confirmations, bookings, questions, events, users CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

func createTestUser(t *testing.T, name, email string, role model.Role) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO users (id, name, email, password, role, tier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id uuid.UUID
	err := testDB.QueryRow(ctx, query, uuid.New(), name, email, "secret", role, model.TierBronze).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

func createTestEvent(t *testing.T, name string, start time.Time, createdBy uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO events (id, name, starts_at, ends_at, location, min_tier, participant_capacity, volunteer_capacity, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id uuid.UUID
	err := testDB.QueryRow(ctx, query,
		uuid.New(), name, start, start.Add(2*time.Hour), "Auditorium",
		model.TierBronze, 25, 5, createdBy,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return id
}

func createTestBooking(t *testing.T, eventID, userID uuid.UUID, role model.Role) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO bookings (id, event_id, user_id, role_at_booking)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id uuid.UUID
	err := testDB.QueryRow(ctx, query, uuid.New(), eventID, userID, role).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test booking: %v", err)
	}

	return id
}

func createTestConfirmation(t *testing.T, bookingID uuid.UUID, status string) {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, `
		INSERT INTO confirmations (id, booking_id, status)
		VALUES ($1, $2, $3)
	`, uuid.New(), bookingID, status)
	if err != nil {
		t.Fatalf("Failed to create test confirmation: %v", err)
	}
}
