package repository

import (
	"context"

	"platformone/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// ListByEventIDWithUsers returns the event's bookings, each with its user loaded.
	ListByEventIDWithUsers(ctx context.Context, eventID uuid.UUID) ([]*model.Booking, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

func (r *BookingRepositoryImpl) ListByEventIDWithUsers(ctx context.Context, eventID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.role_at_booking, b.created_at,
		       u.id, u.name, u.email, u.role, u.tier, u.created_at, u.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.event_id = $1
		ORDER BY b.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		var u model.User
		err := rows.Scan(
			&b.ID, &b.EventID, &b.UserID, &b.RoleAtBooking, &b.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.Tier, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		b.User = &u
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
