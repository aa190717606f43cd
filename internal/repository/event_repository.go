package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"platformone/internal/model"
	apperrors "platformone/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	// FindByIDWithPeople loads the event plus its bookings, each with user and
	// confirmation records, for attendance rendering.
	FindByIDWithPeople(ctx context.Context, id uuid.UUID) (*model.EventWithPeople, error)
	Search(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error)
	ListWithBookingRoles(ctx context.Context) ([]*model.EventWithRoleCounts, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, name, starts_at, ends_at, location, min_tier, participant_capacity, volunteer_capacity, created_by_id, created_at, updated_at`

func scanEvent(row pgx.Row, event *model.Event) error {
	return row.Scan(
		&event.ID,
		&event.Name,
		&event.Start,
		&event.End,
		&event.Location,
		&event.MinTier,
		&event.ParticipantCapacity,
		&event.VolunteerCapacity,
		&event.CreatedByID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (id, name, starts_at, ends_at, location, min_tier, participant_capacity, volunteer_capacity, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns + `
	`
	row := r.pool.QueryRow(ctx, query,
		event.ID, event.Name, event.Start, event.End, event.Location,
		event.MinTier, event.ParticipantCapacity, event.VolunteerCapacity, event.CreatedByID,
	)
	if err := scanEvent(row, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	var event model.Event
	if err := scanEvent(r.pool.QueryRow(ctx, query, id), &event); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) FindByIDWithPeople(ctx context.Context, id uuid.UUID) (*model.EventWithPeople, error) {
	event, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bookingQuery := `
		SELECT b.id, b.event_id, b.user_id, b.role_at_booking, b.created_at,
		       u.id, u.name, u.email, u.role, u.tier, u.created_at, u.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.event_id = $1
		ORDER BY b.created_at ASC
	`
	rows, err := r.pool.Query(ctx, bookingQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	bookingIDs := make([]uuid.UUID, 0)
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
		bookings = append(bookings, b)
		bookingIDs = append(bookingIDs, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(bookingIDs) > 0 {
		confirmationQuery := `
			SELECT id, booking_id, status, created_at
			FROM confirmations
			WHERE booking_id = ANY($1)
			ORDER BY created_at ASC
		`
		confRows, err := r.pool.Query(ctx, confirmationQuery, bookingIDs)
		if err != nil {
			return nil, err
		}
		defer confRows.Close()

		byBooking := make(map[uuid.UUID][]model.Confirmation)
		for confRows.Next() {
			var c model.Confirmation
			if err := confRows.Scan(&c.ID, &c.BookingID, &c.Status, &c.CreatedAt); err != nil {
				return nil, err
			}
			byBooking[c.BookingID] = append(byBooking[c.BookingID], c)
		}
		if err := confRows.Err(); err != nil {
			return nil, err
		}
		for i := range bookings {
			bookings[i].Confirmations = byBooking[bookings[i].ID]
		}
	}

	return &model.EventWithPeople{Event: *event, Bookings: bookings}, nil
}

func (r *EventRepositoryImpl) Search(ctx context.Context, filter model.EventFilter) ([]*model.EventSummary, error) {
	wheres := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Keyword != nil {
		wheres = append(wheres, fmt.Sprintf("(name ILIKE $%d OR location ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Keyword+"%")
		argPos++
	}

	if filter.From != nil {
		wheres = append(wheres, fmt.Sprintf("starts_at >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}

	if filter.To != nil {
		wheres = append(wheres, fmt.Sprintf("starts_at <= $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}

	whereClause := ""
	if len(wheres) > 0 {
		whereClause = "WHERE " + strings.Join(wheres, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, name, starts_at, ends_at, location, min_tier, participant_capacity, volunteer_capacity
		FROM events
		%s
		ORDER BY starts_at ASC
		LIMIT $%d
	`, whereClause, argPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.EventSummary, 0)
	for rows.Next() {
		var e model.EventSummary
		err := rows.Scan(
			&e.ID, &e.Name, &e.Start, &e.End, &e.Location,
			&e.MinTier, &e.ParticipantCapacity, &e.VolunteerCapacity,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *EventRepositoryImpl) ListWithBookingRoles(ctx context.Context) ([]*model.EventWithRoleCounts, error) {
	query := `
		SELECT id, name, starts_at, ends_at, location, min_tier, participant_capacity, volunteer_capacity, created_at
		FROM events
		ORDER BY starts_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.EventWithRoleCounts, 0)
	index := make(map[uuid.UUID]*model.EventWithRoleCounts)
	for rows.Next() {
		var e model.EventWithRoleCounts
		err := rows.Scan(
			&e.ID, &e.Name, &e.Start, &e.End, &e.Location,
			&e.MinTier, &e.ParticipantCapacity, &e.VolunteerCapacity, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.Bookings = make([]model.BookingRoleTag, 0)
		events = append(events, &e)
		index[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bookingRows, err := r.pool.Query(ctx, `SELECT id, event_id, role_at_booking FROM bookings`)
	if err != nil {
		return nil, err
	}
	defer bookingRows.Close()

	for bookingRows.Next() {
		var tag model.BookingRoleTag
		var eventID uuid.UUID
		if err := bookingRows.Scan(&tag.ID, &eventID, &tag.RoleAtBooking); err != nil {
			return nil, err
		}
		if e, ok := index[eventID]; ok {
			e.Bookings = append(e.Bookings, tag)
		}
	}
	return events, bookingRows.Err()
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argPos))
		args = append(args, *params.Location)
		argPos++
	}

	if params.MinTier != nil {
		sets = append(sets, fmt.Sprintf("min_tier = $%d", argPos))
		args = append(args, *params.MinTier)
		argPos++
	}

	if params.ParticipantCapacity != nil {
		sets = append(sets, fmt.Sprintf("participant_capacity = $%d", argPos))
		args = append(args, *params.ParticipantCapacity)
		argPos++
	}

	if params.VolunteerCapacity != nil {
		sets = append(sets, fmt.Sprintf("volunteer_capacity = $%d", argPos))
		args = append(args, *params.VolunteerCapacity)
		argPos++
	}

	if params.Start != nil {
		sets = append(sets, fmt.Sprintf("starts_at = $%d", argPos))
		args = append(args, *params.Start)
		argPos++
	}

	if params.End != nil {
		sets = append(sets, fmt.Sprintf("ends_at = $%d", argPos))
		args = append(args, *params.End)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(sets, ", "), argPos)

	var event model.Event
	if err := scanEvent(r.pool.QueryRow(ctx, query, args...), &event); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

// Delete removes the event and everything hanging off it (answers, bookings,
// questions) in one transaction.
func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM answers
		WHERE booking_id IN (SELECT id FROM bookings WHERE event_id = $1)
		   OR question_id IN (SELECT id FROM questions WHERE event_id = $1)
	`, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM confirmations WHERE booking_id IN (SELECT id FROM bookings WHERE event_id = $1)`, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE event_id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE event_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return tx.Commit(ctx)
}
