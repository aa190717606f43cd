package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"platformone/internal/model"
	apperrors "platformone/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindFirstByRole returns the oldest user with the role, or ErrUserNotFound.
	FindFirstByRole(ctx context.Context, role model.Role) (*model.User, error)
	List(ctx context.Context, role *model.Role, take int) ([]*model.User, error)
	ListWithBookingCounts(ctx context.Context, role *model.Role) ([]*model.UserAttendance, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

const userColumns = `id, name, email, password, role, tier, created_at, updated_at`

func scanUser(row pgx.Row, user *model.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Tier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, password, role, tier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`
	row := r.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Tier,
	)
	if err := scanUser(row, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	var user model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, email), &user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindFirstByRole(ctx context.Context, role model.Role) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	var user model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, role), &user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, role *model.Role, take int) ([]*model.User, error) {
	wheres := []string{}
	args := []interface{}{}
	argPos := 1

	if role != nil {
		wheres = append(wheres, fmt.Sprintf("role = $%d", argPos))
		args = append(args, *role)
		argPos++
	}

	whereClause := ""
	if len(wheres) > 0 {
		whereClause = "WHERE " + strings.Join(wheres, " AND ")
	}

	if take <= 0 {
		take = 10
	}
	args = append(args, take)

	query := fmt.Sprintf(`
		SELECT `+userColumns+`
		FROM users
		%s
		ORDER BY created_at ASC
		LIMIT $%d
	`, whereClause, argPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *UserRepositoryImpl) ListWithBookingCounts(ctx context.Context, role *model.Role) ([]*model.UserAttendance, error) {
	wheres := ""
	args := []interface{}{}
	if role != nil {
		wheres = "WHERE role = $1"
		args = append(args, *role)
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, role, tier
		FROM users
		%s
		ORDER BY created_at DESC
	`, wheres)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.UserAttendance, 0)
	index := make(map[uuid.UUID]*model.UserAttendance)
	for rows.Next() {
		var u model.UserAttendance
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Tier); err != nil {
			return nil, err
		}
		u.Bookings = make([]model.BookingRef, 0)
		users = append(users, &u)
		index[u.ID] = &u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bookingRows, err := r.pool.Query(ctx, `SELECT id, event_id, user_id FROM bookings`)
	if err != nil {
		return nil, err
	}
	defer bookingRows.Close()

	for bookingRows.Next() {
		var ref model.BookingRef
		var userID uuid.UUID
		if err := bookingRows.Scan(&ref.ID, &ref.EventID, &userID); err != nil {
			return nil, err
		}
		if u, ok := index[userID]; ok {
			u.Bookings = append(u.Bookings, ref)
			u.BookingCount = len(u.Bookings)
		}
	}
	return users, bookingRows.Err()
}
