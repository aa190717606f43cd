package repository

import (
	"context"
	"fmt"

	"platformone/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionRepository interface {
	// ListByEventID returns the event's questions, optionally restricted to a target role.
	ListByEventID(ctx context.Context, eventID uuid.UUID, targetRole *model.Role) ([]*model.Question, error)
	CreateMany(ctx context.Context, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error)
	// ReplaceForEvent drops the event's question set and writes the given one.
	ReplaceForEvent(ctx context.Context, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error)
}

type QuestionRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &QuestionRepositoryImpl{
		pool: pool,
	}
}

func (r *QuestionRepositoryImpl) ListByEventID(ctx context.Context, eventID uuid.UUID, targetRole *model.Role) ([]*model.Question, error) {
	args := []interface{}{eventID}
	roleClause := ""
	if targetRole != nil {
		roleClause = "AND target_role = $2"
		args = append(args, *targetRole)
	}

	query := fmt.Sprintf(`
		SELECT id, event_id, text, type, options, target_role
		FROM questions
		WHERE event_id = $1 %s
		ORDER BY id ASC
	`, roleClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

func (r *QuestionRepositoryImpl) CreateMany(ctx context.Context, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error) {
	return r.insert(ctx, r.pool, eventID, questions)
}

func (r *QuestionRepositoryImpl) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM answers WHERE question_id IN (SELECT id FROM questions WHERE event_id = $1)
	`, eventID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE event_id = $1`, eventID); err != nil {
		return nil, err
	}

	created, err := r.insert(ctx, tx, eventID, questions)
	if err != nil {
		return nil, err
	}

	return created, tx.Commit(ctx)
}

type execQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *QuestionRepositoryImpl) insert(ctx context.Context, q execQuerier, eventID uuid.UUID, questions []model.Question) ([]*model.Question, error) {
	created := make([]*model.Question, 0, len(questions))
	for _, question := range questions {
		options := question.Options
		if options == nil {
			options = []string{}
		}
		var out model.Question
		err := q.QueryRow(ctx, `
			INSERT INTO questions (id, event_id, text, type, options, target_role)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, event_id, text, type, options, target_role
		`, uuid.New(), eventID, question.Text, question.Type, options, question.TargetRole).Scan(
			&out.ID, &out.EventID, &out.Text, &out.Type, &out.Options, &out.TargetRole,
		)
		if err != nil {
			return nil, err
		}
		created = append(created, &out)
	}
	return created, nil
}

func collectQuestions(rows pgx.Rows) ([]*model.Question, error) {
	questions := make([]*model.Question, 0)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.EventID, &q.Text, &q.Type, &q.Options, &q.TargetRole); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}
