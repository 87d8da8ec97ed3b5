package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/complyops/task-assigner/internal/apperrors"
	"github.com/complyops/task-assigner/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TaskRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewTaskRepository(db *sqlx.DB, log *slog.Logger) *TaskRepository {
	return &TaskRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *TaskRepository) CreateTask(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	const op = "internal.repository.postgres.CreateTask"

	query, args, err := r.sq.Insert("tasks").
		Columns("id", "team_id", "title", "status", "difficulty", "priority", "estimated_hours").
		Values(task.ID, task.TeamID, task.Title, task.Status, task.Difficulty, task.Priority, task.EstimatedHours).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return &apperrors.TaskAlreadyExistsError{TaskID: task.ID}
			}

			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: team does not exist", op, apperrors.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *TaskRepository) GetTaskByIDWithLock(ctx context.Context, tx *sqlx.Tx, taskID string) (*domain.Task, error) {
	const op = "internal.repository.postgres.GetTaskByIDWithLock"

	query, args, err := r.sq.Select("id", "team_id", "title", "status", "difficulty", "priority", "estimated_hours", "pending_reason", "created_at").
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var task domain.Task
	if err := tx.GetContext(ctx, &task, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: task with id '%s'", op, apperrors.ErrNotFound, taskID)
		}

		return nil, fmt.Errorf("%s: failed to get task with lock: %w", op, err)
	}

	return &task, nil
}

func (r *TaskRepository) UpdateTaskStatus(ctx context.Context, tx *sqlx.Tx, taskID string, status domain.TaskStatus) error {
	const op = "internal.repository.postgres.UpdateTaskStatus"

	query, args, err := r.sq.Update("tasks").
		Set("status", status).
		Set("pending_reason", nil).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: task with id '%s'", op, apperrors.ErrNotFound, taskID)
	}

	return nil
}

func (r *TaskRepository) SetTaskPending(ctx context.Context, tx *sqlx.Tx, taskID string, reason domain.PendingReason) error {
	const op = "internal.repository.postgres.SetTaskPending"

	query, args, err := r.sq.Update("tasks").
		Set("status", domain.StatusPending).
		Set("pending_reason", reason).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: task with id '%s'", op, apperrors.ErrNotFound, taskID)
	}

	return nil
}

func (r *TaskRepository) GetTaskTitle(ctx context.Context, taskID string) (string, error) {
	const op = "internal.repository.postgres.GetTaskTitle"

	query, args, err := r.sq.Select("title").
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var title string
	if err := r.db.GetContext(ctx, &title, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w: task with id '%s'", op, apperrors.ErrNotFound, taskID)
		}

		return "", fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return title, nil
}
