package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/complyops/task-assigner/internal/domain"
	"github.com/jmoiron/sqlx"
)

type AssignmentRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAssignmentRepository(db *sqlx.DB, log *slog.Logger) *AssignmentRepository {
	return &AssignmentRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CountActiveAssignments counts across all teams: a member's open-task load
// includes work assigned to them from anywhere in the system.
func (r *AssignmentRepository) CountActiveAssignments(ctx context.Context, userIDs []string) (map[string]int, error) {
	const op = "internal.repository.postgres.CountActiveAssignments"

	counts := make(map[string]int, len(userIDs))
	for _, id := range userIDs {
		counts[id] = 0
	}

	if len(userIDs) == 0 {
		return counts, nil
	}

	query, args, err := r.sq.Select("user_id", "COUNT(*) AS active_tasks").
		From("task_assignments").
		Where(sq.Eq{"user_id": userIDs, "is_active": true}).
		GroupBy("user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows := []struct {
		UserID      string `db:"user_id"`
		ActiveTasks int    `db:"active_tasks"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	for _, row := range rows {
		counts[row.UserID] = row.ActiveTasks
	}

	return counts, nil
}

func (r *AssignmentRepository) InsertAssignment(ctx context.Context, tx *sqlx.Tx, a *domain.Assignment) error {
	const op = "internal.repository.postgres.InsertAssignment"

	query, args, err := r.sq.Insert("task_assignments").
		Columns("id", "task_id", "user_id", "assigned_by", "is_active", "is_primary").
		Values(a.ID, a.TaskID, a.UserID, a.AssignedBy, a.IsActive, a.IsPrimary).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *AssignmentRepository) DeactivateAssignments(ctx context.Context, tx *sqlx.Tx, taskID string) (int, error) {
	const op = "internal.repository.postgres.DeactivateAssignments"

	query, args, err := r.sq.Update("task_assignments").
		Set("is_active", false).
		Where(sq.Eq{"task_id": taskID, "is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	return int(rowsAffected), nil
}

func (r *AssignmentRepository) GetActiveAssignments(ctx context.Context, taskID string) ([]domain.Assignment, error) {
	const op = "internal.repository.postgres.GetActiveAssignments"

	query, args, err := r.sq.Select("id", "task_id", "user_id", "assigned_by", "is_active", "is_primary", "created_at").
		From("task_assignments").
		Where(sq.Eq{"task_id": taskID, "is_active": true}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var assignments []domain.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.Assignment{}, nil
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return assignments, nil
}

func (r *AssignmentRepository) GetWorkloadStats(ctx context.Context) ([]domain.WorkloadStat, error) {
	const op = "internal.repository.postgres.GetWorkloadStats"

	query, args, err := r.sq.Select(
		"m.id AS user_id",
		"m.full_name",
		"m.role",
		"COUNT(CASE WHEN a.is_active THEN 1 END) AS active_tasks",
		"COUNT(a.id) AS total_assigned",
		"COUNT(CASE WHEN a.is_primary THEN 1 END) AS primary_assigned",
	).
		From("team_members m").
		LeftJoin("task_assignments a ON m.id = a.user_id").
		GroupBy("m.id", "m.full_name", "m.role").
		OrderBy("m.full_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var stats []domain.WorkloadStat
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.WorkloadStat{}, nil
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return stats, nil
}
