// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the
// assignment engine and the surrounding services.
package repository

import (
	"context"

	"github.com/complyops/task-assigner/internal/domain"
	"github.com/jmoiron/sqlx"
)

// TeamRepository defines the contract for team and member data.
type TeamRepository interface {
	// CreateTeamWithMembers creates a new team and upserts its members.
	// This operation is expected to be transactional.
	// It returns apperrors.ErrAlreadyExists if a team with the same name already exists.
	CreateTeamWithMembers(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamWithMembers, error)

	// GetTeamByName retrieves a team by its unique name, along with its members.
	// It returns apperrors.ErrNotFound if the team is not found.
	GetTeamByName(ctx context.Context, name string) (*domain.TeamWithMembers, error)

	// ListActiveMembers returns the active members of a team in a stable
	// order (joined_at, then id). The ordering is a contract: the assignment
	// engine breaks scoring ties by taking the first candidate in this order,
	// so it must be reproducible across calls.
	ListActiveMembers(ctx context.Context, teamID int) ([]domain.TeamMember, error)

	// SetMemberActive updates the active flag of a team member.
	// It returns apperrors.ErrNotFound if the member does not exist.
	SetMemberActive(ctx context.Context, userID string, isActive bool) (*domain.TeamMember, error)
}

// TaskRepository defines the contract for task records.
type TaskRepository interface {
	// CreateTask inserts a new task. It returns apperrors.ErrAlreadyExists if
	// a task with the same ID exists and apperrors.ErrNotFound if the named
	// team does not.
	CreateTask(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error

	// GetTaskByIDWithLock retrieves a task and acquires a row-level lock
	// ("FOR UPDATE"). Reroutes of the same task serialize on this lock so the
	// deactivate-then-insert sequence behaves as a single transition.
	// It returns apperrors.ErrNotFound if the task is not found.
	GetTaskByIDWithLock(ctx context.Context, tx *sqlx.Tx, taskID string) (*domain.Task, error)

	// UpdateTaskStatus sets the task's status, clearing any pending reason.
	// It returns apperrors.ErrNotFound if the task does not exist.
	UpdateTaskStatus(ctx context.Context, tx *sqlx.Tx, taskID string, status domain.TaskStatus) error

	// SetTaskPending moves the task into the pending status and records why.
	SetTaskPending(ctx context.Context, tx *sqlx.Tx, taskID string, reason domain.PendingReason) error

	// GetTaskTitle returns the title of a task.
	// It returns apperrors.ErrNotFound if the task does not exist.
	GetTaskTitle(ctx context.Context, taskID string) (string, error)
}

// AssignmentRepository defines the contract for assignment rows.
type AssignmentRepository interface {
	// CountActiveAssignments counts currently active assignment rows per user
	// across the whole system, not just one team. Every requested ID is
	// present in the returned map; users without active rows map to zero.
	CountActiveAssignments(ctx context.Context, userIDs []string) (map[string]int, error)

	// InsertAssignment inserts a new assignment row.
	InsertAssignment(ctx context.Context, tx *sqlx.Tx, a *domain.Assignment) error

	// DeactivateAssignments sets every active row of a task inactive and
	// returns how many rows were touched. Intended to run inside the same
	// transaction that holds the task's row lock.
	DeactivateAssignments(ctx context.Context, tx *sqlx.Tx, taskID string) (int, error)

	// GetActiveAssignments returns the currently active rows of a task.
	GetActiveAssignments(ctx context.Context, taskID string) ([]domain.Assignment, error)

	// GetWorkloadStats returns per-member assignment load across all teams.
	GetWorkloadStats(ctx context.Context) ([]domain.WorkloadStat, error)
}
