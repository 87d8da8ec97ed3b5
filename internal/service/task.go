package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/complyops/task-assigner/internal/domain"
	"github.com/complyops/task-assigner/internal/repository"
	"github.com/complyops/task-assigner/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

// TaskService owns the task lifecycle around the assignment engine: creation
// with auto-assignment and the pending transition with rerouting.
type TaskService interface {
	// CreateTask persists a new task and, when it names a team, runs the
	// assignment engine. Engine infrastructure failures are caught here and
	// leave the task unassigned; they never fail the creation itself.
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, *domain.AssignmentResult, error)

	// AssignTask re-runs the primary assignment path for an existing task.
	AssignTask(ctx context.Context, taskID string, criteria domain.AssignmentCriteria) (*domain.AssignmentResult, error)

	// SetTaskPending marks a task pending with a reason and reroutes it.
	// Reroute infrastructure failures are caught here and leave the task
	// pending with its previous assignee.
	SetTaskPending(ctx context.Context, taskID string, reason domain.PendingReason, actorID string) (*domain.Task, *domain.AssignmentResult, error)
}

// CreateTaskInput is the validated payload for task creation.
type CreateTaskInput struct {
	TaskID         string
	TeamID         *int
	Title          string
	Difficulty     domain.Difficulty
	Priority       domain.Priority
	EstimatedHours float64
	CreatedBy      string
}

type TaskServiceImpl struct {
	db       Transactor
	log      *slog.Logger
	tasks    repository.TaskRepository
	assigner AssignmentService
}

func NewTaskService(db Transactor, log *slog.Logger, tasks repository.TaskRepository, assigner AssignmentService) *TaskServiceImpl {
	return &TaskServiceImpl{
		db:       db,
		log:      log,
		tasks:    tasks,
		assigner: assigner,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, *domain.AssignmentResult, error) {
	const op = "internal.service.task.CreateTask"
	log := s.log.With(slog.String("op", op), slog.String("task_id", input.TaskID))

	task := &domain.Task{
		ID:             input.TaskID,
		TeamID:         input.TeamID,
		Title:          input.Title,
		Status:         domain.StatusUnassigned,
		Difficulty:     input.Difficulty,
		Priority:       input.Priority,
		EstimatedHours: input.EstimatedHours,
	}

	err := runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		return s.tasks.CreateTask(ctx, tx, task)
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info("task created")

	if input.TeamID == nil {
		return task, nil, nil
	}

	criteria := domain.AssignmentCriteria{
		TeamID:         *input.TeamID,
		Difficulty:     input.Difficulty,
		EstimatedHours: input.EstimatedHours,
		Priority:       input.Priority,
		AssignedBy:     input.CreatedBy,
	}

	// The task exists either way; an engine infrastructure failure leaves it
	// unassigned for manual follow-up instead of failing the creation.
	result, err := s.assigner.AssignTask(ctx, task.ID, criteria)
	if err != nil {
		log.Error("auto-assignment failed, task left unassigned", sl.Err(err))
		return task, nil, nil
	}

	if result.Success {
		task.Status = domain.StatusAssigned
	}

	return task, result, nil
}

func (s *TaskServiceImpl) AssignTask(ctx context.Context, taskID string, criteria domain.AssignmentCriteria) (*domain.AssignmentResult, error) {
	const op = "internal.service.task.AssignTask"

	result, err := s.assigner.AssignTask(ctx, taskID, criteria)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *TaskServiceImpl) SetTaskPending(ctx context.Context, taskID string, reason domain.PendingReason, actorID string) (*domain.Task, *domain.AssignmentResult, error) {
	const op = "internal.service.task.SetTaskPending"
	log := s.log.With(slog.String("op", op), slog.String("task_id", taskID), slog.String("reason", string(reason)))

	var task *domain.Task

	err := runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		var err error

		task, err = s.tasks.GetTaskByIDWithLock(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to get task: %w", op, err)
		}

		if err := s.tasks.SetTaskPending(ctx, tx, taskID, reason); err != nil {
			return fmt.Errorf("%s: failed to set task pending: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	task.Status = domain.StatusPending
	task.PendingReason = &reason

	log.Info("task marked pending")

	result, err := s.assigner.AssignForPending(ctx, taskID, task.TeamID, reason, actorID)
	if err != nil {
		log.Error("pending reroute failed, task keeps previous assignee", sl.Err(err))
		return task, nil, nil
	}

	return task, result, nil
}
