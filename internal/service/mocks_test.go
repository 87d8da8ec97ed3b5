package service

import (
	"context"
	"database/sql"

	"github.com/complyops/task-assigner/internal/domain"
	"github.com/complyops/task-assigner/internal/notifier"
	"github.com/complyops/task-assigner/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type TeamRepositoryMock struct {
	mock.Mock
}

var _ repository.TeamRepository = (*TeamRepositoryMock)(nil)

func (m *TeamRepositoryMock) CreateTeamWithMembers(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, name, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}

func (m *TeamRepositoryMock) GetTeamByName(ctx context.Context, name string) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}

func (m *TeamRepositoryMock) ListActiveMembers(ctx context.Context, teamID int) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *TeamRepositoryMock) SetMemberActive(ctx context.Context, userID string, isActive bool) (*domain.TeamMember, error) {
	args := m.Called(ctx, userID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

type TaskRepositoryMock struct {
	mock.Mock
}

var _ repository.TaskRepository = (*TaskRepositoryMock)(nil)

func (m *TaskRepositoryMock) CreateTask(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	args := m.Called(ctx, tx, task)
	return args.Error(0)
}

func (m *TaskRepositoryMock) GetTaskByIDWithLock(ctx context.Context, tx *sqlx.Tx, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, tx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskRepositoryMock) UpdateTaskStatus(ctx context.Context, tx *sqlx.Tx, taskID string, status domain.TaskStatus) error {
	args := m.Called(ctx, tx, taskID, status)
	return args.Error(0)
}

func (m *TaskRepositoryMock) SetTaskPending(ctx context.Context, tx *sqlx.Tx, taskID string, reason domain.PendingReason) error {
	args := m.Called(ctx, tx, taskID, reason)
	return args.Error(0)
}

func (m *TaskRepositoryMock) GetTaskTitle(ctx context.Context, taskID string) (string, error) {
	args := m.Called(ctx, taskID)
	return args.String(0), args.Error(1)
}

type AssignmentRepositoryMock struct {
	mock.Mock
}

var _ repository.AssignmentRepository = (*AssignmentRepositoryMock)(nil)

func (m *AssignmentRepositoryMock) CountActiveAssignments(ctx context.Context, userIDs []string) (map[string]int, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *AssignmentRepositoryMock) InsertAssignment(ctx context.Context, tx *sqlx.Tx, a *domain.Assignment) error {
	args := m.Called(ctx, tx, a)
	return args.Error(0)
}

func (m *AssignmentRepositoryMock) DeactivateAssignments(ctx context.Context, tx *sqlx.Tx, taskID string) (int, error) {
	args := m.Called(ctx, tx, taskID)
	return args.Int(0), args.Error(1)
}

func (m *AssignmentRepositoryMock) GetActiveAssignments(ctx context.Context, taskID string) ([]domain.Assignment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *AssignmentRepositoryMock) GetWorkloadStats(ctx context.Context) ([]domain.WorkloadStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.WorkloadStat), args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

var _ notifier.Notifier = (*NotifierMock)(nil)

func (m *NotifierMock) Notify(n notifier.AssignmentNotification) {
	m.Called(n)
}
