package http

import (
	"context"

	"github.com/complyops/task-assigner/internal/domain"
	"github.com/complyops/task-assigner/internal/service"
	"github.com/stretchr/testify/mock"
)

type TeamServiceMock struct {
	mock.Mock
}

func (m *TeamServiceMock) CreateTeamWithMembers(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, name, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}

func (m *TeamServiceMock) GetTeam(ctx context.Context, name string) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}

func (m *TeamServiceMock) SetMemberActive(ctx context.Context, userID string, isActive bool) (*domain.TeamMember, error) {
	args := m.Called(ctx, userID, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

type TaskServiceMock struct {
	mock.Mock
}

func (m *TaskServiceMock) CreateTask(ctx context.Context, input service.CreateTaskInput) (*domain.Task, *domain.AssignmentResult, error) {
	args := m.Called(ctx, input)

	var (
		task   *domain.Task
		result *domain.AssignmentResult
	)

	if args.Get(0) != nil {
		task = args.Get(0).(*domain.Task)
	}
	if args.Get(1) != nil {
		result = args.Get(1).(*domain.AssignmentResult)
	}

	return task, result, args.Error(2)
}

func (m *TaskServiceMock) AssignTask(ctx context.Context, taskID string, criteria domain.AssignmentCriteria) (*domain.AssignmentResult, error) {
	args := m.Called(ctx, taskID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AssignmentResult), args.Error(1)
}

func (m *TaskServiceMock) SetTaskPending(ctx context.Context, taskID string, reason domain.PendingReason, actorID string) (*domain.Task, *domain.AssignmentResult, error) {
	args := m.Called(ctx, taskID, reason, actorID)

	var (
		task   *domain.Task
		result *domain.AssignmentResult
	)

	if args.Get(0) != nil {
		task = args.Get(0).(*domain.Task)
	}
	if args.Get(1) != nil {
		result = args.Get(1).(*domain.AssignmentResult)
	}

	return task, result, args.Error(2)
}

type AssignmentServiceMock struct {
	mock.Mock
}

func (m *AssignmentServiceMock) AssignTask(ctx context.Context, taskID string, criteria domain.AssignmentCriteria) (*domain.AssignmentResult, error) {
	args := m.Called(ctx, taskID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AssignmentResult), args.Error(1)
}

func (m *AssignmentServiceMock) AssignForPending(ctx context.Context, taskID string, teamID *int, reason domain.PendingReason, assignedBy string) (*domain.AssignmentResult, error) {
	args := m.Called(ctx, taskID, teamID, reason, assignedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AssignmentResult), args.Error(1)
}

func (m *AssignmentServiceMock) GetWorkloadStats(ctx context.Context) ([]domain.WorkloadStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.WorkloadStat), args.Error(1)
}
