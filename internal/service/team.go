package service

import (
	"context"
	"fmt"

	"github.com/complyops/task-assigner/internal/domain"
	"github.com/complyops/task-assigner/internal/repository"
)

type TeamService interface {
	CreateTeamWithMembers(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamWithMembers, error)
	GetTeam(ctx context.Context, name string) (*domain.TeamWithMembers, error)
	SetMemberActive(ctx context.Context, userID string, isActive bool) (*domain.TeamMember, error)
}

type TeamServiceImpl struct {
	repo repository.TeamRepository
}

func NewTeamService(repo repository.TeamRepository) *TeamServiceImpl {
	return &TeamServiceImpl{repo: repo}
}

func (s *TeamServiceImpl) CreateTeamWithMembers(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamWithMembers, error) {
	team, err := s.repo.CreateTeamWithMembers(ctx, name, members)
	if err != nil {
		return nil, fmt.Errorf("repo.CreateTeamWithMembers failed: %w", err)
	}

	return team, nil
}

func (s *TeamServiceImpl) GetTeam(ctx context.Context, name string) (*domain.TeamWithMembers, error) {
	team, err := s.repo.GetTeamByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("repo.GetTeamByName failed: %w", err)
	}

	return team, nil
}

func (s *TeamServiceImpl) SetMemberActive(ctx context.Context, userID string, isActive bool) (*domain.TeamMember, error) {
	member, err := s.repo.SetMemberActive(ctx, userID, isActive)
	if err != nil {
		return nil, fmt.Errorf("repo.SetMemberActive failed: %w", err)
	}

	return member, nil
}
