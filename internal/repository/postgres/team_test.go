//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/complyops/task-assigner/internal/apperrors"
	"github.com/complyops/task-assigner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_CreateTeamWithMembers_And_GetTeamByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewTeamRepository(testDB, logger)
	ctx := context.Background()

	members := []domain.TeamMember{
		{ID: "u1", FullName: "Alice", Role: domain.RoleEmployee, IsActive: true},
		{ID: "u2", FullName: "Bob", Role: domain.RoleSenior, IsActive: false},
	}

	createdTeam, err := repo.CreateTeamWithMembers(ctx, "compliance", members)
	require.NoError(t, err)
	assert.Equal(t, "compliance", createdTeam.Name)
	require.Len(t, createdTeam.Members, 2)
	assert.Equal(t, "u1", createdTeam.Members[0].ID)

	_, err = repo.CreateTeamWithMembers(ctx, "compliance", members)
	require.Error(t, err)
	var teamExistsErr *apperrors.TeamAlreadyExistsError
	assert.ErrorAs(t, err, &teamExistsErr, "expected TeamAlreadyExistsError")
	assert.Equal(t, "compliance", teamExistsErr.TeamName)

	fetchedTeam, err := repo.GetTeamByName(ctx, "compliance")
	require.NoError(t, err)
	assert.Equal(t, createdTeam.ID, fetchedTeam.ID)
	require.Len(t, fetchedTeam.Members, 2)
	assert.Equal(t, "Alice", fetchedTeam.Members[0].FullName)
	assert.Equal(t, domain.RoleSenior, fetchedTeam.Members[1].Role)
	assert.False(t, fetchedTeam.Members[1].IsActive)

	_, err = repo.GetTeamByName(ctx, "non-existent")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTeamRepository_ListActiveMembers_StableOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewTeamRepository(testDB, logger)
	ctx := context.Background()

	members := []domain.TeamMember{
		{ID: "u1", FullName: "Alice", Role: domain.RoleEmployee, IsActive: true},
		{ID: "u2", FullName: "Bob", Role: domain.RoleSenior, IsActive: true},
		{ID: "u3", FullName: "Carol", Role: domain.RoleManager, IsActive: false},
	}

	created, err := repo.CreateTeamWithMembers(ctx, "compliance", members)
	require.NoError(t, err)

	// Inactive members are excluded and the order must not change across calls.
	first, err := repo.ListActiveMembers(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.ListActiveMembers(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, second, 2)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestTeamRepository_SetMemberActive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewTeamRepository(testDB, logger)
	ctx := context.Background()

	created, err := repo.CreateTeamWithMembers(ctx, "compliance", []domain.TeamMember{
		{ID: "u1", FullName: "Alice", Role: domain.RoleEmployee, IsActive: true},
	})
	require.NoError(t, err)

	member, err := repo.SetMemberActive(ctx, "u1", false)
	require.NoError(t, err)
	assert.False(t, member.IsActive)

	active, err := repo.ListActiveMembers(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = repo.SetMemberActive(ctx, "ghost", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTeamRepository_UpsertMovesMemberBetweenTeams(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewTeamRepository(testDB, logger)
	ctx := context.Background()

	_, err := repo.CreateTeamWithMembers(ctx, "team-alpha", []domain.TeamMember{
		{ID: "u1", FullName: "Alice", Role: domain.RoleEmployee, IsActive: true},
	})
	require.NoError(t, err)

	createdBeta, err := repo.CreateTeamWithMembers(ctx, "team-beta", []domain.TeamMember{
		{ID: "u1", FullName: "Alice Updated", Role: domain.RoleSenior, IsActive: false},
	})
	require.NoError(t, err)

	fetchedBeta, err := repo.GetTeamByName(ctx, "team-beta")
	require.NoError(t, err)
	require.Len(t, fetchedBeta.Members, 1)
	assert.Equal(t, "Alice Updated", fetchedBeta.Members[0].FullName)
	assert.Equal(t, domain.RoleSenior, fetchedBeta.Members[0].Role)
	assert.Equal(t, createdBeta.ID, fetchedBeta.Members[0].TeamID)

	fetchedAlpha, err := repo.GetTeamByName(ctx, "team-alpha")
	require.NoError(t, err)
	assert.Empty(t, fetchedAlpha.Members)
}
