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
	"github.com/complyops/task-assigner/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TeamRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewTeamRepository(db *sqlx.DB, log *slog.Logger) *TeamRepository {
	return &TeamRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (tr *TeamRepository) CreateTeamWithMembers(ctx context.Context, name string, members []domain.TeamMember) (*domain.TeamWithMembers, error) {
	const op = "internal.repository.postgres.CreateTeamWithMembers"
	log := tr.log.With(slog.String("op", op), slog.String("team_name", name))
	log.Info("creating team with members")

	tx, err := tr.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	teamID, err := tr.insertTeam(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	created := make([]domain.TeamMember, 0, len(members))

	for _, member := range members {
		member.TeamID = teamID

		inserted, err := tr.upsertMember(ctx, tx, member)
		if err != nil {
			return nil, err
		}

		created = append(created, *inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return &domain.TeamWithMembers{
		ID:      teamID,
		Name:    name,
		Members: created,
	}, nil
}

func (tr *TeamRepository) insertTeam(ctx context.Context, tx *sqlx.Tx, name string) (int, error) {
	const op = "internal.repository.postgres.insertTeam"

	query, args, err := tr.sq.Insert("teams").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var teamID int
	if err := tx.GetContext(ctx, &teamID, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, &apperrors.TeamAlreadyExistsError{TeamName: name}
		}

		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return teamID, nil
}

func (tr *TeamRepository) upsertMember(ctx context.Context, tx *sqlx.Tx, member domain.TeamMember) (*domain.TeamMember, error) {
	const op = "internal.repository.postgres.upsertMember"

	query, args, err := tr.sq.Insert("team_members").
		Columns("id", "team_id", "full_name", "role", "is_active").
		Values(member.ID, member.TeamID, member.FullName, member.Role, member.IsActive).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET team_id = EXCLUDED.team_id,
			    full_name = EXCLUDED.full_name,
			    role = EXCLUDED.role,
			    is_active = EXCLUDED.is_active
			RETURNING id, team_id, full_name, role, is_active, joined_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	var upserted domain.TeamMember
	if err := tx.GetContext(ctx, &upserted, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute upsert: %w", op, err)
	}

	return &upserted, nil
}

func (tr *TeamRepository) GetTeamByName(ctx context.Context, name string) (*domain.TeamWithMembers, error) {
	const op = "internal.repository.postgres.GetTeamByName"

	query, args, err := tr.sq.Select("id", "name").
		From("teams").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var team domain.Team
	if err := tr.db.GetContext(ctx, &team, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: team '%s'", op, apperrors.ErrNotFound, name)
		}

		return nil, fmt.Errorf("%s: failed to get team: %w", op, err)
	}

	members, err := tr.listMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TeamWithMembers{
		ID:      team.ID,
		Name:    team.Name,
		Members: members,
	}, nil
}

func (tr *TeamRepository) listMembers(ctx context.Context, teamID int) ([]domain.TeamMember, error) {
	const op = "internal.repository.postgres.listMembers"

	query, args, err := tr.sq.Select("id", "team_id", "full_name", "role", "is_active", "joined_at").
		From("team_members").
		Where(sq.Eq{"team_id": teamID}).
		OrderBy("joined_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var members []domain.TeamMember
	if err := tr.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select members: %w", op, err)
	}

	return members, nil
}

// ListActiveMembers orders by (joined_at, id) on purpose: the assignment
// engine's tie-break is "first candidate in roster order", so the order has
// to be stable across calls.
func (tr *TeamRepository) ListActiveMembers(ctx context.Context, teamID int) ([]domain.TeamMember, error) {
	const op = "internal.repository.postgres.ListActiveMembers"

	query, args, err := tr.sq.Select("id", "team_id", "full_name", "role", "is_active", "joined_at").
		From("team_members").
		Where(sq.Eq{"team_id": teamID, "is_active": true}).
		OrderBy("joined_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var members []domain.TeamMember
	if err := tr.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select members: %w", op, err)
	}

	return members, nil
}

func (tr *TeamRepository) SetMemberActive(ctx context.Context, userID string, isActive bool) (*domain.TeamMember, error) {
	const op = "internal.repository.postgres.SetMemberActive"

	query, args, err := tr.sq.Update("team_members").
		Set("is_active", isActive).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING id, team_id, full_name, role, is_active, joined_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var member domain.TeamMember
	if err := tr.db.GetContext(ctx, &member, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: member with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &member, nil
}
