package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/complyops/task-assigner/internal/domain"
	"github.com/complyops/task-assigner/internal/notifier"
	"github.com/complyops/task-assigner/internal/repository"
	"github.com/complyops/task-assigner/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// memberCapacity is the assumed per-person ceiling of open tasks; the
// workload ratio in the score is activeCount / memberCapacity.
const memberCapacity = 10

// difficultyRoles is the fixed role-eligibility table. A difficulty missing
// from the table falls back to requiring the employee role. data_collector is
// absent from every tier: data collectors are only ever assigned through the
// data_missing reroute path.
var difficultyRoles = map[domain.Difficulty][]domain.Role{
	domain.DifficultyEasy:   {domain.RoleEmployee},
	domain.DifficultyMedium: {domain.RoleAdmin, domain.RoleManager, domain.RoleSenior, domain.RoleEmployee},
	domain.DifficultyHard:   {domain.RoleAdmin, domain.RoleManager, domain.RoleSenior},
}

// AssignmentService selects team members for tasks and records the resulting
// assignment rows.
type AssignmentService interface {
	// AssignTask picks the best eligible member of the criteria's team and
	// assigns the task to them. Business "no match" outcomes come back inside
	// the result with Success=false; infrastructure failures are returned as
	// errors.
	AssignTask(ctx context.Context, taskID string, criteria domain.AssignmentCriteria) (*domain.AssignmentResult, error)

	// AssignForPending reroutes a pending task to a member suited to the
	// pending reason, deactivating all previously active assignment rows in
	// the same transaction.
	AssignForPending(ctx context.Context, taskID string, teamID *int, reason domain.PendingReason, assignedBy string) (*domain.AssignmentResult, error)

	// GetWorkloadStats returns per-member assignment load.
	GetWorkloadStats(ctx context.Context) ([]domain.WorkloadStat, error)
}

type AssignmentServiceImpl struct {
	db          Transactor
	log         *slog.Logger
	teams       repository.TeamRepository
	tasks       repository.TaskRepository
	assignments repository.AssignmentRepository
	notifier    notifier.Notifier
}

func NewAssignmentService(
	db Transactor,
	log *slog.Logger,
	teams repository.TeamRepository,
	tasks repository.TaskRepository,
	assignments repository.AssignmentRepository,
	n notifier.Notifier,
) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		db:          db,
		log:         log,
		teams:       teams,
		tasks:       tasks,
		assignments: assignments,
		notifier:    n,
	}
}

func (s *AssignmentServiceImpl) AssignTask(ctx context.Context, taskID string, criteria domain.AssignmentCriteria) (*domain.AssignmentResult, error) {
	const op = "internal.service.assignment.AssignTask"
	log := s.log.With(slog.String("op", op), slog.String("task_id", taskID), slog.Int("team_id", criteria.TeamID))

	members, err := s.teams.ListActiveMembers(ctx, criteria.TeamID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list team members: %w", op, err)
	}

	if len(members) == 0 {
		log.Warn("no active team members found")
		return failure("No active team members found"), nil
	}

	eligible := filterEligible(members, criteria.Difficulty)
	if len(eligible) == 0 {
		log.Warn("no members qualified for difficulty", slog.String("difficulty", string(criteria.Difficulty)))
		return failure(fmt.Sprintf("No team members qualified for %s difficulty tasks", criteria.Difficulty)), nil
	}

	counts, err := s.assignments.CountActiveAssignments(ctx, memberIDs(eligible))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count active assignments: %w", op, err)
	}

	best := selectBestMember(eligible, counts, criteria)
	if best == nil {
		log.Warn("no suitable team member available")
		return failure("No suitable team member available"), nil
	}

	err = runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		assignment := &domain.Assignment{
			ID:         uuid.NewString(),
			TaskID:     taskID,
			UserID:     best.ID,
			AssignedBy: criteria.AssignedBy,
			IsActive:   true,
			IsPrimary:  true,
		}

		if err := s.assignments.InsertAssignment(ctx, tx, assignment); err != nil {
			return fmt.Errorf("%s: failed to insert assignment: %w", op, err)
		}

		if err := s.tasks.UpdateTaskStatus(ctx, tx, taskID, domain.StatusAssigned); err != nil {
			return fmt.Errorf("%s: failed to update task status: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task assigned",
		slog.String("user_id", best.ID),
		slog.String("role", string(best.Role)),
		slog.Int("active_tasks", counts[best.ID]),
	)

	s.notifyAssigned(ctx, best.ID, taskID, false)

	return &domain.AssignmentResult{
		Success:          true,
		AssignedUserID:   best.ID,
		AssignedUserName: best.FullName,
		Reason:           fmt.Sprintf("Assigned to %s (%s role)", best.FullName, best.Role),
	}, nil
}

func (s *AssignmentServiceImpl) AssignForPending(ctx context.Context, taskID string, teamID *int, reason domain.PendingReason, assignedBy string) (*domain.AssignmentResult, error) {
	const op = "internal.service.assignment.AssignForPending"
	log := s.log.With(slog.String("op", op), slog.String("task_id", taskID), slog.String("pending_reason", string(reason)))

	if teamID == nil {
		log.Warn("no team specified")
		return failure("No team specified"), nil
	}

	members, err := s.teams.ListActiveMembers(ctx, *teamID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list team members: %w", op, err)
	}

	target, err := s.selectForPending(ctx, members, reason, assignedBy)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to select target member: %w", op, err)
	}

	if target == nil {
		log.Warn("no suitable team member found")
		return failure("No suitable team member found"), nil
	}

	// The task row lock serializes concurrent reroutes of the same task, so
	// deactivate-then-insert behaves as one transition and exactly one active
	// row remains.
	err = runInTx(ctx, s.db, s.log, op, func(tx *sqlx.Tx) error {
		if _, err := s.tasks.GetTaskByIDWithLock(ctx, tx, taskID); err != nil {
			return fmt.Errorf("%s: failed to lock task: %w", op, err)
		}

		deactivated, err := s.assignments.DeactivateAssignments(ctx, tx, taskID)
		if err != nil {
			return fmt.Errorf("%s: failed to deactivate assignments: %w", op, err)
		}

		log.Debug("deactivated previous assignments", slog.Int("count", deactivated))

		assignment := &domain.Assignment{
			ID:         uuid.NewString(),
			TaskID:     taskID,
			UserID:     target.ID,
			AssignedBy: assignedBy,
			IsActive:   true,
			IsPrimary:  false,
		}

		if err := s.assignments.InsertAssignment(ctx, tx, assignment); err != nil {
			return fmt.Errorf("%s: failed to insert assignment: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task rerouted", slog.String("user_id", target.ID), slog.String("role", string(target.Role)))

	s.notifyAssigned(ctx, target.ID, taskID, true)

	return &domain.AssignmentResult{
		Success:          true,
		AssignedUserID:   target.ID,
		AssignedUserName: target.FullName,
		Reason:           fmt.Sprintf("Reassigned for %s", reason),
	}, nil
}

func (s *AssignmentServiceImpl) GetWorkloadStats(ctx context.Context) ([]domain.WorkloadStat, error) {
	const op = "internal.service.assignment.GetWorkloadStats"

	stats, err := s.assignments.GetWorkloadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get workload stats: %w", op, err)
	}

	return stats, nil
}

// selectForPending applies the reason-specific targeting policy. Review-like
// reasons route to a reviewer, data_missing routes to a data collector, and
// anything else falls back to the generic scoring pass with neutral criteria.
func (s *AssignmentServiceImpl) selectForPending(ctx context.Context, members []domain.TeamMember, reason domain.PendingReason, assignedBy string) (*domain.TeamMember, error) {
	if len(members) == 0 {
		return nil, nil
	}

	switch reason {
	case domain.PendingReview, domain.PendingClarityNeeded:
		return findReviewer(members), nil
	case domain.PendingDataMissing:
		return findDataCollector(members), nil
	}

	counts, err := s.assignments.CountActiveAssignments(ctx, memberIDs(members))
	if err != nil {
		return nil, err
	}

	criteria := domain.AssignmentCriteria{
		Difficulty:     domain.DifficultyMedium,
		EstimatedHours: 0,
		Priority:       domain.PriorityMedium,
		AssignedBy:     assignedBy,
	}

	return selectBestMember(members, counts, criteria), nil
}

// findReviewer prefers a senior, then a manager or admin, and finally falls
// back to the first roster member. The anyone-fallback is deliberate: a
// review reroute must always make forward progress, even on a team with no
// review-appropriate role.
func findReviewer(members []domain.TeamMember) *domain.TeamMember {
	for i := range members {
		if members[i].Role == domain.RoleSenior {
			return &members[i]
		}
	}

	for i := range members {
		if members[i].Role == domain.RoleManager || members[i].Role == domain.RoleAdmin {
			return &members[i]
		}
	}

	return &members[0]
}

// findDataCollector prefers a data collector and falls back to the first
// roster member.
func findDataCollector(members []domain.TeamMember) *domain.TeamMember {
	for i := range members {
		if members[i].Role == domain.RoleDataCollector {
			return &members[i]
		}
	}

	return &members[0]
}

// eligibleRoles resolves the difficulty tier in the fixed table; unknown
// tiers require the employee role.
func eligibleRoles(difficulty domain.Difficulty) []domain.Role {
	if roles, ok := difficultyRoles[difficulty]; ok {
		return roles
	}

	return []domain.Role{domain.RoleEmployee}
}

func filterEligible(members []domain.TeamMember, difficulty domain.Difficulty) []domain.TeamMember {
	allowed := make(map[domain.Role]struct{})
	for _, role := range eligibleRoles(difficulty) {
		allowed[role] = struct{}{}
	}

	eligible := make([]domain.TeamMember, 0, len(members))

	for _, member := range members {
		if _, ok := allowed[member.Role]; ok {
			eligible = append(eligible, member)
		}
	}

	return eligible
}

// selectBestMember returns the candidate with the minimum score. Ties go to
// the earlier candidate in roster order, which makes the selection
// deterministic for a given roster and workload snapshot.
func selectBestMember(members []domain.TeamMember, counts map[string]int, criteria domain.AssignmentCriteria) *domain.TeamMember {
	if len(members) == 0 {
		return nil
	}

	best := 0
	bestScore := scoreCandidate(members[0], counts[members[0].ID], criteria)

	for i := 1; i < len(members); i++ {
		score := scoreCandidate(members[i], counts[members[i].ID], criteria)
		if score < bestScore {
			best = i
			bestScore = score
		}
	}

	return &members[best]
}

// scoreCandidate computes the selection score; lower is better. Urgent tasks
// halve the workload-ratio penalty so an already-busy member can still take
// them, estimated hours add a mild penalty scaled to a 40-hour baseline, and
// hard tasks reward seniority with a flat bonus independent of workload. This
// is a greedy per-call heuristic, not a global optimum, and the workload
// snapshot it reads is allowed to be slightly stale under concurrency.
func scoreCandidate(member domain.TeamMember, activeCount int, criteria domain.AssignmentCriteria) float64 {
	workloadRatio := float64(activeCount) / memberCapacity

	priorityMultiplier := 1.0
	if criteria.Priority == domain.PriorityUrgent {
		priorityMultiplier = 0.5
	}

	roleBonus := 0.0

	if criteria.Difficulty == domain.DifficultyHard {
		switch member.Role {
		case domain.RoleSenior:
			roleBonus = -0.20
		case domain.RoleManager:
			roleBonus = -0.15
		case domain.RoleAdmin:
			roleBonus = -0.10
		}
	}

	return workloadRatio*priorityMultiplier +
		float64(activeCount)*0.1 +
		(criteria.EstimatedHours/40)*0.5 +
		roleBonus
}

// notifyAssigned emits the "task assigned" notification. It is fire and
// forget: a missing title or a dropped notification is logged and never
// affects the assignment outcome.
func (s *AssignmentServiceImpl) notifyAssigned(ctx context.Context, userID, taskID string, rerouted bool) {
	if s.notifier == nil {
		return
	}

	title, err := s.tasks.GetTaskTitle(ctx, taskID)
	if err != nil {
		s.log.Warn("failed to get task title for notification", sl.Err(err), slog.String("task_id", taskID))
	}

	s.notifier.Notify(notifier.AssignmentNotification{
		UserID:     userID,
		TaskID:     taskID,
		TaskTitle:  title,
		Rerouted:   rerouted,
		OccurredAt: time.Now().UTC(),
	})
}

func failure(message string) *domain.AssignmentResult {
	return &domain.AssignmentResult{
		Success: false,
		Error:   message,
	}
}

func memberIDs(members []domain.TeamMember) []string {
	ids := make([]string, len(members))
	for i, member := range members {
		ids[i] = member.ID
	}

	return ids
}
