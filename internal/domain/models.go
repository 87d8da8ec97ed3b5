// package domain holds the core records and closed enumerations of the
// task-assignment engine. Role, difficulty and priority are deliberately
// closed string enums so the eligibility and scoring tables stay exhaustive.
package domain

import "time"

// Role is the sole seniority/capability signal a team member carries.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleManager       Role = "manager"
	RoleSenior        Role = "senior"
	RoleEmployee      Role = "employee"
	RoleDataCollector Role = "data_collector"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSenior, RoleEmployee, RoleDataCollector:
		return true
	}

	return false
}

// Difficulty is a task's difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Priority is a task's priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// PendingReason explains why a task entered a pending status and which
// reroute policy applies to it.
type PendingReason string

const (
	PendingReview        PendingReason = "review"
	PendingClarityNeeded PendingReason = "clarity_needed"
	PendingDataMissing   PendingReason = "data_missing"
)

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	StatusUnassigned TaskStatus = "unassigned"
	StatusAssigned   TaskStatus = "assigned"
	StatusPending    TaskStatus = "pending"
	StatusDone       TaskStatus = "done"
)

type TeamMember struct {
	ID       string    `db:"id"`
	TeamID   int       `db:"team_id"`
	FullName string    `db:"full_name"`
	Role     Role      `db:"role"`
	IsActive bool      `db:"is_active"`
	JoinedAt time.Time `db:"joined_at"`
}

type Team struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type TeamWithMembers struct {
	ID      int
	Name    string
	Members []TeamMember
}

type Task struct {
	ID             string         `db:"id"`
	TeamID         *int           `db:"team_id"`
	Title          string         `db:"title"`
	Status         TaskStatus     `db:"status"`
	Difficulty     Difficulty     `db:"difficulty"`
	Priority       Priority       `db:"priority"`
	EstimatedHours float64        `db:"estimated_hours"`
	PendingReason  *PendingReason `db:"pending_reason"`
	CreatedAt      time.Time      `db:"created_at"`
}

// Assignment is one row of a task's assignment history. The set of rows with
// IsActive=true defines who currently owns the task; superseded rows are
// deactivated, never deleted.
type Assignment struct {
	ID         string    `db:"id"`
	TaskID     string    `db:"task_id"`
	UserID     string    `db:"user_id"`
	AssignedBy string    `db:"assigned_by"`
	IsActive   bool      `db:"is_active"`
	IsPrimary  bool      `db:"is_primary"`
	CreatedAt  time.Time `db:"created_at"`
}

// AssignmentCriteria is the input contract for a single assignment decision.
// It is constructed per call and never persisted.
type AssignmentCriteria struct {
	TeamID         int
	Difficulty     Difficulty
	EstimatedHours float64
	Priority       Priority
	AssignedBy     string
}

// AssignmentResult is the outcome of one assignment decision. Either Success
// is true and the Assigned* fields are set, or Success is false and Error
// holds a business "no match" message. It never carries both.
type AssignmentResult struct {
	Success          bool   `json:"success"`
	AssignedUserID   string `json:"assigned_user_id,omitempty"`
	AssignedUserName string `json:"assigned_user_name,omitempty"`
	Reason           string `json:"reason,omitempty"`
	Error            string `json:"error,omitempty"`
}

// WorkloadStat is a per-member view of assignment load.
type WorkloadStat struct {
	UserID          string `db:"user_id"`
	FullName        string `db:"full_name"`
	Role            Role   `db:"role"`
	ActiveTasks     int    `db:"active_tasks"`
	TotalAssigned   int    `db:"total_assigned"`
	PrimaryAssigned int    `db:"primary_assigned"`
}
