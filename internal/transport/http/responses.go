package http

import (
	"github.com/complyops/task-assigner/internal/domain"
)

type memberView struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type teamView struct {
	TeamName string       `json:"team_name"`
	Members  []memberView `json:"members"`
}

type taskView struct {
	TaskID         string  `json:"task_id"`
	TeamID         *int    `json:"team_id,omitempty"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	Difficulty     string  `json:"difficulty"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours"`
	PendingReason  *string `json:"pending_reason,omitempty"`
}

type workloadView struct {
	UserID          string `json:"user_id"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
	ActiveTasks     int    `json:"active_tasks"`
	TotalAssigned   int    `json:"total_assigned"`
	PrimaryAssigned int    `json:"primary_assigned"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

const (
	codeNotFound   = "NOT_FOUND"
	codeTeamExists = "TEAM_EXISTS"
	codeTaskExists = "TASK_EXISTS"
)

func toTeamView(team *domain.TeamWithMembers) *teamView {
	members := make([]memberView, len(team.Members))
	for i, member := range team.Members {
		members[i] = toMemberView(member)
	}

	return &teamView{
		TeamName: team.Name,
		Members:  members,
	}
}

func toMemberView(member domain.TeamMember) memberView {
	return memberView{
		UserID:   member.ID,
		FullName: member.FullName,
		Role:     string(member.Role),
		IsActive: member.IsActive,
	}
}

func toTaskView(task *domain.Task) *taskView {
	view := &taskView{
		TaskID:         task.ID,
		TeamID:         task.TeamID,
		Title:          task.Title,
		Status:         string(task.Status),
		Difficulty:     string(task.Difficulty),
		Priority:       string(task.Priority),
		EstimatedHours: task.EstimatedHours,
	}

	if task.PendingReason != nil {
		reason := string(*task.PendingReason)
		view.PendingReason = &reason
	}

	return view
}

func toWorkloadViews(stats []domain.WorkloadStat) []workloadView {
	views := make([]workloadView, len(stats))
	for i, stat := range stats {
		views[i] = workloadView{
			UserID:          stat.UserID,
			FullName:        stat.FullName,
			Role:            string(stat.Role),
			ActiveTasks:     stat.ActiveTasks,
			TotalAssigned:   stat.TotalAssigned,
			PrimaryAssigned: stat.PrimaryAssigned,
		}
	}

	return views
}
