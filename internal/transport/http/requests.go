package http

type createTeamRequest struct {
	TeamName string `json:"team_name" validate:"required,min=3,max=50"`
	Members  []struct {
		UserID   string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
		FullName string `json:"full_name" validate:"required,min=2,max=100"`
		Role     string `json:"role" validate:"required,oneof=admin manager senior employee data_collector"`
		IsActive bool   `json:"is_active"`
	} `json:"members" validate:"omitempty,dive"`
}

type setMemberActiveRequest struct {
	UserID   string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
	IsActive bool   `json:"is_active"`
}

type createTaskRequest struct {
	TaskID         string  `json:"task_id" validate:"required,custom_id,min=1,max=100"`
	TeamID         *int    `json:"team_id" validate:"omitempty,min=1"`
	Title          string  `json:"title" validate:"required,min=3,max=255"`
	Difficulty     string  `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Priority       string  `json:"priority" validate:"required,oneof=low medium high urgent"`
	EstimatedHours float64 `json:"estimated_hours" validate:"min=0"`
	CreatedBy      string  `json:"created_by" validate:"required,custom_id,min=1,max=100"`
}

type assignTaskRequest struct {
	TaskID         string  `json:"task_id" validate:"required,custom_id,min=1,max=100"`
	TeamID         int     `json:"team_id" validate:"required,min=1"`
	Difficulty     string  `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Priority       string  `json:"priority" validate:"required,oneof=low medium high urgent"`
	EstimatedHours float64 `json:"estimated_hours" validate:"min=0"`
	AssignedBy     string  `json:"assigned_by" validate:"required,custom_id,min=1,max=100"`
}

type setTaskPendingRequest struct {
	TaskID        string `json:"task_id" validate:"required,custom_id,min=1,max=100"`
	PendingReason string `json:"pending_reason" validate:"required,min=1,max=50"`
	ActorID       string `json:"actor_id" validate:"required,custom_id,min=1,max=100"`
}
