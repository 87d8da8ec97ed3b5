// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/complyops/task-assigner/internal/apperrors"
	"github.com/complyops/task-assigner/internal/domain"
	"github.com/complyops/task-assigner/internal/service"
	"github.com/complyops/task-assigner/internal/validation"
	"github.com/complyops/task-assigner/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log               *slog.Logger
	teamService       service.TeamService
	taskService       service.TaskService
	assignmentService service.AssignmentService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	teams service.TeamService,
	tasks service.TaskService,
	assignments service.AssignmentService,
) *Server {
	return &Server{
		log:               log,
		teamService:       teams,
		taskService:       tasks,
		assignmentService: assignments,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/team/add", s.PostTeamAdd)
	mux.Get("/team/get", s.GetTeamGet)
	mux.Post("/members/setIsActive", s.PostMembersSetIsActive)
	mux.Post("/task/create", s.PostTaskCreate)
	mux.Post("/task/assign", s.PostTaskAssign)
	mux.Post("/task/setPending", s.PostTaskSetPending)
	mux.Get("/stats/workload", s.GetStatsWorkload)

	return mux
}

func (s *Server) PostTeamAdd(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostTeamAdd"

	var req createTeamRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	members := make([]domain.TeamMember, len(req.Members))
	for i, m := range req.Members {
		members[i] = domain.TeamMember{
			ID:       m.UserID,
			FullName: m.FullName,
			Role:     domain.Role(m.Role),
			IsActive: m.IsActive,
		}
	}

	team, err := s.teamService.CreateTeamWithMembers(r.Context(), req.TeamName, members)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*teamView{"team": toTeamView(team)})
}

func (s *Server) GetTeamGet(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetTeamGet"

	teamName := r.URL.Query().Get("team_name")
	if teamName == "" {
		s.respondError(w, http.StatusBadRequest, "query parameter 'team_name' is required")
		return
	}

	team, err := s.teamService.GetTeam(r.Context(), teamName)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*teamView{"team": toTeamView(team)})
}

func (s *Server) PostMembersSetIsActive(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostMembersSetIsActive"

	var req setMemberActiveRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	member, err := s.teamService.SetMemberActive(r.Context(), req.UserID, req.IsActive)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	view := toMemberView(*member)

	s.respond(w, http.StatusOK, map[string]*memberView{"member": &view})
}

func (s *Server) PostTaskCreate(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostTaskCreate"

	var req createTaskRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	input := service.CreateTaskInput{
		TaskID:         req.TaskID,
		TeamID:         req.TeamID,
		Title:          req.Title,
		Difficulty:     domain.Difficulty(req.Difficulty),
		Priority:       domain.Priority(req.Priority),
		EstimatedHours: req.EstimatedHours,
		CreatedBy:      req.CreatedBy,
	}

	task, result, err := s.taskService.CreateTask(r.Context(), input)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]interface{}{
		"task":       toTaskView(task),
		"assignment": result,
	})
}

func (s *Server) PostTaskAssign(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostTaskAssign"

	var req assignTaskRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	criteria := domain.AssignmentCriteria{
		TeamID:         req.TeamID,
		Difficulty:     domain.Difficulty(req.Difficulty),
		Priority:       domain.Priority(req.Priority),
		EstimatedHours: req.EstimatedHours,
		AssignedBy:     req.AssignedBy,
	}

	result, err := s.taskService.AssignTask(r.Context(), req.TaskID, criteria)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.AssignmentResult{"assignment": result})
}

func (s *Server) PostTaskSetPending(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PostTaskSetPending"

	var req setTaskPendingRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	task, result, err := s.taskService.SetTaskPending(
		r.Context(), req.TaskID, domain.PendingReason(req.PendingReason), req.ActorID,
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"task":       toTaskView(task),
		"assignment": result,
	})
}

func (s *Server) GetStatsWorkload(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStatsWorkload"

	stats, err := s.assignmentService.GetWorkloadStats(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]workloadView{"user_stats": toWorkloadViews(stats)})
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// respondAPIError formats and sends a structured error response with a machine-readable code.
func (s *Server) respondAPIError(w http.ResponseWriter, code int, apiCode string, message string) {
	s.respond(w, code, errorResponse{
		Error: errorBody{
			Code:    apiCode,
			Message: message,
		},
	})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, _ *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		teamExistsErr *apperrors.TeamAlreadyExistsError
		taskExistsErr *apperrors.TaskAlreadyExistsError
		validationErr *validation.ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		wrappedErr := fmt.Errorf("%w: %s", apperrors.ErrValidation, validationErr.Error())
		s.respondError(w, http.StatusBadRequest, wrappedErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondAPIError(w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.As(err, &teamExistsErr):
		s.respondAPIError(w, http.StatusConflict, codeTeamExists, "team with this name already exists")
	case errors.As(err, &taskExistsErr):
		s.respondAPIError(w, http.StatusConflict, codeTaskExists, "task with this id already exists")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
