package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/taskdeck/server/internal/api/http/request"
	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
	"github.com/taskdeck/server/internal/service"
)

// TaskService defines ownership-scoped task CRUD operations.
type TaskService interface {
	Create(ctx context.Context, userID int64, params service.CreateTaskParams) (model.Task, error)
	List(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, userID, taskID int64, update model.TaskUpdate) (model.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

// Task handles HTTP endpoints for the authenticated user's tasks.
type Task struct {
	taskService TaskService
	logger      *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, logger *logger.Logger) *Task {
	return &Task{
		taskService: taskService,
		logger:      logger,
	}
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

type updateTaskRequest struct {
	Title       *string              `json:"title"`
	Description model.OptionalString `json:"description"`
	Status      *string              `json:"status"`
}

// Create persists a new task owned by the acting user.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Invalid request body"))
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
	})
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Task created successfully", map[string]any{
		"task": toTaskResponse(task),
	})
}

// List returns the acting user's tasks with optional status and search
// query filters.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	query := r.URL.Query()
	filter := model.TaskFilter{
		Status: model.TaskStatus(query.Get("status")),
		Search: query.Get("search"),
	}

	tasks, err := h.taskService.List(r.Context(), userID, filter)
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, toTaskResponse(task))
	}

	results := len(responses)
	WriteJSON(w, http.StatusOK, Response{
		Status:  "success",
		Results: &results,
		Data:    map[string]any{"tasks": responses},
	})
}

// Update mutates the supplied fields of one of the acting user's tasks.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Invalid request body"))
		return
	}

	update := model.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		update.Status = &status
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, update)
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task updated successfully", map[string]any{
		"task": toTaskResponse(task),
	})
}

// Delete removes one of the acting user's tasks.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

func parseTaskID(r *http.Request) (int64, error) {
	taskID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, model.NewValidationError("Invalid task ID")
	}
	return taskID, nil
}
