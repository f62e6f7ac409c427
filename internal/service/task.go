package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
)

// CreateTaskParams contains the fields to create a task for the acting
// user. A nil Description stores NULL; an empty Status defaults to
// pending.
type CreateTaskParams struct {
	Title       string
	Description *string
	Status      model.TaskStatus
}

// Task enforces ownership and field validation for task CRUD. Every
// operation is scoped to the acting user resolved by the authentication
// middleware.
type Task struct {
	taskStore model.TaskStore
	logger    *logger.Logger
}

// NewTask creates a new Task service.
func NewTask(taskStore model.TaskStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		logger:    logger,
	}
}

func invalidStatusError() *model.AppError {
	statuses := make([]string, len(model.ValidStatuses))
	for i, s := range model.ValidStatuses {
		statuses[i] = string(s)
	}
	return model.NewValidationError("Status must be one of: " + strings.Join(statuses, ", "))
}

// Create validates and persists a new task owned by the acting user.
func (s *Task) Create(ctx context.Context, userID int64, params CreateTaskParams) (model.Task, error) {
	if params.Title == "" {
		return model.Task{}, model.NewValidationError("Title is required")
	}
	if params.Status == "" {
		params.Status = model.StatusPending
	}
	if !params.Status.Valid() {
		return model.Task{}, invalidStatusError()
	}

	task, err := s.taskStore.Create(ctx, model.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		UserID:      userID,
	})
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"user_id", userID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created",
		"user_id", userID,
		"task_id", task.ID)

	return task, nil
}

// List returns the acting user's tasks, newest first, optionally narrowed
// by status and a case-insensitive title/description search. An empty
// result is not an error.
func (s *Task) List(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalidStatusError()
	}

	tasks, err := s.taskStore.GetByUserID(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Task service: failed to list tasks",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update mutates only the supplied fields of a task owned by the acting
// user. A task owned by someone else reports the same not-found error as
// a missing one.
func (s *Task) Update(ctx context.Context, userID, taskID int64, update model.TaskUpdate) (model.Task, error) {
	if update.Empty() {
		return model.Task{}, model.NewValidationError("Please provide at least one field to update (title, description, or status)")
	}
	if update.Title != nil && *update.Title == "" {
		return model.Task{}, model.NewValidationError("Title cannot be empty")
	}
	if update.Status != nil && !update.Status.Valid() {
		return model.Task{}, invalidStatusError()
	}

	task, err := s.taskStore.Update(ctx, taskID, userID, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.NewNotFoundError("Task not found or you do not have permission to update it")
		}
		s.logger.Error("Task service: failed to update task",
			"user_id", userID,
			"task_id", taskID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task service: task updated",
		"user_id", userID,
		"task_id", taskID)

	return task, nil
}

// Delete removes a task owned by the acting user.
func (s *Task) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.taskStore.Delete(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError("Task not found or you do not have permission to delete it")
		}
		s.logger.Error("Task service: failed to delete task",
			"user_id", userID,
			"task_id", taskID,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted",
		"user_id", userID,
		"task_id", taskID)

	return nil
}
