package model

import (
	"context"
	"time"
)

// TaskStore defines persistence operations for tasks. Update and Delete
// match id and owner in a single conditional statement and return
// ErrNotFound when no row qualifies.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByUserID(ctx context.Context, userID int64, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, id, userID int64, update TaskUpdate) (Task, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Task represents a stored task entity owned by a single user.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus enumerates task states.
type TaskStatus string

const (
	// StatusPending is the default state of a new task.
	StatusPending TaskStatus = "pending"
	// StatusInProgress marks a task being worked on.
	StatusInProgress TaskStatus = "in_progress"
	// StatusCompleted marks a finished task.
	StatusCompleted TaskStatus = "completed"
)

// ValidStatuses lists the accepted task states in display order.
var ValidStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the accepted states.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskFilter narrows a task listing. Zero values mean no filtering.
type TaskFilter struct {
	Status TaskStatus
	Search string
}

// TaskUpdate carries task fields to change. Nil pointers mean the field
// was not provided; Description distinguishes "omitted" from an explicit
// null so a description can be cleared.
type TaskUpdate struct {
	Title       *string
	Description OptionalString
	Status      *TaskStatus
}

// Empty reports whether the update carries no fields.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && !u.Description.Set && u.Status == nil
}
