package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (title, description, status, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, title, description, status, user_id, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, string(task.Status), task.UserID,
	).Scan(
		&savedTask.ID, &savedTask.Title, &savedTask.Description, &savedTask.Status,
		&savedTask.UserID, &savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) GetByUserID(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error) {
	query := `SELECT id, title, description, status, user_id, created_at, updated_at
			  FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Status,
			&task.UserID, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

// Update mutates only the supplied fields, scoped by id and owner in one
// statement so an unowned task is indistinguishable from a missing one.
func (r *TaskRepository) Update(ctx context.Context, id, userID int64, update model.TaskUpdate) (model.Task, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if update.Title != nil {
		args = append(args, *update.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Description.Set {
		args = append(args, update.Description.Value)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, string(*update.Status))
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	idArg := len(args)
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d
			  RETURNING id, title, description, status, user_id, created_at, updated_at`,
		strings.Join(set, ", "), idArg, idArg+1)

	var task model.Task
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status,
		&task.UserID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task scoped by id and owner; zero affected rows report
// ErrNotFound.
func (r *TaskRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}
