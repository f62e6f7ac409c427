package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/server/internal/model"
)

func newMockTaskRepo(t *testing.T) (*TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewTaskRepository(&Connection{DB: db}), mock
}

func taskColumns() []string {
	return []string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}
}

func TestTaskRepository_Create(t *testing.T) {
	now := time.Now()
	repo, mock := newMockTaskRepo(t)

	desc := "write the report"
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tasks (title, description, status, user_id) VALUES ($1, $2, $3, $4) RETURNING id, title, description, status, user_id, created_at, updated_at`)).
		WithArgs("Quarterly report", desc, "pending", int64(1)).
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(10), "Quarterly report", desc, "pending", int64(1), now, now))

	task, err := repo.Create(context.Background(), model.Task{
		Title:       "Quarterly report",
		Description: &desc,
		Status:      model.StatusPending,
		UserID:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), task.ID)
	assert.Equal(t, model.StatusPending, task.Status)
	require.NotNil(t, task.Description)
	assert.Equal(t, desc, *task.Description)
}

func TestTaskRepository_GetByUserID(t *testing.T) {
	now := time.Now()

	t.Run("no filter", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(taskColumns()).
				AddRow(int64(2), "Newest", nil, "pending", int64(1), now, now).
				AddRow(int64(1), "Oldest", nil, "completed", int64(1), now.Add(-time.Hour), now.Add(-time.Hour)))

		tasks, err := repo.GetByUserID(context.Background(), 1, model.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "Newest", tasks[0].Title)
		assert.Nil(t, tasks[0].Description)
	})

	t.Run("status filter", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`)).
			WithArgs(int64(1), "completed").
			WillReturnRows(sqlmock.NewRows(taskColumns()).
				AddRow(int64(1), "Done", nil, "completed", int64(1), now, now))

		tasks, err := repo.GetByUserID(context.Background(), 1, model.TaskFilter{Status: model.StatusCompleted})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, model.StatusCompleted, tasks[0].Status)
	})

	t.Run("search filter wraps term in wildcards", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2) ORDER BY created_at DESC`)).
			WithArgs(int64(1), "%report%").
			WillReturnRows(sqlmock.NewRows(taskColumns()))

		tasks, err := repo.GetByUserID(context.Background(), 1, model.TaskFilter{Search: "report"})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("status and search combined", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE user_id = $1 AND status = $2 AND (title ILIKE $3 OR description ILIKE $3) ORDER BY created_at DESC`)).
			WithArgs(int64(1), "pending", "%report%").
			WillReturnRows(sqlmock.NewRows(taskColumns()))

		_, err := repo.GetByUserID(context.Background(), 1, model.TaskFilter{
			Status: model.StatusPending,
			Search: "report",
		})
		require.NoError(t, err)
	})
}

func TestTaskRepository_Update(t *testing.T) {
	now := time.Now()

	t.Run("updates only supplied fields scoped by owner", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		status := model.StatusCompleted
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE tasks SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND user_id = $3 RETURNING id, title, description, status, user_id, created_at, updated_at`)).
			WithArgs("completed", int64(10), int64(1)).
			WillReturnRows(sqlmock.NewRows(taskColumns()).
				AddRow(int64(10), "Report", nil, "completed", int64(1), now, now))

		task, err := repo.Update(context.Background(), 10, 1, model.TaskUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, task.Status)
	})

	t.Run("explicit null clears description", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE tasks SET description = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND user_id = $3`)).
			WithArgs(nil, int64(10), int64(1)).
			WillReturnRows(sqlmock.NewRows(taskColumns()).
				AddRow(int64(10), "Report", nil, "pending", int64(1), now, now))

		task, err := repo.Update(context.Background(), 10, 1, model.TaskUpdate{
			Description: model.OptionalString{Set: true, Value: nil},
		})
		require.NoError(t, err)
		assert.Nil(t, task.Description)
	})

	t.Run("all fields with ordered args", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		title := "Renamed"
		desc := "updated"
		status := model.StatusInProgress
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4 AND user_id = $5`)).
			WithArgs("Renamed", desc, "in_progress", int64(10), int64(1)).
			WillReturnRows(sqlmock.NewRows(taskColumns()).
				AddRow(int64(10), "Renamed", desc, "in_progress", int64(1), now, now))

		task, err := repo.Update(context.Background(), 10, 1, model.TaskUpdate{
			Title:       &title,
			Description: model.OptionalString{Set: true, Value: &desc},
			Status:      &status,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", task.Title)
	})

	t.Run("unowned task reads as not found", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		title := "hijack"
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE tasks SET title = $1`)).
			WithArgs("hijack", int64(10), int64(2)).
			WillReturnRows(sqlmock.NewRows(taskColumns()))

		_, err := repo.Update(context.Background(), 10, 2, model.TaskUpdate{Title: &title})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`)).
			WithArgs(int64(10), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 10, 1))
	})

	t.Run("unowned task reads as not found", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`)).
			WithArgs(int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 10, 2)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
