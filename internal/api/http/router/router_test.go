package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/server/internal/api/http/handler"
	"github.com/taskdeck/server/internal/model"
	"github.com/taskdeck/server/internal/service"
	"github.com/taskdeck/server/internal/testutil"
	"github.com/taskdeck/server/internal/token"
)

type memUserStore struct {
	users  map[int64]model.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]model.User), nextID: 1}
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return model.User{}, model.ErrDuplicateEmail
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) Update(_ context.Context, id int64, update model.ProfileUpdate) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return u, nil
}

func (s *memUserStore) UpdateProfilePicture(_ context.Context, id int64, pictureURL string) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	u.ProfilePicture = &pictureURL
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return u, nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.Password = passwordHash
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

type memTaskStore struct {
	tasks  map[int64]model.Task
	nextID int64
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[int64]model.Task), nextID: 1}
}

func (s *memTaskStore) Create(_ context.Context, task model.Task) (model.Task, error) {
	task.ID = s.nextID
	s.nextID++
	task.CreatedAt = time.Now().Add(time.Duration(task.ID) * time.Millisecond)
	task.UpdatedAt = task.CreatedAt
	s.tasks[task.ID] = task
	return task, nil
}

func (s *memTaskStore) GetByUserID(_ context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error) {
	var tasks []model.Task
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			title := strings.ToLower(t.Title)
			var desc string
			if t.Description != nil {
				desc = strings.ToLower(*t.Description)
			}
			if !strings.Contains(title, needle) && !strings.Contains(desc, needle) {
				continue
			}
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (s *memTaskStore) Update(_ context.Context, id, userID int64, update model.TaskUpdate) (model.Task, error) {
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, model.ErrNotFound
	}
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description.Set {
		t.Description = update.Description.Value
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	t.UpdatedAt = time.Now()
	s.tasks[id] = t
	return t, nil
}

func (s *memTaskStore) Delete(_ context.Context, id, userID int64) error {
	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return model.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

type testApp struct {
	server *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := testutil.MakeNoopLogger()
	userStore := newMemUserStore()
	taskStore := newMemTaskStore()
	tokenManager := token.NewJWT("test-secret", time.Hour)

	authService := service.NewAuth(userStore, tokenManager, log)
	userService := service.NewUser(userStore, nil, log)
	taskService := service.NewTask(taskStore, log)

	cookie := handler.CookieOptions{TTL: time.Hour}
	r := New(
		handler.NewAuth(authService, cookie, log),
		handler.NewUser(userService, log),
		handler.NewTask(taskService, log),
		tokenManager,
		userStore,
		"http://localhost:3000",
		log,
	)

	server := httptest.NewServer(r.Register())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		server: server,
		client: &http.Client{Jar: jar},
	}
}

func (a *testApp) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	resp, body := app.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	resp, body := app.do(t, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Can't find /api/unknown on this server!", body["message"])
}

func TestRouter_ProtectedRoutesRequireSession(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	resp, body := app.do(t, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required. Please log in.", body["message"])
}

func TestRouter_CORSHeaders(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	resp, _ := app.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestRouter_FullSessionFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	// Register and pick up the session cookie.
	resp, body := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Jane","email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	// Duplicate registration conflicts.
	resp, body = app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Jane","email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User with this email already exists", body["message"])

	// Create three tasks, one of them completed.
	for i, payload := range []string{
		`{"title":"Write report","description":"quarterly numbers"}`,
		`{"title":"Review PRs","status":"in_progress"}`,
		`{"title":"Ship release","status":"completed"}`,
	} {
		resp, _ = app.do(t, http.MethodPost, "/api/tasks", payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "task %d", i)
	}

	// Full listing, newest first.
	resp, body = app.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["results"])
	tasks := body["data"].(map[string]any)["tasks"].([]any)
	assert.Equal(t, "Ship release", tasks[0].(map[string]any)["title"])

	// Status filter.
	resp, body = app.do(t, http.MethodGet, "/api/tasks?status=completed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	// Search matches descriptions case-insensitively.
	resp, body = app.do(t, http.MethodGet, "/api/tasks?search=QUARTERLY", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["results"])

	// Invalid status filter names the accepted values.
	resp, body = app.do(t, http.MethodGet, "/api/tasks?status=archived", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Status must be one of: pending, in_progress, completed", body["message"])

	// Complete the first task.
	resp, body = app.do(t, http.MethodPut, "/api/tasks/1", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	task := body["data"].(map[string]any)["task"].(map[string]any)
	assert.Equal(t, "completed", task["status"])

	// Clear its description with an explicit null.
	resp, body = app.do(t, http.MethodPut, "/api/tasks/1", `{"description":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	task = body["data"].(map[string]any)["task"].(map[string]any)
	assert.Nil(t, task["description"])

	// Delete a task and confirm the listing shrinks.
	resp, _ = app.do(t, http.MethodDelete, "/api/tasks/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = app.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["results"])

	// Profile round trip.
	resp, body = app.do(t, http.MethodGet, "/api/user/profile", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotContains(t, user, "password")

	resp, body = app.do(t, http.MethodPut, "/api/user/profile", `{"name":"Janet"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "Janet", user["name"])

	// Change the password, log out, and log back in with the new one.
	resp, _ = app.do(t, http.MethodPut, "/api/user/password",
		`{"currentPassword":"password123","newPassword":"betterpassword"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = app.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"password123"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["message"])

	resp, _ = app.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"betterpassword"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	resp, _ := app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Owner","email":"owner@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := app.do(t, http.MethodPost, "/api/tasks", `{"title":"Private task"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int64(body["data"].(map[string]any)["task"].(map[string]any)["id"].(float64))

	// A second user cannot see, update or delete the first user's task.
	resp, _ = app.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Intruder","email":"intruder@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = app.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["results"])

	resp, body = app.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), `{"title":"hijack"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found or you do not have permission to update it", body["message"])

	resp, body = app.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found or you do not have permission to delete it", body["message"])
}
