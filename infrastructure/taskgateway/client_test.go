package taskgateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/infrastructure/taskgateway"
)

var _ board.Gateway = (*taskgateway.Client)(nil)

func TestFetchTasksSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":"1","title":"a","status":"todo"}]`))
	}))
	defer srv.Close()

	c := taskgateway.New(srv.URL, taskgateway.WithToken("tok"))
	tasks, err := c.FetchTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, tasksrepo.StatusTodo, tasks[0].Status)
}

func TestUpdateTaskSendsOnlySetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/abc", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"completed"}`, string(raw))
		w.Write([]byte(`{"id":"abc","title":"a","status":"completed"}`))
	}))
	defer srv.Close()

	st := tasksrepo.StatusCompleted
	got, err := taskgateway.New(srv.URL).UpdateTask(context.Background(), "abc", tasksrepo.UpdateTask{Status: &st})
	require.NoError(t, err)
	assert.Equal(t, tasksrepo.StatusCompleted, got.Status)
}

func TestNon2xxBecomesError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
		call     func(c *taskgateway.Client) error
		message  string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			sentinel: taskgateway.ErrUnauthorized,
			call: func(c *taskgateway.Client) error {
				_, err := c.FetchTasks(context.Background())
				return err
			},
			message: taskgateway.MsgFetchTasks,
		},
		{
			name:     "not-found",
			status:   http.StatusNotFound,
			sentinel: taskgateway.ErrNotFound,
			call: func(c *taskgateway.Client) error {
				return c.DeleteTask(context.Background(), "missing")
			},
			message: taskgateway.MsgDeleteTask,
		},
		{
			name:     "conflict",
			status:   http.StatusConflict,
			sentinel: taskgateway.ErrConflict,
			call: func(c *taskgateway.Client) error {
				_, err := c.Register(context.Background(), "a", "a@b.c", "pw")
				return err
			},
			message: taskgateway.MsgRegister,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": "server said no"})
			}))
			defer srv.Close()

			err := tt.call(taskgateway.New(srv.URL))
			require.Error(t, err)
			assert.ErrorIs(t, err, taskgateway.ErrNetworkFailure)
			assert.ErrorIs(t, err, tt.sentinel)

			var gerr *taskgateway.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.message, gerr.Message)
			assert.Equal(t, tt.status, gerr.StatusCode)
			assert.Equal(t, "server said no", gerr.Detail)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := taskgateway.New(url).CreateTask(context.Background(), tasksrepo.CreateTask{Title: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, taskgateway.ErrNetworkFailure)
	assert.NotErrorIs(t, err, taskgateway.ErrNotFound)

	var gerr *taskgateway.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, taskgateway.MsgCreateTask, gerr.Message)
	assert.Zero(t, gerr.StatusCode)
}

func TestLoginKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"user":{"id":"u1","name":"Demo","email":"demo@example.com"},"token":"t-1"}`))
	}))
	defer srv.Close()

	c := taskgateway.New(srv.URL)
	sess, err := c.Login(context.Background(), "demo@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, "t-1", c.Token())
}
