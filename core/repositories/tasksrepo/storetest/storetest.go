// Package storetest checks that a tasksrepo.Storer behaves like the rest.
// Every store package runs it against its own backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

// Run exercises newStore. Each subtest gets a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) tasksrepo.Storer) {
	t.Helper()

	t.Run("create-get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := newTask("write tests", tasksrepo.StatusTodo, 0)
		require.NoError(t, s.Create(ctx, task))

		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		RequireSameTask(t, task, got)
	})

	t.Run("list-creation-order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		empty, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		a := newTask("a", tasksrepo.StatusTodo, 2*time.Hour)
		b := newTask("b", tasksrepo.StatusCompleted, 0)
		c := newTask("c", tasksrepo.StatusInProgress, time.Hour)
		for _, task := range []tasksrepo.Task{a, b, c} {
			require.NoError(t, s.Create(ctx, task))
		}

		got, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(got))
	})

	t.Run("duplicate-id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := newTask("once", tasksrepo.StatusTodo, 0)
		require.NoError(t, s.Create(ctx, task))
		assert.ErrorIs(t, s.Create(ctx, task), repositories.ErrDuplicate)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := newTask("draft", tasksrepo.StatusTodo, 0)
		require.NoError(t, s.Create(ctx, task))

		task.Title = "final"
		task.Description = "done now"
		task.Status = tasksrepo.StatusCompleted
		task.UpdatedAt = task.UpdatedAt.Add(time.Minute)
		require.NoError(t, s.Update(ctx, task))

		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		RequireSameTask(t, task, got)

		missing := newTask("ghost", tasksrepo.StatusTodo, 0)
		assert.ErrorIs(t, s.Update(ctx, missing), repositories.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		keep := newTask("keep", tasksrepo.StatusTodo, 0)
		drop := newTask("drop", tasksrepo.StatusTodo, 0)
		require.NoError(t, s.Create(ctx, keep))
		require.NoError(t, s.Create(ctx, drop))

		require.NoError(t, s.Delete(ctx, drop.ID))
		assert.ErrorIs(t, s.Delete(ctx, drop.ID), repositories.ErrNotFound)

		_, err := s.Get(ctx, drop.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{keep.ID}, ids(got))
	})

	t.Run("get-unknown", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

// RequireSameTask compares tasks field by field, timestamps by instant.
func RequireSameTask(t *testing.T, want, got tasksrepo.Task) {
	t.Helper()
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.Description, got.Description)
	require.Equal(t, want.Status, got.Status)
	require.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt %v != %v", want.CreatedAt, got.CreatedAt)
	require.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updatedAt %v != %v", want.UpdatedAt, got.UpdatedAt)
}

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTask(title string, status tasksrepo.Status, offset time.Duration) tasksrepo.Task {
	at := base.Add(offset)
	return tasksrepo.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: title + " description",
		Status:      status,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func ids(tasks []tasksrepo.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
