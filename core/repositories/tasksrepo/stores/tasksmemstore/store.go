// Package tasksmemstore keeps tasks in process memory. Contents are lost on
// restart.
package tasksmemstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

// Store is a tasksrepo.Storer backed by a slice.
type Store struct {
	mu    sync.RWMutex
	tasks []tasksrepo.Task
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tasks), nil
}

func (s *Store) Get(ctx context.Context, id string) (tasksrepo.Task, error) {
	if err := ctx.Err(); err != nil {
		return tasksrepo.Task{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}
	return s.tasks[i], nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(task.ID) >= 0 {
		return fmt.Errorf("task %s: %w", task.ID, repositories.ErrDuplicate)
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *Store) Update(ctx context.Context, task tasksrepo.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(task.ID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	s.tasks[i] = task
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// index must be called with mu held.
func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t tasksrepo.Task) bool {
		return t.ID == id
	})
}
