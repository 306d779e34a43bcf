// Package tasksrepo is the task store: it validates and stamps tasks and
// hands persistence to a Storer.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/sdk/logger"
	"github.com/jrazmi/taskboard/sdk/validation"
)

// Set of error values for task operations.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrMissingTitle  = errors.New("title is required")
	ErrInvalidStatus = errors.New("invalid status")
)

// Storer persists tasks. List returns tasks in creation order. Get, Update
// and Delete return repositories.ErrNotFound for unknown ids.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id string) (Task, error)
	Create(ctx context.Context, task Task) error
	Update(ctx context.Context, task Task) error
	Delete(ctx context.Context, id string) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
	newID  func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator replaces the task id generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) {
		r.newID = fn
	}
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer, opts ...Option) *Repository {
	r := &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// List returns every task in creation order.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	return tasks, nil
}

// Get returns one task.
func (r *Repository) Get(ctx context.Context, id string) (Task, error) {
	task, err := r.storer.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("task repository get: %w", err)
	}
	return task, nil
}

// Create validates input and stores a new task with server assigned id and
// timestamps.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	if validation.Blank(input.Title) {
		return Task{}, ErrMissingTitle
	}

	status := input.Status
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := r.timestamp()
	task := Task{
		ID:          r.newID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.storer.Create(ctx, task); err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.DebugContext(ctx, "task created", "task_id", task.ID, "status", task.Status)
	return task, nil
}

// Update applies the set fields of input to the task and refreshes
// updatedAt. Concurrent updates are last writer wins.
func (r *Repository) Update(ctx context.Context, id string, input UpdateTask) (Task, error) {
	task, err := r.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if input.Title != nil {
		if validation.Blank(*input.Title) {
			return Task{}, ErrMissingTitle
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	task.Description = validation.ValueOr(input.Description, task.Description)
	if input.Status != nil {
		if !input.Status.Valid() {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *input.Status)
		}
		task.Status = *input.Status
	}

	task.UpdatedAt = r.timestamp()
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}

	if err := r.storer.Update(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("task repository update: %w", err)
	}

	r.log.DebugContext(ctx, "task updated", "task_id", task.ID, "status", task.Status)
	return task, nil
}

// Delete removes the task permanently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("task repository delete: %w", err)
	}

	r.log.DebugContext(ctx, "task deleted", "task_id", id)
	return nil
}
