package board

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// Gateway is the remote task store as seen by a board.
type Gateway interface {
	FetchTasks(ctx context.Context) ([]tasksrepo.Task, error)
	CreateTask(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error)
	UpdateTask(ctx context.Context, id string, input tasksrepo.UpdateTask) (tasksrepo.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Board holds a client's copy of the task list. Every mutation is sent to
// the gateway first and applied locally only once the gateway confirms it;
// a failed call leaves the local list untouched. Nothing is retried.
type Board struct {
	log *logger.Logger
	gw  Gateway

	onLoading func(loading bool)

	mu    sync.Mutex
	tasks []tasksrepo.Task
}

// Option configures a Board.
type Option func(*Board)

// WithLoadingFn sets fn to be called with true when Load starts and false
// when it returns. No other operation calls it.
func WithLoadingFn(fn func(loading bool)) Option {
	return func(b *Board) {
		b.onLoading = fn
	}
}

func New(log *logger.Logger, gw Gateway, opts ...Option) *Board {
	b := &Board{log: log, gw: gw, onLoading: func(bool) {}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load replaces the local list with the store's.
func (b *Board) Load(ctx context.Context) error {
	b.onLoading(true)
	defer b.onLoading(false)

	tasks, err := b.gw.FetchTasks(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	for _, t := range tasks {
		if !t.Status.Valid() {
			b.log.WarnContext(ctx, "task has unknown status, it will not appear on the board",
				"task_id", t.ID, "status", t.Status)
		}
	}

	b.mu.Lock()
	b.tasks = slices.Clone(tasks)
	b.mu.Unlock()
	return nil
}

// Tasks returns a copy of the local list.
func (b *Board) Tasks() []tasksrepo.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.tasks)
}

// View derives the board for cfg from the local list.
func (b *Board) View(cfg Config) Buckets {
	return Derive(b.Tasks(), cfg)
}

// Create adds a task.
func (b *Board) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	task, err := b.gw.CreateTask(ctx, input)
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("create: %w", err)
	}

	b.mu.Lock()
	b.tasks = append(b.tasks, task)
	b.mu.Unlock()
	return task, nil
}

// Update edits a task.
func (b *Board) Update(ctx context.Context, id string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	task, err := b.gw.UpdateTask(ctx, id, input)
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("update: %w", err)
	}

	b.replace(task)
	return task, nil
}

// Delete removes a task.
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.gw.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	b.mu.Lock()
	b.tasks = slices.DeleteFunc(b.tasks, func(t tasksrepo.Task) bool {
		return t.ID == id
	})
	b.mu.Unlock()
	return nil
}

// Drop moves a task to the target column. It reports false without calling
// the gateway when OnDrop finds nothing to do.
func (b *Board) Drop(ctx context.Context, taskID string, target tasksrepo.Status) (bool, error) {
	cmd, ok := OnDrop(taskID, target, b.Tasks())
	if !ok {
		return false, nil
	}

	task, err := b.gw.UpdateTask(ctx, cmd.ID, tasksrepo.UpdateTask{Status: &cmd.Status})
	if err != nil {
		return false, fmt.Errorf("drop: %w", err)
	}

	b.replace(task)
	return true, nil
}

// replace swaps in the server's copy of task.
func (b *Board) replace(task tasksrepo.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := slices.IndexFunc(b.tasks, func(t tasksrepo.Task) bool { return t.ID == task.ID }); i >= 0 {
		b.tasks[i] = task
	}
}
