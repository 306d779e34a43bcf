// Package taskspgxstore persists tasks in PostgreSQL through pgx.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/infrastructure/postgresdb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

const selectColumns = `task_id::text AS task_id, title, description, status, created_at, updated_at`

// Store provides database access for Task.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore creates a new Task store
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT ` + selectColumns + `
		FROM tasks
		ORDER BY position`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, id string) (tasksrepo.Task, error) {
	if uuid.Validate(id) != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	query := `SELECT ` + selectColumns + `
		FROM tasks
		WHERE task_id = @task_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"task_id": id})
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, translate(err)
	}
	return task, nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	query := `INSERT INTO tasks (task_id, title, description, status, created_at, updated_at)
		VALUES (@task_id, @title, @description, @status, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"status":      string(task.Status),
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, task tasksrepo.Task) error {
	if uuid.Validate(task.ID) != nil {
		return repositories.ErrNotFound
	}

	query := `UPDATE tasks
		SET title = @title,
			description = @description,
			status = @status,
			updated_at = @updated_at
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"status":      string(task.Status),
		"updated_at":  task.UpdatedAt,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return repositories.ErrNotFound
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = @task_id`, pgx.NamedArgs{"task_id": id})
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return fmt.Errorf("task: %w", repositories.ErrDuplicate)
	}
	return err
}
