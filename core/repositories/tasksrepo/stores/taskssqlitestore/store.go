// Package taskssqlitestore persists tasks in SQLite.
package taskssqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/infrastructure/sqlitedb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

const selectColumns = `task_id, title, description, status, created_at, updated_at`

// Store persists tasks in SQLite. Timestamps are stored as unix
// milliseconds.
type Store struct {
	log *logger.Logger
	db  *sql.DB
}

func NewStore(log *logger.Logger, db *sql.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (tasksrepo.Task, error) {
	var (
		task             tasksrepo.Task
		status           string
		created, updated int64
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &status, &created, &updated); err != nil {
		return tasksrepo.Task{}, err
	}
	task.Status = tasksrepo.Status(status)
	task.CreatedAt = sqlitedb.FromMillis(created)
	task.UpdatedAt = sqlitedb.FromMillis(updated)
	return task, nil
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []tasksrepo.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, id string) (tasksrepo.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM tasks WHERE task_id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (task_id, title, description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		sqlitedb.ToMillis(task.CreatedAt),
		sqlitedb.ToMillis(task.UpdatedAt),
	)
	if err != nil {
		if sqlitedb.IsUniqueViolation(err) {
			return fmt.Errorf("task %s: %w", task.ID, repositories.ErrDuplicate)
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, task tasksrepo.Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE task_id = ?`,
		task.Title,
		task.Description,
		string(task.Status),
		sqlitedb.ToMillis(task.UpdatedAt),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
