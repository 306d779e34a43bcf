// Package userssqlitestore persists users in SQLite.
package userssqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/infrastructure/sqlitedb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// Store persists users in SQLite.
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

func (s *Store) Create(ctx context.Context, user usersrepo.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		sqlitedb.ToMillis(user.CreatedAt),
	)
	if err != nil {
		if sqlitedb.IsUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, repositories.ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	return s.getOne(ctx, `WHERE email = ?`, email)
}

func (s *Store) GetByID(ctx context.Context, id string) (usersrepo.User, error) {
	return s.getOne(ctx, `WHERE user_id = ?`, id)
}

func (s *Store) getOne(ctx context.Context, where string, arg any) (usersrepo.User, error) {
	var (
		user    usersrepo.User
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, password_hash, created_at FROM users `+where, arg,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt = sqlitedb.FromMillis(created)
	return user, nil
}
