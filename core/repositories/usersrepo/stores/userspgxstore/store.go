// Package userspgxstore persists users in PostgreSQL through pgx.
package userspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/infrastructure/postgresdb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

const selectColumns = `user_id::text AS user_id, name, email, password_hash, created_at`

// Store provides database access for User.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore creates a new User store
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) error {
	query := `INSERT INTO users (user_id, name, email, password_hash, created_at)
		VALUES (@user_id, @name, @email, @password_hash, @created_at)`

	args := pgx.NamedArgs{
		"user_id":       user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		err = postgresdb.HandlePgError(err)
		if errors.Is(err, postgresdb.ErrDBDuplicatedEntry) {
			return fmt.Errorf("email %s: %w", user.Email, repositories.ErrDuplicate)
		}
		return err
	}
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT ` + selectColumns + `
		FROM users
		WHERE email = @email`

	return s.getOne(ctx, query, pgx.NamedArgs{"email": email})
}

func (s *Store) GetByID(ctx context.Context, id string) (usersrepo.User, error) {
	if uuid.Validate(id) != nil {
		return usersrepo.User{}, repositories.ErrNotFound
	}

	query := `SELECT ` + selectColumns + `
		FROM users
		WHERE user_id = @user_id`

	return s.getOne(ctx, query, pgx.NamedArgs{"user_id": id})
}

func (s *Store) getOne(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	// CollectOneRow returns pgx.ErrNoRows if no rows
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	return user, nil
}
