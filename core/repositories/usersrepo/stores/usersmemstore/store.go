// Package usersmemstore keeps users in process memory.
package usersmemstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
)

// Store is a usersrepo.Storer keyed by id with an email index.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]usersrepo.User
	byEmail map[string]string
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]usersrepo.User),
		byEmail: make(map[string]string),
	}
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return fmt.Errorf("email %s: %w", user.Email, repositories.ErrDuplicate)
	}
	if _, ok := s.byID[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, repositories.ErrDuplicate)
	}

	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	if err := ctx.Err(); err != nil {
		return usersrepo.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *Store) GetByID(ctx context.Context, id string) (usersrepo.User, error) {
	if err := ctx.Err(); err != nil {
		return usersrepo.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return user, nil
}
