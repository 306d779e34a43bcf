// Package usersrepo registers and authenticates users. Passwords are stored
// as bcrypt hashes of their base64 encoded SHA-256 digest, so passwords of
// any length are accepted and no two of them share a bcrypt input.
package usersrepo

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrazmi/taskboard/core/repositories"
	"github.com/jrazmi/taskboard/sdk/logger"
	"github.com/jrazmi/taskboard/sdk/validation"
)

// Set of error values for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Storer persists users. Create returns repositories.ErrDuplicate when the
// email is taken; lookups return repositories.ErrNotFound.
type Storer interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}

// Repository provides access to user storage.
type Repository struct {
	log        *logger.Logger
	storer     Storer
	bcryptCost int
	now        func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithBcryptCost sets the bcrypt work factor for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(r *Repository) {
		r.bcryptCost = cost
	}
}

// WithClock replaces the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a new User repository
func NewRepository(log *logger.Logger, storer Storer, opts ...Option) *Repository {
	r := &Repository{
		log:        log,
		storer:     storer,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register creates a user. Emails are compared case-insensitively.
func (r *Repository) Register(ctx context.Context, input RegisterUser) (User, error) {
	if validation.AnyBlank(input.Name, input.Email) || input.Password == "" {
		return User{}, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(input.Password), r.bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        validation.NormalizeEmail(input.Email),
		PasswordHash: string(hash),
		CreatedAt:    r.now().UTC().Truncate(time.Millisecond),
	}

	if err := r.storer.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return User{}, ErrEmailInUse
		}
		return User{}, fmt.Errorf("user repository register: %w", err)
	}

	r.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the user whose email and password match. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (r *Repository) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	if validation.Blank(creds.Email) || creds.Password == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := r.storer.GetByEmail(ctx, validation.NormalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("user repository authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordKey(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID returns one user.
func (r *Repository) GetByID(ctx context.Context, id string) (User, error) {
	user, err := r.storer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("user repository get by id: %w", err)
	}
	return user, nil
}

// passwordKey is the bcrypt input for password. bcrypt reads at most 72
// bytes; the encoded digest is 44.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
