// Package auth turns bearer tokens into identities. Strategies are
// pluggable so handlers never depend on how a token is checked.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Set of error values for token checks.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Identity is who a request acts as. UserID is empty when the strategy
// cannot tell.
type Identity struct {
	UserID string
	Token  string
}

// Authenticator verifies a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Identity, error)
}

// Issuer mints a token for a user after login or registration.
type Issuer interface {
	Issue(ctx context.Context, userID string) (string, error)
}

// Strategy both issues and verifies tokens.
type Strategy interface {
	Authenticator
	Issuer
}

// Strategy names accepted by Config.Strategy.
const (
	StrategyPlaceholder = "placeholder"
	StrategyJWT         = "jwt"
)

// Config is the exportable authentication configuration.
type Config struct {
	Strategy   string        `env:"AUTH_STRATEGY" default:"placeholder"`
	SigningKey string        `env:"AUTH_JWT_SIGNING_KEY"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" default:"24h"`
	Issuer     string        `env:"AUTH_ISSUER" default:"taskboard"`
}

// New builds the strategy named by cfg.
func New(cfg Config) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Strategy)) {
	case "", StrategyPlaceholder:
		return NewPlaceholder(), nil
	case StrategyJWT:
		return NewJWT(JWTConfig{
			SigningKey: cfg.SigningKey,
			TTL:        cfg.TokenTTL,
			Issuer:     cfg.Issuer,
		})
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.Strategy)
	}
}
