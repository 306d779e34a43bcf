// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/infrastructure/web"
)

type ctxKey int

const (
	identityKey ctxKey = iota + 1
)

func setIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the authenticated identity stored by Bearer.
func GetIdentity(ctx context.Context) (auth.Identity, error) {
	v, ok := ctx.Value(identityKey).(auth.Identity)
	if !ok {
		return auth.Identity{}, errors.New("identity not found in context")
	}
	return v, nil
}

// GetUserID returns the user id of the authenticated caller. Placeholder
// tokens may not carry one.
func GetUserID(ctx context.Context) (string, error) {
	id, err := GetIdentity(ctx)
	if err != nil {
		return "", err
	}
	if id.UserID == "" {
		return "", errors.New("user id not found in context")
	}
	return id.UserID, nil
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
