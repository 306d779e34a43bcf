package usersrepobridge

import (
	"errors"

	"github.com/jrazmi/taskboard/bridge/scaffolding/errs"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
)

// Session is the body returned by register and login.
type Session struct {
	User  usersrepo.User `json:"user"`
	Token string         `json:"token"`
}

func toAppError(err error) *errs.Error {
	switch {
	case errors.Is(err, usersrepo.ErrMissingFields):
		return errs.Newf(errs.InvalidArgument, "Missing required fields")
	case errors.Is(err, usersrepo.ErrEmailInUse):
		return errs.Newf(errs.AlreadyExists, "Email already in use")
	case errors.Is(err, usersrepo.ErrInvalidCredentials):
		return errs.Newf(errs.Unauthenticated, "Invalid credentials")
	}
	return errs.New(errs.InternalOnlyLog, err)
}
