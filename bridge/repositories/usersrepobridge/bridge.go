package usersrepobridge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrazmi/taskboard/bridge/scaffolding/errs"
	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/infrastructure/web"
	"github.com/jrazmi/taskboard/sdk/logger"
)

type bridge struct {
	log            *logger.Logger
	userRepository *usersrepo.Repository
	issuer         auth.Issuer
}

func newBridge(log *logger.Logger, userRepository *usersrepo.Repository, issuer auth.Issuer) *bridge {
	return &bridge{
		log:            log,
		userRepository: userRepository,
		issuer:         issuer,
	}
}

func (b *bridge) httpRegister(ctx context.Context, r *http.Request) web.Encoder {
	var input usersrepo.RegisterUser
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	user, err := b.userRepository.Register(ctx, input)
	if err != nil {
		return toAppError(err)
	}

	return b.session(ctx, user)
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input usersrepo.Credentials
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	user, err := b.userRepository.Authenticate(ctx, input)
	if err != nil {
		return toAppError(err)
	}

	return b.session(ctx, user)
}

func (b *bridge) session(ctx context.Context, user usersrepo.User) web.Encoder {
	token, err := b.issuer.Issue(ctx, user.ID)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, fmt.Errorf("issue token: %w", err))
	}
	return web.NewJSONResponse(Session{User: user, Token: token})
}
