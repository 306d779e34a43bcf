package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrazmi/taskboard/bridge/scaffolding/errs"
	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/infrastructure/web"
)

const bearerPrefix = "Bearer "

// Bearer rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the resulting identity in the context.
func Bearer(a auth.Authenticator) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				return errs.Newf(errs.Unauthenticated, "Unauthorized")
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if token == "" {
				return errs.Newf(errs.Unauthenticated, "Unauthorized")
			}

			id, err := a.Authenticate(ctx, token)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "Unauthorized")
			}

			return next(setIdentity(ctx, id), r)
		}
	}
}
