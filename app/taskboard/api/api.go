// Package api mounts the taskboard routes.
package api

import (
	"context"
	"expvar"
	"net/http"

	"github.com/jrazmi/taskboard/app/taskboard/config"
	"github.com/jrazmi/taskboard/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/taskboard/bridge/repositories/usersrepobridge"
	"github.com/jrazmi/taskboard/bridge/scaffolding/mid"
	"github.com/jrazmi/taskboard/infrastructure/web"
)

type health struct {
	Status string `json:"status"`
}

// AddHandlers registers every route at the root, and again under the API
// prefix when one is configured.
func AddHandlers(wh *web.WebHandler, cfg config.Taskboard) {
	prefixes := []string{""}
	if cfg.APIPrefix != "" && cfg.APIPrefix != "/" {
		prefixes = append(prefixes, cfg.APIPrefix)
	}

	for _, prefix := range prefixes {
		group := wh.Group(prefix)

		group.GET("/health", func(ctx context.Context, r *http.Request) web.Encoder {
			return web.NewJSONResponse(health{Status: "ok"})
		})

		usersrepobridge.AddHttpRoutes(group, usersrepobridge.Config{
			Log:        cfg.Logger,
			Repository: cfg.Repositories.Users,
			Issuer:     cfg.Auth,
		})

		tasksrepobridge.AddHttpRoutes(group, tasksrepobridge.Config{
			Log:        cfg.Logger,
			Repository: cfg.Repositories.Tasks,
			Middleware: []web.Middleware{mid.Bearer(cfg.Auth)},
		})
	}

	if cfg.EnableDebug {
		wh.HandleRaw("GET /debug/vars", expvar.Handler())
	}
}
