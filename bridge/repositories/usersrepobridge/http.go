// Package usersrepobridge exposes registration and login over HTTP.
package usersrepobridge

import (
	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/infrastructure/web"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// Config holds configuration for the user bridge.
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Issuer     auth.Issuer
	Middleware []web.Middleware
}

// AddHttpRoutes registers the account routes on group. Neither route needs
// a token.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository, cfg.Issuer)

	group.POST("/register", b.httpRegister, cfg.Middleware...)
	group.POST("/login", b.httpLogin, cfg.Middleware...)
}
