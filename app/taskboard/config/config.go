// Package config holds what the taskboard server is assembled from.
package config

import (
	"fmt"

	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/core/repositories/backends"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/sdk/environment"
	"github.com/jrazmi/taskboard/sdk/logger"
	"github.com/jrazmi/taskboard/sdk/telemetry"
)

// Settings are the environment driven knobs beyond the web server's own.
type Settings struct {
	Store      backends.Config
	Seed       bool `env:"STORE_SEED" default:"true"`
	BcryptCost int  `env:"AUTH_BCRYPT_COST" default:"10"`
	Auth       auth.Config
}

// LoadSettings reads Settings from prefixed environment variables.
func LoadSettings(prefix string) (Settings, error) {
	var s Settings
	if err := environment.ParseEnvTags(prefix, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing taskboard settings: %w", err)
	}
	return s, nil
}

type Repositories struct {
	Tasks *tasksrepo.Repository
	Users *usersrepo.Repository
}

// Taskboard is everything the HTTP layer needs.
type Taskboard struct {
	Build        string
	APIPrefix    string
	EnableDebug  bool
	Logger       *logger.Logger
	Telemetry    telemetry.Telemetry
	Auth         auth.Strategy
	Repositories Repositories
}
