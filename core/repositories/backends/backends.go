// Package backends opens the task and user stores for a configured driver.
package backends

import (
	"context"
	"fmt"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo/stores/userssqlitestore"
	"github.com/jrazmi/taskboard/infrastructure/postgresdb"
	"github.com/jrazmi/taskboard/infrastructure/sqlitedb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// Driver names a storage backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Config selects and prepares the backend.
type Config struct {
	Driver  Driver `env:"STORE_DRIVER" default:"memory"`
	Migrate bool   `env:"STORE_MIGRATE" default:"true"`
}

// Backends holds the stores for one driver. Close releases the underlying
// connection and is safe to call for the memory driver.
type Backends struct {
	Driver Driver
	Tasks  tasksrepo.Storer
	Users  usersrepo.Storer
	Close  func()
}

// Open connects to the configured driver, reading connection settings from
// prefixed environment variables, and applies migrations when asked.
func Open(ctx context.Context, log *logger.Logger, prefix string, cfg Config) (Backends, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return Backends{
			Driver: DriverMemory,
			Tasks:  tasksmemstore.NewStore(),
			Users:  usersmemstore.NewStore(),
			Close:  func() {},
		}, nil

	case DriverPostgres:
		pool, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return Backends{}, fmt.Errorf("configuring postgres support: %w", err)
		}
		if cfg.Migrate {
			if err := postgresdb.Migrate(ctx, log.Logger, pool); err != nil {
				pool.Close()
				return Backends{}, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return Backends{
			Driver: DriverPostgres,
			Tasks:  taskspgxstore.NewStore(log, pool),
			Users:  userspgxstore.NewStore(log, pool),
			Close:  pool.Close,
		}, nil

	case DriverSQLite:
		db, err := sqlitedb.NewFromEnv(prefix)
		if err != nil {
			return Backends{}, fmt.Errorf("configuring sqlite support: %w", err)
		}
		if cfg.Migrate {
			if err := sqlitedb.Migrate(ctx, log.Logger, db); err != nil {
				db.Close()
				return Backends{}, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return Backends{
			Driver: DriverSQLite,
			Tasks:  taskssqlitestore.NewStore(log, db),
			Users:  userssqlitestore.NewStore(log, db),
			Close:  func() { db.Close() },
		}, nil
	}

	return Backends{}, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
