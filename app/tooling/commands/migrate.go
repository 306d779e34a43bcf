package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/jrazmi/taskboard/infrastructure/postgresdb"
	"github.com/jrazmi/taskboard/infrastructure/sqlitedb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Migrate creates the schema for the postgres or sqlite database configured
// by prefixed environment variables.
func Migrate(ctx context.Context, log *logger.Logger, prefix string, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	driver := fs.String("driver", "postgres", "database to migrate: postgres or sqlite")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrHelp
		}
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "driver", *driver)

	switch *driver {
	case "postgres":
		pool, err := postgresdb.NewFromEnv(prefix,
			postgresdb.WithLogger(log.Logger),
			postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)),
		)
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer pool.Close()

		if err := postgresdb.Migrate(ctx, log.Logger, pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

	case "sqlite":
		db, err := sqlitedb.NewFromEnv(prefix)
		if err != nil {
			return fmt.Errorf("configuring sqlite support: %w", err)
		}
		defer db.Close()

		if err := sqlitedb.Migrate(ctx, log.Logger, db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

	default:
		return fmt.Errorf("unknown driver %q", *driver)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}
