package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/jrazmi/taskboard/core/repositories/backends"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/core/seed"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// Seed loads the demo user and sample tasks into a durable store. The
// schema is migrated first.
func Seed(ctx context.Context, log *logger.Logger, prefix string, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	driver := fs.String("driver", "postgres", "database to seed: postgres or sqlite")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrHelp
		}
		return err
	}

	if backends.Driver(*driver) == backends.DriverMemory {
		return errors.New("the memory store does not outlive this command")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "seeding started", "driver", *driver)

	stores, err := backends.Open(ctx, log, prefix, backends.Config{Driver: backends.Driver(*driver), Migrate: true})
	if err != nil {
		return err
	}
	defer stores.Close()

	tasks := tasksrepo.NewRepository(log, stores.Tasks)
	users := usersrepo.NewRepository(log, stores.Users)
	if err := seed.Apply(ctx, tasks, users); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	log.InfoContext(ctx, "seeding completed successfully", "demo_user", seed.DemoEmail)
	return nil
}
