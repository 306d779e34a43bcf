package taskspgxstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/storetest"
	"github.com/jrazmi/taskboard/infrastructure/postgresdb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

// Runs against a disposable database named by TASKBOARD_TEST_PG_URL; every
// subtest truncates the tasks table.
func TestStore(t *testing.T) {
	url := os.Getenv("TASKBOARD_TEST_PG_URL")
	if url == "" {
		t.Skip("TASKBOARD_TEST_PG_URL not set")
	}

	log := logger.NewDiscard()
	ctx := context.Background()

	pool, err := postgresdb.Open(postgresdb.Options{DatabaseURL: url, MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgresdb.Migrate(ctx, log.Logger, pool))

	storetest.Run(t, func(t *testing.T) tasksrepo.Storer {
		_, err := pool.Exec(ctx, `TRUNCATE tasks`)
		require.NoError(t, err)
		return taskspgxstore.NewStore(log, pool)
	})
}
