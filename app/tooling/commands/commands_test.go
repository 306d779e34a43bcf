package commands_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskboard/app/tooling/commands"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/taskboard/infrastructure/sqlitedb"
	"github.com/jrazmi/taskboard/sdk/logger"
)

func TestMigrateAndSeedSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tooling.db")
	t.Setenv("TOOLINGTEST_SQLITE_PATH", path)

	ctx := context.Background()
	log := logger.NewDiscard()

	require.NoError(t, commands.Migrate(ctx, log, "TOOLINGTEST", []string{"-driver", "sqlite"}))
	require.NoError(t, commands.Seed(ctx, log, "TOOLINGTEST", []string{"-driver", "sqlite"}))
	require.NoError(t, commands.Seed(ctx, log, "TOOLINGTEST", []string{"-driver", "sqlite"}))

	db, err := sqlitedb.Open(sqlitedb.Options{Path: path})
	require.NoError(t, err)
	defer db.Close()

	tasks, err := tasksrepo.NewRepository(log, taskssqlitestore.NewStore(log, db)).List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestSeedRejectsMemory(t *testing.T) {
	err := commands.Seed(context.Background(), logger.NewDiscard(), "TOOLINGTEST", []string{"-driver", "memory"})
	require.Error(t, err)
}

func TestUnknownDriver(t *testing.T) {
	err := commands.Migrate(context.Background(), logger.NewDiscard(), "TOOLINGTEST", []string{"-driver", "mysql"})
	require.Error(t, err)
}
