package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/taskboard/core/seed"
	"github.com/jrazmi/taskboard/sdk/logger"
)

func TestApplyTwice(t *testing.T) {
	log := logger.NewDiscard()
	tasks := tasksrepo.NewRepository(log, tasksmemstore.NewStore())
	users := usersrepo.NewRepository(log, usersmemstore.NewStore(), usersrepo.WithBcryptCost(bcrypt.MinCost))
	ctx := context.Background()

	require.NoError(t, seed.Apply(ctx, tasks, users))
	require.NoError(t, seed.Apply(ctx, tasks, users))

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Complete project proposal", list[0].Title)
	assert.Equal(t, tasksrepo.StatusInProgress, list[1].Status)

	user, err := users.Authenticate(ctx, usersrepo.Credentials{Email: seed.DemoEmail, Password: seed.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, seed.DemoName, user.Name)
}
