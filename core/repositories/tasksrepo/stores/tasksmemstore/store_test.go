package tasksmemstore_test

import (
	"testing"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) tasksrepo.Storer {
		return tasksmemstore.NewStore()
	})
}
