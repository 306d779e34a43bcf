package board

import (
	"slices"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

// UpdateCommand asks the task store to move a task to another status.
type UpdateCommand struct {
	ID     string
	Status tasksrepo.Status
}

// OnDrop interprets dropping task taskID on the target column. It returns
// false when there is nothing to do: the task is unknown or already has the
// target status.
func OnDrop(taskID string, target tasksrepo.Status, current []tasksrepo.Task) (UpdateCommand, bool) {
	i := slices.IndexFunc(current, func(t tasksrepo.Task) bool {
		return t.ID == taskID
	})
	if i < 0 || current[i].Status == target {
		return UpdateCommand{}, false
	}
	return UpdateCommand{ID: taskID, Status: target}, true
}
