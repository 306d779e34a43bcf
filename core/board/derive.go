// Package board holds the task board rules: the filtered, sorted and
// partitioned view of a task list, and the drag and drop status flow.
package board

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

// Buckets is the board: tasks partitioned by status, each in view order.
type Buckets struct {
	Todo       []tasksrepo.Task `json:"todo"`
	InProgress []tasksrepo.Task `json:"inProgress"`
	Completed  []tasksrepo.Task `json:"completed"`
}

// Len returns the number of tasks on the board.
func (b Buckets) Len() int {
	return len(b.Todo) + len(b.InProgress) + len(b.Completed)
}

// Arrange filters tasks by cfg and sorts them. The input is not modified.
func Arrange(tasks []tasksrepo.Task, cfg Config) []tasksrepo.Task {
	search := strings.ToLower(cfg.Search)

	out := make([]tasksrepo.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if cfg.Status != "" && cfg.Status != FilterAll && string(t.Status) != string(cfg.Status) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, comparator(cfg.SortBy))
	return out
}

// Derive arranges tasks and partitions them by status. Tasks whose status is
// not a board status land in no bucket.
func Derive(tasks []tasksrepo.Task, cfg Config) Buckets {
	b := Buckets{
		Todo:       []tasksrepo.Task{},
		InProgress: []tasksrepo.Task{},
		Completed:  []tasksrepo.Task{},
	}

	for _, t := range Arrange(tasks, cfg) {
		switch t.Status {
		case tasksrepo.StatusTodo:
			b.Todo = append(b.Todo, t)
		case tasksrepo.StatusInProgress:
			b.InProgress = append(b.InProgress, t)
		case tasksrepo.StatusCompleted:
			b.Completed = append(b.Completed, t)
		}
	}

	return b
}

// comparator returns the ordering for sortBy; unknown values sort newest
// first. A collator is not safe for concurrent use, so each call gets its
// own.
func comparator(sortBy SortBy) func(a, b tasksrepo.Task) int {
	switch sortBy {
	case SortOldest:
		return func(a, b tasksrepo.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case SortAZ:
		c := collate.New(language.English)
		return func(a, b tasksrepo.Task) int {
			return c.CompareString(a.Title, b.Title)
		}
	case SortZA:
		c := collate.New(language.English)
		return func(a, b tasksrepo.Task) int {
			return c.CompareString(b.Title, a.Title)
		}
	default:
		return func(a, b tasksrepo.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}
