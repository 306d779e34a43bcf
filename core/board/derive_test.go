package board_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func task(id, title string, status tasksrepo.Status, created time.Time) tasksrepo.Task {
	return tasksrepo.Task{ID: id, Title: title, Status: status, CreatedAt: created, UpdatedAt: created}
}

func ids(tasks []tasksrepo.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestDeriveNewestFirst(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("1", "first", tasksrepo.StatusTodo, day(1)),
		task("2", "second", tasksrepo.StatusTodo, day(2)),
	}

	got := board.Derive(tasks, board.Config{Search: "", Status: board.FilterAll, SortBy: board.SortNewest})

	assert.Equal(t, []string{"2", "1"}, ids(got.Todo))
	assert.Empty(t, got.InProgress)
	assert.Empty(t, got.Completed)
}

func TestDerivePartitionsByStatus(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("a", "Alpha", tasksrepo.StatusCompleted, day(3)),
		task("b", "Beta", tasksrepo.StatusTodo, day(1)),
		task("c", "Gamma", tasksrepo.StatusInProgress, day(2)),
		task("d", "Delta", tasksrepo.StatusTodo, day(4)),
	}

	got := board.Derive(tasks, board.Config{Status: board.FilterAll, SortBy: board.SortOldest})

	assert.Equal(t, []string{"b", "d"}, ids(got.Todo))
	assert.Equal(t, []string{"c"}, ids(got.InProgress))
	assert.Equal(t, []string{"a"}, ids(got.Completed))
	assert.Equal(t, len(tasks), got.Len())
}

func TestDeriveSearch(t *testing.T) {
	tasks := []tasksrepo.Task{
		{ID: "1", Title: "Review design mockups", Status: tasksrepo.StatusTodo, CreatedAt: day(1)},
		{ID: "2", Title: "Ship", Description: "after the DESIGN review", Status: tasksrepo.StatusCompleted, CreatedAt: day(2)},
		{ID: "3", Title: "Unrelated", Description: "nothing", Status: tasksrepo.StatusTodo, CreatedAt: day(3)},
	}

	got := board.Derive(tasks, board.Config{Search: "Design", Status: board.FilterAll, SortBy: board.SortOldest})

	assert.Equal(t, []string{"1"}, ids(got.Todo))
	assert.Equal(t, []string{"2"}, ids(got.Completed))
}

func TestDeriveStatusFilter(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("1", "a", tasksrepo.StatusTodo, day(1)),
		task("2", "b", tasksrepo.StatusInProgress, day(2)),
	}

	got := board.Derive(tasks, board.Config{Status: board.StatusFilter(tasksrepo.StatusInProgress), SortBy: board.SortNewest})

	assert.Empty(t, got.Todo)
	assert.Equal(t, []string{"2"}, ids(got.InProgress))
}

func TestDeriveIgnoresUnknownStatus(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("1", "a", tasksrepo.StatusTodo, day(1)),
		task("2", "b", tasksrepo.Status("blocked"), day(2)),
	}

	got := board.Derive(tasks, board.DefaultConfig())
	assert.Equal(t, 1, got.Len())
}

func TestArrangeTitleOrderIsLocaleAware(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("B", "Banana", tasksrepo.StatusTodo, day(1)),
		task("a", "apple", tasksrepo.StatusTodo, day(2)),
		task("e", "éclair", tasksrepo.StatusTodo, day(3)),
		task("z", "Zucchini", tasksrepo.StatusTodo, day(4)),
	}

	az := board.Arrange(tasks, board.Config{Status: board.FilterAll, SortBy: board.SortAZ})
	assert.Equal(t, []string{"a", "B", "e", "z"}, ids(az))

	za := board.Arrange(tasks, board.Config{Status: board.FilterAll, SortBy: board.SortZA})
	assert.Equal(t, []string{"z", "e", "B", "a"}, ids(za))
}

func TestArrangeDoesNotModifyInput(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("1", "b", tasksrepo.StatusTodo, day(1)),
		task("2", "a", tasksrepo.StatusTodo, day(2)),
	}
	before := slices.Clone(tasks)

	board.Arrange(tasks, board.Config{Status: board.FilterAll, SortBy: board.SortAZ})
	assert.Equal(t, before, tasks)
}

func TestArrangeStableOnTies(t *testing.T) {
	tasks := []tasksrepo.Task{
		task("1", "same", tasksrepo.StatusTodo, day(1)),
		task("2", "same", tasksrepo.StatusTodo, day(1)),
		task("3", "same", tasksrepo.StatusTodo, day(1)),
	}

	for _, sortBy := range []board.SortBy{board.SortNewest, board.SortOldest, board.SortAZ, board.SortZA} {
		got := board.Arrange(tasks, board.Config{Status: board.FilterAll, SortBy: sortBy})
		assert.Equal(t, []string{"1", "2", "3"}, ids(got), "sortBy %s", sortBy)
	}
}

// Randomised checks of the partition and ordering properties.
func TestDeriveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	statuses := []tasksrepo.Status{tasksrepo.StatusTodo, tasksrepo.StatusInProgress, tasksrepo.StatusCompleted}
	words := []string{"alpha", "Beta", "gamma", "Delta", "epsilon", "Zeta", "eta", "Theta"}

	for round := 0; round < 50; round++ {
		n := rng.Intn(20)
		tasks := make([]tasksrepo.Task, n)
		for i := range tasks {
			tasks[i] = tasksrepo.Task{
				ID:          fmt.Sprintf("t%d", i),
				Title:       fmt.Sprintf("%s %d", words[rng.Intn(len(words))], i),
				Description: words[rng.Intn(len(words))],
				Status:      statuses[rng.Intn(len(statuses))],
				CreatedAt:   day(1).Add(time.Duration(i) * time.Minute),
			}
		}
		rng.Shuffle(len(tasks), func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })

		cfg := board.Config{
			Search: []string{"", "ETA", "a"}[rng.Intn(3)],
			Status: board.FilterAll,
			SortBy: []board.SortBy{board.SortNewest, board.SortOldest, board.SortAZ, board.SortZA}[rng.Intn(4)],
		}

		arranged := board.Arrange(tasks, cfg)
		buckets := board.Derive(tasks, cfg)
		require.Equal(t, len(arranged), buckets.Len())

		union := append(append(ids(buckets.Todo), ids(buckets.InProgress)...), ids(buckets.Completed)...)
		assert.ElementsMatch(t, ids(arranged), union)

		for _, b := range []struct {
			status tasksrepo.Status
			tasks  []tasksrepo.Task
		}{
			{tasksrepo.StatusTodo, buckets.Todo},
			{tasksrepo.StatusInProgress, buckets.InProgress},
			{tasksrepo.StatusCompleted, buckets.Completed},
		} {
			var want []string
			for _, t := range arranged {
				if t.Status == b.status {
					want = append(want, t.ID)
				}
			}
			assert.Equal(t, want, nilIfEmpty(ids(b.tasks)), "bucket %s keeps sort order", b.status)
		}

		again := board.Arrange(arranged, cfg)
		assert.Equal(t, ids(arranged), ids(again), "sorting is idempotent")

		az := board.Arrange(tasks, board.Config{Status: board.FilterAll, SortBy: board.SortAZ})
		za := board.Arrange(tasks, board.Config{Status: board.FilterAll, SortBy: board.SortZA})
		reversed := ids(za)
		slices.Reverse(reversed)
		assert.Equal(t, ids(az), reversed, "titles are unique so z-a reverses a-z")
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestParseConfig(t *testing.T) {
	cfg, err := board.ParseConfig("", "", "")
	require.NoError(t, err)
	assert.Equal(t, board.DefaultConfig(), cfg)

	cfg, err = board.ParseConfig("x", "in-progress", "z-a")
	require.NoError(t, err)
	assert.Equal(t, board.Config{Search: "x", Status: "in-progress", SortBy: board.SortZA}, cfg)

	_, err = board.ParseConfig("", "done", "")
	assert.ErrorIs(t, err, board.ErrInvalidConfig)

	_, err = board.ParseConfig("", "all", "priority")
	assert.ErrorIs(t, err, board.ErrInvalidConfig)
}
