package commands_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrazmi/taskboard/app/boardcli/commands"
	"github.com/jrazmi/taskboard/app/taskboard/api"
	"github.com/jrazmi/taskboard/app/taskboard/config"
	"github.com/jrazmi/taskboard/bridge/scaffolding/mid"
	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/taskboard/core/seed"
	"github.com/jrazmi/taskboard/infrastructure/web"
	"github.com/jrazmi/taskboard/sdk/logger"
)

type harness struct {
	t     *testing.T
	tasks *tasksrepo.Repository
	cli   *commands.CLI
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.NewDiscard()
	cfg := config.Taskboard{
		Logger: log,
		Auth:   auth.NewPlaceholder(),
		Repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, tasksmemstore.NewStore()),
			Users: usersrepo.NewRepository(log, usersmemstore.NewStore(), usersrepo.WithBcryptCost(bcrypt.MinCost)),
		},
	}
	require.NoError(t, seed.Apply(context.Background(), cfg.Repositories.Tasks, cfg.Repositories.Users))

	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(log), mid.Panics()))
	api.AddHandlers(wh, cfg)
	srv := httptest.NewServer(wh)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	cli := commands.New(log, out, commands.Config{
		BaseURL:   srv.URL,
		TokenFile: filepath.Join(t.TempDir(), "token"),
	})
	return &harness{t: t, tasks: cfg.Repositories.Tasks, cli: cli, out: out}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	return h.cli.Run(context.Background(), args)
}

func (h *harness) login() {
	require.NoError(h.t, h.run("login", "-email", seed.DemoEmail, "-password", seed.DemoPassword))
}

func (h *harness) taskByTitle(title string) tasksrepo.Task {
	tasks, err := h.tasks.List(context.Background())
	require.NoError(h.t, err)
	for _, t := range tasks {
		if t.Title == title {
			return t
		}
	}
	h.t.Fatalf("no task titled %q", title)
	return tasksrepo.Task{}
}

func TestBoardRequiresLogin(t *testing.T) {
	h := newHarness(t)

	err := h.run("board")
	require.ErrorIs(t, err, commands.ErrNotLoggedIn)
	assert.Equal(t, "Please log in first", commands.Message(err))
}

func TestLoginAndShowBoard(t *testing.T) {
	h := newHarness(t)
	h.login()
	assert.Contains(t, h.out.String(), "Demo User")

	require.NoError(t, h.run("board", "-sort", "a-z"))
	out := h.out.String()
	assert.Contains(t, out, "To Do (1)")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Completed (1)")
	assert.Contains(t, out, "Review design mockups")
	assert.NotContains(t, out, "Loading tasks...")
}

func TestBoardShowsLoadingIndicator(t *testing.T) {
	h := newHarness(t)
	h.login()

	var status bytes.Buffer
	h.cli.SetStatusOutput(&status)

	require.NoError(t, h.run("board"))
	assert.Equal(t, "Loading tasks...\n", status.String())

	status.Reset()
	require.NoError(t, h.run("add", "-title", "No fetch here"))
	assert.Empty(t, status.String())
}

func TestWrongPasswordShowsStaticMessage(t *testing.T) {
	h := newHarness(t)

	err := h.run("login", "-email", seed.DemoEmail, "-password", "nope")
	require.Error(t, err)
	assert.Equal(t, "Failed to log in", commands.Message(err))
}

func TestMoveByPrefix(t *testing.T) {
	h := newHarness(t)
	h.login()

	task := h.taskByTitle("Complete project proposal")
	require.NoError(t, h.run("move", task.ID[:8], "completed"))
	assert.Contains(t, h.out.String(), "moved")
	assert.Equal(t, tasksrepo.StatusCompleted, h.taskByTitle("Complete project proposal").Status)

	require.NoError(t, h.run("move", task.ID, "completed"))
	assert.Contains(t, h.out.String(), "already")
}

func TestAddEditRemove(t *testing.T) {
	h := newHarness(t)
	h.login()

	require.NoError(t, h.run("add", "-title", "Write release notes", "-status", "in-progress"))
	task := h.taskByTitle("Write release notes")
	assert.Equal(t, tasksrepo.StatusInProgress, task.Status)

	require.NoError(t, h.run("edit", task.ID, "-description", "for v2"))
	edited := h.taskByTitle("Write release notes")
	assert.Equal(t, "for v2", edited.Description)
	assert.Equal(t, tasksrepo.StatusInProgress, edited.Status)

	require.NoError(t, h.run("rm", task.ID))
	tasks, err := h.tasks.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	h.login()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown-command", args: []string{"fly"}, want: commands.ErrUsage},
		{name: "move-bad-status", args: []string{"move", "x", "done"}, want: tasksrepo.ErrInvalidStatus},
		{name: "move-unknown-id", args: []string{"move", "zzzz", "todo"}, want: commands.ErrNoMatch},
		{name: "edit-nothing", args: []string{"edit", "x"}, want: commands.ErrUsage},
		{name: "board-bad-sort", args: []string{"board", "-sort", "up"}, want: board.ErrInvalidConfig},
		{name: "add-no-title", args: []string{"add"}, want: commands.ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.run(tt.args...)
			require.ErrorIs(t, err, tt.want)
			assert.NotEqual(t, "Something went wrong", commands.Message(err))
		})
	}
}

func TestRenderBoardAlignsWideTitles(t *testing.T) {
	var out bytes.Buffer
	commands.RenderBoard(&out, board.Buckets{
		Todo:       []tasksrepo.Task{{ID: "aaaaaaaa-1", Title: "éclair tasting"}},
		InProgress: []tasksrepo.Task{{ID: "bbbbbbbb-2", Title: "日本語のタスク"}},
		Completed:  []tasksrepo.Task{},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "To Do (1)")
	assert.Contains(t, lines[2], "aaaaaaaa éclair tasting")
	assert.Contains(t, lines[2], "bbbbbbbb 日本語のタスク")
}
