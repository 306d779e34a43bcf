// Package commands implements the boardcli subcommands on top of the task
// gateway and the board.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/infrastructure/taskgateway"
	"github.com/jrazmi/taskboard/sdk/logger"
)

var (
	ErrHelp        = errors.New("provided help")
	ErrUsage       = errors.New("usage")
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNoMatch     = errors.New("no task matches that id")
	ErrAmbiguous   = errors.New("more than one task matches that id")
)

// Config is read from BOARDCLI_ prefixed environment variables.
type Config struct {
	BaseURL   string `env:"API_URL" default:"http://localhost:3000"`
	TokenFile string `env:"TOKEN_FILE"`
}

// CLI runs one subcommand per invocation.
type CLI struct {
	log    *logger.Logger
	out    io.Writer
	status io.Writer
	gw     *taskgateway.Client
	tokens TokenStore
}

func New(log *logger.Logger, out io.Writer, cfg Config, opts ...taskgateway.Option) *CLI {
	path := cfg.TokenFile
	if path == "" {
		path = DefaultTokenPath()
	}
	return &CLI{
		log:    log,
		out:    out,
		status: io.Discard,
		gw:     taskgateway.New(cfg.BaseURL, opts...),
		tokens: TokenStore{Path: path},
	}
}

// SetStatusOutput sets where progress lines such as the loading indicator
// go. They are discarded by default.
func (c *CLI) SetStatusOutput(w io.Writer) {
	c.status = w
}

// Message turns err into the text shown to the user. Gateway failures show
// only the generic message for the operation.
func Message(err error) string {
	var gerr *taskgateway.Error
	switch {
	case errors.As(err, &gerr):
		if errors.Is(err, taskgateway.ErrUnauthorized) && gerr.Op != "login" && gerr.Op != "register" {
			return "Your session is no longer valid, please log in again"
		}
		return gerr.Message
	case errors.Is(err, ErrNotLoggedIn):
		return "Please log in first"
	case errors.Is(err, ErrNoMatch), errors.Is(err, ErrAmbiguous),
		errors.Is(err, ErrUsage), errors.Is(err, board.ErrInvalidConfig),
		errors.Is(err, tasksrepo.ErrInvalidStatus):
		return err.Error()
	}
	return "Something went wrong"
}

// Run dispatches args[0] to its subcommand.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.Help()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "register":
		return c.register(ctx, rest)
	case "logout":
		return c.tokens.Clear()
	case "board":
		return c.board(ctx, rest)
	case "add":
		return c.add(ctx, rest)
	case "edit":
		return c.edit(ctx, rest)
	case "move":
		return c.move(ctx, rest)
	case "rm":
		return c.remove(ctx, rest)
	case "help", "-h", "--help":
		c.Help()
		return nil
	}

	c.Help()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

func (c *CLI) Help() {
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  login -email E -password P               Log in and remember the token")
	fmt.Fprintln(c.out, "  register -name N -email E -password P    Create an account")
	fmt.Fprintln(c.out, "  logout                                   Forget the token")
	fmt.Fprintln(c.out, "  board [-search S] [-status S] [-sort S]  Show the board")
	fmt.Fprintln(c.out, "  add -title T [-description D] [-status S]")
	fmt.Fprintln(c.out, "  edit <id> [-title T] [-description D] [-status S]")
	fmt.Fprintln(c.out, "  move <id> <todo|in-progress|completed>")
	fmt.Fprintln(c.out, "  rm <id>")
	fmt.Fprintln(c.out, "Ids may be shortened to any unique prefix.")
}

func (c *CLI) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrHelp
		}
		return fmt.Errorf("%w: %s", ErrUsage, err)
	}
	return nil
}

// authorize loads the saved token into the gateway.
func (c *CLI) authorize() error {
	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotLoggedIn
	}
	c.gw.SetToken(token)
	return nil
}

func (c *CLI) login(ctx context.Context, args []string) error {
	fs := c.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}

	sess, err := c.gw.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := c.tokens.Save(sess.Token); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "logged in as %s\n", sess.User.Name)
	return nil
}

func (c *CLI) register(ctx context.Context, args []string) error {
	fs := c.flags("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}

	sess, err := c.gw.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	if err := c.tokens.Save(sess.Token); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "registered %s\n", sess.User.Email)
	return nil
}

func (c *CLI) board(ctx context.Context, args []string) error {
	fs := c.flags("board")
	search := fs.String("search", "", "match title or description")
	status := fs.String("status", string(board.FilterAll), "all, todo, in-progress or completed")
	sortBy := fs.String("sort", string(board.SortNewest), "newest, oldest, a-z or z-a")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := board.ParseConfig(*search, *status, *sortBy)
	if err != nil {
		return err
	}

	b, err := c.load(ctx)
	if err != nil {
		return err
	}

	RenderBoard(c.out, b.View(cfg))
	return nil
}

func (c *CLI) add(ctx context.Context, args []string) error {
	fs := c.flags("add")
	title := fs.String("title", "", "task title")
	description := fs.String("description", "", "task description")
	status := fs.String("status", string(tasksrepo.StatusTodo), "todo, in-progress or completed")
	if err := parse(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*title) == "" {
		return fmt.Errorf("%w: add needs -title", ErrUsage)
	}
	st, err := tasksrepo.ParseStatus(*status)
	if err != nil {
		return err
	}
	if err := c.authorize(); err != nil {
		return err
	}

	b := board.New(c.log, c.gw)
	task, err := b.Create(ctx, tasksrepo.CreateTask{Title: *title, Description: *description, Status: st})
	if err != nil {
		return err
	}

	RenderTask(c.out, task)
	return nil
}

func (c *CLI) edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: edit needs a task id", ErrUsage)
	}
	ref := args[0]

	fs := c.flags("edit")
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	status := fs.String("status", "", "new status")
	if err := parse(fs, args[1:]); err != nil {
		return err
	}

	var input tasksrepo.UpdateTask
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			input.Title = title
		case "description":
			input.Description = description
		case "status":
			st, err := tasksrepo.ParseStatus(*status)
			if err != nil {
				parseErr = err
				return
			}
			input.Status = &st
		}
	})
	if parseErr != nil {
		return parseErr
	}
	if input.Empty() {
		return fmt.Errorf("%w: nothing to change", ErrUsage)
	}

	b, err := c.load(ctx)
	if err != nil {
		return err
	}
	id, err := resolveID(b.Tasks(), ref)
	if err != nil {
		return err
	}

	task, err := b.Update(ctx, id, input)
	if err != nil {
		return err
	}

	RenderTask(c.out, task)
	return nil
}

func (c *CLI) move(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: move <id> <status>", ErrUsage)
	}
	target, err := tasksrepo.ParseStatus(args[1])
	if err != nil {
		return err
	}

	b, err := c.load(ctx)
	if err != nil {
		return err
	}
	id, err := resolveID(b.Tasks(), args[0])
	if err != nil {
		return err
	}

	moved, err := b.Drop(ctx, id, target)
	if err != nil {
		return err
	}
	if !moved {
		fmt.Fprintf(c.out, "%s is already %s\n", shortID(id), target)
		return nil
	}

	fmt.Fprintf(c.out, "moved %s to %s\n", shortID(id), target)
	return nil
}

func (c *CLI) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rm <id>", ErrUsage)
	}

	b, err := c.load(ctx)
	if err != nil {
		return err
	}
	id, err := resolveID(b.Tasks(), args[0])
	if err != nil {
		return err
	}

	if err := b.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "deleted %s\n", shortID(id))
	return nil
}

// load authorizes and fetches the task list into a fresh board.
func (c *CLI) load(ctx context.Context) (*board.Board, error) {
	if err := c.authorize(); err != nil {
		return nil, err
	}
	b := board.New(c.log, c.gw, board.WithLoadingFn(func(loading bool) {
		if loading {
			fmt.Fprintln(c.status, "Loading tasks...")
		}
	}))
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveID finds the task whose id equals ref or uniquely starts with it.
func resolveID(tasks []tasksrepo.Task, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", ErrNoMatch)
	}

	var match string
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, ref)
	}
	return match, nil
}
