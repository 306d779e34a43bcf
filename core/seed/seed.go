// Package seed loads the demo account and sample tasks.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
)

// Demo account credentials.
const (
	DemoName     = "Demo User"
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

// Tasks are the sample tasks, in creation order.
var Tasks = []tasksrepo.CreateTask{
	{
		Title:       "Complete project proposal",
		Description: "Draft the initial project proposal for the client meeting",
		Status:      tasksrepo.StatusTodo,
	},
	{
		Title:       "Review design mockups",
		Description: "Review the design mockups from the design team",
		Status:      tasksrepo.StatusInProgress,
	},
	{
		Title:       "Set up development environment",
		Description: "Install and configure all necessary tools for development",
		Status:      tasksrepo.StatusCompleted,
	},
}

// Apply registers the demo user unless the email is taken, and creates the
// sample tasks when the store has none. Running it twice is harmless.
func Apply(ctx context.Context, tasks *tasksrepo.Repository, users *usersrepo.Repository) error {
	_, err := users.Register(ctx, usersrepo.RegisterUser{Name: DemoName, Email: DemoEmail, Password: DemoPassword})
	if err != nil && !errors.Is(err, usersrepo.ErrEmailInUse) {
		return fmt.Errorf("seed demo user: %w", err)
	}

	existing, err := tasks.List(ctx)
	if err != nil {
		return fmt.Errorf("seed list tasks: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, in := range Tasks {
		if _, err := tasks.Create(ctx, in); err != nil {
			return fmt.Errorf("seed task %q: %w", in.Title, err)
		}
	}
	return nil
}
