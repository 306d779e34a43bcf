package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrazmi/taskboard/app/boardcli/commands"
	"github.com/jrazmi/taskboard/sdk/environment"
	"github.com/jrazmi/taskboard/sdk/logger"
)

var appName = "BOARDCLI"

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName, logger.WithOutput(os.Stderr), logger.WithFormat("text"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "oh no we couldn't even get logging going.")
		os.Exit(1)
	}

	if err := run(log); err != nil {
		if errors.Is(err, commands.ErrHelp) {
			return
		}
		log.Debug("command failed", "err", err)
		fmt.Fprintln(os.Stderr, commands.Message(err))
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg commands.Config
	if err := environment.ParseEnvTags(appName, &cfg); err != nil {
		return fmt.Errorf("parsing boardcli config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := commands.New(log, os.Stdout, cfg)
	cli.SetStatusOutput(os.Stderr)
	return cli.Run(ctx, os.Args[1:])
}
