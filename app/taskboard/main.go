package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/crypto/bcrypt"

	"github.com/jrazmi/taskboard/app/taskboard/api"
	"github.com/jrazmi/taskboard/app/taskboard/config"
	"github.com/jrazmi/taskboard/bridge/scaffolding/mid"
	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/core/repositories/backends"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/core/repositories/usersrepo"
	"github.com/jrazmi/taskboard/core/seed"
	"github.com/jrazmi/taskboard/infrastructure/web"
	"github.com/jrazmi/taskboard/sdk/environment"
	"github.com/jrazmi/taskboard/sdk/logger"
	"github.com/jrazmi/taskboard/sdk/telemetry"
)

var build = "develop"
var appName = "TASKBOARD"

func main() {
	environment.LoadEnv()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName,
		logger.WithService(appName),
		logger.WithTraceIDFn(tel.GetTraceID),
	)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	settings, err := config.LoadSettings(appName)
	if err != nil {
		return err
	}

	// STORES
	// ==============================================================================
	stores, err := backends.Open(ctx, log, appName, settings.Store)
	if err != nil {
		return fmt.Errorf("opening stores: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing stores", "driver", stores.Driver)
		stores.Close()
	}()
	log.InfoContext(ctx, "init", "service", "stores", "driver", stores.Driver)

	// REPOSITORIES
	// ==============================================================================
	cost := settings.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	repos := config.Repositories{
		Tasks: tasksrepo.NewRepository(log, stores.Tasks),
		Users: usersrepo.NewRepository(log, stores.Users, usersrepo.WithBcryptCost(cost)),
	}

	if settings.Seed {
		if err := seed.Apply(ctx, repos.Tasks, repos.Users); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		log.InfoContext(ctx, "init", "service", "seed", "demo_user", seed.DemoEmail)
	}

	strategy, err := auth.New(settings.Auth)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	log.InfoContext(ctx, "init", "service", "auth", "strategy", settings.Auth.Strategy)

	// WEB
	// ==============================================================================
	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	siteCfg := config.Taskboard{
		Build:        build,
		APIPrefix:    webCfg.APIPrefix,
		EnableDebug:  webCfg.EnableDebug,
		Logger:       log,
		Telemetry:    tel,
		Auth:         strategy,
		Repositories: repos,
	}

	handler, err := webHandler(siteCfg)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server := web.NewServer(webCfg,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		if err := server.ShutdownGracefully(ctx); err != nil {
			return err
		}
	}

	return nil
}

func webHandler(cfg config.Taskboard) (http.Handler, error) {
	wh, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	api.AddHandlers(wh, cfg)
	return wh, nil
}
