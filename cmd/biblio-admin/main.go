package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/openshelf/biblio-admin/config"
	"github.com/openshelf/biblio-admin/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.Observability)

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the library API and persist the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Clear the persisted session",
			run:         runLogout,
		},
		"register": {
			name:        "register",
			description: "Create a new account (does not log in)",
			run:         runRegister,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the authenticated user profile",
			run:         runWhoami,
		},
		"books": {
			name:        "books",
			description: "List or inspect catalog books",
			run:         runBooks,
		},
		"authors": {
			name:        "authors",
			description: "List or inspect authors",
			run:         runAuthors,
		},
		"categories": {
			name:        "categories",
			description: "List or inspect categories",
			run:         runCategories,
		},
		"loans": {
			name:        "loans",
			description: "List loans, or return/renew one",
			run:         runLoans,
		},
		"users": {
			name:        "users",
			description: "List or inspect user accounts",
			run:         runUsers,
		},
		"dashboard": {
			name:        "dashboard",
			description: "Show library statistics and recent activity",
			run:         runDashboard,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: biblio-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
