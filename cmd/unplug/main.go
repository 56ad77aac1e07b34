package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/drossen/unplug/internal/cli"
	"github.com/drossen/unplug/internal/focus"
	"github.com/drossen/unplug/internal/notify"
	"github.com/drossen/unplug/internal/reinforce"
	"github.com/drossen/unplug/internal/store"
	"github.com/drossen/unplug/internal/usage"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine store path: env var or default ~/.unplug/unplug.db
	dbPath := os.Getenv("UNPLUG_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".unplug", "unplug.db")
	}

	st, err := store.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	// UNPLUG_LOG=1 turns on engine logging to stderr.
	logWriter := io.Discard
	if os.Getenv("UNPLUG_LOG") != "" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// The deferred-notification scheduler is an OS collaborator; without
	// one, requests surface as log lines.
	var scheduler notify.Scheduler = notify.NoopScheduler{}
	if os.Getenv("UNPLUG_LOG") != "" {
		scheduler = notify.NewLogScheduler(os.Stderr)
	}

	manager := focus.New(st, scheduler, focus.WithLogger(logger))
	defer manager.Stop()
	tracker := usage.New(st, usage.WithLogger(logger))

	trigger := reinforce.New(tracker, reinforce.NewLogCelebrator(os.Stdout))
	trigger.Bind(manager, tracker)

	app := &cli.App{
		Focus: manager,
		Usage: tracker,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
