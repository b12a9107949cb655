package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/flashbox/internal/app"
	"github.com/alexanderramin/flashbox/internal/cli"
	"github.com/alexanderramin/flashbox/internal/config"
	"github.com/alexanderramin/flashbox/internal/db"
	"github.com/alexanderramin/flashbox/internal/repository"
	"github.com/mattn/go-isatty"
)

// shutdownTimeout bounds how long exit waits for in-flight reports.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog := cfg.NewLogger()
	defer closeLog.Close()

	deps := app.Deps{Logger: logger}

	// Progress survives without a database; it just won't persist.
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		logger.Warn("database_unavailable", "path", cfg.DBPath, "error", err)
		deps.KV = repository.NewMemoryKVRepo()
	} else {
		defer database.Close()
		deps.KV = repository.NewSQLiteKVRepo(database)
		deps.Reports = repository.NewSQLiteReportRepo(database)
		deps.UoW = db.NewSQLiteUnitOfWork(database)
	}

	ctx := context.Background()
	state := app.New(cfg, deps)
	state.Load(ctx)

	a := &cli.App{
		State: state,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	runErr := cli.NewRootCmd(a).ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	state.Shutdown(shutdownCtx)

	return runErr
}
