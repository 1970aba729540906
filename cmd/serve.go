package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alphawork/alphawork/internal/config"
	"github.com/alphawork/alphawork/internal/infrastructure/sqlite"
	"github.com/alphawork/alphawork/internal/log"
	"github.com/alphawork/alphawork/internal/server"
	"github.com/alphawork/alphawork/internal/tracing"
	"github.com/alphawork/alphawork/internal/tracker/application"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.ErrorErr(log.CatTracing, "Tracing shutdown failed", err)
		}
	}()

	db, err := sqlite.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	srv := server.New(cfg.Server.Addr, buildServices(db.Store(), cfg))

	// Log level follows config file edits without a restart.
	if cfgPath != "" {
		if err := config.Watch(cfgPath, func(updated config.Config) {
			log.SetLevel(updated.LogLevel)
		}); err != nil {
			log.Warn(log.CatConfig, "Config watch unavailable", "error", err.Error())
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(log.CatHTTP, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildServices(store application.Store, cfg config.Config) server.Services {
	recorder := application.NewAuditRecorder(cfg.Audit.SnapshotMaxBytes)
	return server.Services{
		Directory: application.NewDirectoryService(store, recorder),
		Projects:  application.NewProjectService(store, recorder),
		Boards:    application.NewBoardService(store, recorder),
		Sprints:   application.NewSprintService(store, recorder),
		Issues:    application.NewIssueService(store, recorder),
		TimeLogs:  application.NewTimeLogService(store, recorder),
		Query:     application.NewQueryService(store),
		Audit:     application.NewAuditService(store),
	}
}
