package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/complyops/task-assigner/internal/config"
	"github.com/complyops/task-assigner/internal/notifier"
	"github.com/complyops/task-assigner/internal/repository/postgres"
	"github.com/complyops/task-assigner/internal/service"
	myhttp "github.com/complyops/task-assigner/internal/transport/http"
	"github.com/complyops/task-assigner/pkg/logger/slogpretty"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Best effort: the .env file only exists in local setups.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting task-assigner", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", slog.String("error", err.Error()))
		}
	}()

	teamRepo := postgres.NewTeamRepository(db.DB(), log)
	taskRepo := postgres.NewTaskRepository(db.DB(), log)
	assignmentRepo := postgres.NewAssignmentRepository(db.DB(), log)

	dispatcher := notifier.NewDispatcher(log, notifier.NewLogSink(log), cfg.Notifier)
	defer dispatcher.Close()

	assignmentService := service.NewAssignmentService(db.DB(), log, teamRepo, taskRepo, assignmentRepo, dispatcher)
	taskService := service.NewTaskService(db.DB(), log, taskRepo, assignmentService)
	teamService := service.NewTeamService(teamRepo)

	srv := myhttp.NewServer(log, teamService, taskService, assignmentService)
	httpServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:     srv.Routes(),
		ReadTimeout: cfg.Server.Timeout,
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %w", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}
