package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/config"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/database"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/jobs"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/logging"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/server"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, flush, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)

	authService, err := services.NewAuthService(ctx, cfg, userRepo, profileRepo)
	if err != nil {
		return err
	}

	monitorService := services.NewMonitorService(
		repository.NewReminderRepository(db),
		profileRepo,
		repository.NewGameScoreRepository(db),
		repository.NewNotificationRepository(db),
		services.NewConnectionService(profileRepo, connectionRepo),
	)
	scheduler := jobs.NewScheduler(jobs.MonitorJobs(monitorService, cfg.MissedReminderInterval, cfg.GameActivityInterval)...)
	if err := scheduler.Start(); err != nil {
		return err
	}

	srv := server.New(db, cfg, authService)
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutting down server", "error", err)
	}
	scheduler.Stop(shutdownCtx)
	return nil
}
