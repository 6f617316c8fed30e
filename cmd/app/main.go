package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/SpinVault_Go/internal/bootstrap"
	"github.com/osse101/SpinVault_Go/internal/config"
	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/handler"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/scheduler"
	"github.com/osse101/SpinVault_Go/internal/server"
	"github.com/osse101/SpinVault_Go/internal/sse"
	"github.com/osse101/SpinVault_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Replaced by SetupLogger once the config is loaded
	logger.InitLogger(logger.ForEnvironment(os.Getenv("ENVIRONMENT")))

	if err := run(); err != nil {
		slog.Error("SpinVault exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg, loggerConfig(cfg))
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		ApplicationName: cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	txManager, err := database.NewTxManager(dbPool)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	svcs, err := bootstrap.InitializeServices(cfg, repos, txManager, publisher)
	if err != nil {
		return err
	}

	feedHub := sse.NewHub()
	feedHub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLogService: svcs.EventLog,
		FeedHub:         feedHub,
	}); err != nil {
		return err
	}

	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueue)
	workerPool.Start(ctx)
	sched := scheduler.New(workerPool)
	bootstrap.ScheduleJobs(sched, cfg.Spin.Jobs, repos, svcs, publisher)
	sched.Start(ctx)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, dbPool, server.Handlers{
		Spins:     handler.NewSpinHandler(svcs.Spins),
		Scans:     handler.NewScanHandler(svcs.Sessions),
		Players:   handler.NewPlayerHandler(svcs.Ledger),
		Campaigns: handler.NewCampaignHandler(svcs.Campaigns),
		Events:    handler.NewEventLogHandler(svcs.EventLog),
		Feed:      handler.NewFeedHandler(feedHub),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		FeedHub:            feedHub,
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         workerPool,
		ResilientPublisher: publisher,
	})

	return runErr
}
