package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/engine"
	"github.com/andrescamacho/carrierplus-go/internal/adapters/grpc"
	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/config"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/database"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/logging"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/pidfile"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	migrateFlag := flag.Bool("migrate", false, "Create or update tables before starting")
	flag.Parse()

	cfg := config.MustLoadConfig(*configFlag)

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pf := pidfile.New(cfg.Scheduler.PIDFile)
	if err := pf.Acquire(); err != nil {
		logger.Error("failed to acquire PID file", "path", cfg.Scheduler.PIDFile, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Warn("failed to release PID file", "error", err)
		}
	}()

	if err := run(cfg, logger, *migrateFlag); err != nil {
		logger.Error("daemon stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.ZapLogger, migrate bool) error {
	logger.Info("connecting to database", "type", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if migrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migrated")
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("Healthy"))
		})
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	eng, err := engine.New(cfg, db, logger, shared.NewRealClock())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if metricsServer != nil {
		go func() {
			logger.Info("serving metrics", "addr", metricsServer.Addr, "path", cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	for _, job := range eng.Jobs() {
		logger.Info("job scheduled", "job", job.Name, "interval", job.Interval.String())
	}

	daemonServer, err := grpc.NewDaemonServer(eng, cfg.Scheduler.SocketPath, logger)
	if err != nil {
		_ = eng.Stop(context.Background())
		return err
	}
	go func() {
		if err := daemonServer.Serve(); err != nil {
			logger.Error("daemon socket failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received signal, shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Scheduler.ShutdownTimeout)
	defer shutdownCancel()

	daemonServer.Shutdown(shutdownCtx)
	stopErr := eng.Stop(shutdownCtx)
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown error", "error", err)
		}
	}
	if stopErr != nil {
		return fmt.Errorf("engine did not stop cleanly: %w", stopErr)
	}

	logger.Info("daemon stopped")
	return nil
}
