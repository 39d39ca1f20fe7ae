package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kapu/hsr-banner-tracker-go/internal/app"
	"github.com/kapu/hsr-banner-tracker-go/internal/config"
	"github.com/kapu/hsr-banner-tracker-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	saveOnly := flag.Bool("save", false, "fetch once, write the cache file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	container, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	if *saveOnly {
		os.Exit(runSaveCycle(container))
	}

	runServer(container, logger)
}

func runSaveCycle(container *app.Container) int {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	payload, err := container.Tracker.Refresh(ctx)
	if err != nil {
		container.Logger.Error("Fetch-and-save cycle failed", zap.Error(err))
		fmt.Printf("failed: %v\n", err)
		return 1
	}

	fmt.Printf("saved %d banners to %s\n", len(payload.Banners), container.Store.Path())
	return 0
}

func runServer(container *app.Container, logger *zap.Logger) {
	logger.Info("HSR banner tracker starting",
		zap.Int("port", container.Config.Server.Port),
		zap.String("cache_file", container.Store.Path()))

	if container.Scheduler != nil {
		container.Scheduler.Start()
	}

	srv := container.NewServer()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("Server error", zap.Error(err))
	}

	if container.Scheduler != nil {
		container.Scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
