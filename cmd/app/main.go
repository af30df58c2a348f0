package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"connectfood/cmd"
	"connectfood/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
)

const serviceName = "connectfood"

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := newLogger(config)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config cmd.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, config.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, config, logger)
	if err != nil {
		return err
	}

	router, err := app.NewRouter(ctx)
	if err != nil {
		return errors.Join(err, app.Close(context.Background()))
	}

	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	var dispatching sync.WaitGroup
	dispatching.Add(1)
	go func() {
		defer dispatching.Done()
		app.Dispatcher().Run(dispatchCtx)
	}()

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		stopDispatch()
		dispatching.Wait()
		return errors.Join(fmt.Errorf("start jobs: %w", err), app.Close(context.Background()))
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "port", config.HTTPPort)
		serveErr <- router.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown requested")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	var shutdownErrs []error
	if err := router.Shutdown(shutdownCtx); err != nil {
		shutdownErrs = append(shutdownErrs, fmt.Errorf("http shutdown: %w", err))
	}
	jobManager.StopAll()
	stopDispatch()
	dispatching.Wait()
	shutdownErrs = append(shutdownErrs, app.Close(shutdownCtx), shutdownTracing(shutdownCtx))

	return errors.Join(runErr, errors.Join(shutdownErrs...))
}

func newLogger(config cmd.Config) *slog.Logger {
	level, _ := config.SlogLevel()
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
