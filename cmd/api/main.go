package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/mailforge/mailforge/config"
	"github.com/mailforge/mailforge/internal/app"
	"github.com/mailforge/mailforge/pkg/logger"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// signalNotify is swapped in tests to deliver signals on demand
var signalNotify = signal.Notify

// NewAppFunc defines the function signature for creating a new app
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

const (
	// drainTimeout is how long in-flight sends and saves get to finish
	drainTimeout = 30 * time.Second
	// forcedExitGrace bounds the wait after a second signal
	forcedExitGrace = 2 * time.Second
)

var errForcedShutdown = errors.New("forced shutdown")

// runServer initializes the app, serves until a signal or a server error,
// then drains it. A second signal abandons the drain.
func runServer(cfg *config.Config, appLogger logger.Logger, newApp NewAppFunc, opts ...app.AppOption) error {
	appInstance := newApp(cfg, append([]app.AppOption{app.WithLogger(appLogger)}, opts...)...)

	if err := appInstance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	signals := make(chan os.Signal, 2)
	signalNotify(signals, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		appLogger.Info("Server started successfully")
		serverError <- appInstance.Start()
	}()

	select {
	case err := <-serverError:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Server error")
		}
		return err
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received - draining builder saves and campaign sends")
		return drain(appInstance, appLogger, signals)
	}
}

// drain runs the graceful shutdown, giving up when another signal arrives on signals
func drain(appInstance app.AppInterface, appLogger logger.Logger, signals <-chan os.Signal) error {
	appInstance.SetShutdownTimeout(drainTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout+5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- appInstance.Shutdown(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Error during graceful shutdown")
			return err
		}
		appLogger.Info("Server shut down gracefully")
		return nil
	case sig := <-signals:
		appLogger.WithFields(map[string]interface{}{
			"signal":          sig.String(),
			"active_requests": appInstance.GetActiveRequestCount(),
		}).Warn("Second signal received - abandoning drain")
		cancel()

		select {
		case <-done:
		case <-time.After(forcedExitGrace):
			appLogger.Warn("Shutdown did not stop in time - exiting")
		}
		return errForcedShutdown
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.WithFields(map[string]interface{}{
		"host":             cfg.Server.Host,
		"port":             cfg.Server.Port,
		"environment":      cfg.Environment,
		"send_concurrency": cfg.Send.Concurrency,
		"session_ttl":      cfg.Builder.SessionTTL.String(),
	}).Info("Starting mailforge API")

	if err := runServer(cfg, appLogger, app.NewApp); err != nil {
		osExit(1)
	}
}
