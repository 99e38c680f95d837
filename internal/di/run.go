package di

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/di/providers"
	"github.com/listenupapp/linkstash/internal/logger"
)

// Run builds the container from args, serves until SIGINT or SIGTERM and
// then shuts everything down.
func Run(args []string) error {
	// Create DI container
	injector := NewContainer(args)

	// Bootstrap all services
	if err := Bootstrap(injector); err != nil {
		_ = injector.Shutdown()
		return err
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)
	srv := do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Wait for a shutdown signal or for the server to die on its own
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Info("Shutting down server gracefully...", "signal", sig.String())
	case err := <-srv.Err():
		_ = injector.Shutdown()
		return fmt.Errorf("serve: %w", err)
	}

	// The container shuts services down in reverse dependency order:
	// the HTTP server drains before the store closes.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
		return fmt.Errorf("shutdown: %v", err)
	}

	log.Info("Server stopped")
	return nil
}
