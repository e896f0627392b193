package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eslsoft/repaso/internal/app"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
)

// Standalone server entrypoint without the CLI surface, for container images
// that only ever run the API.
func main() {
	container, cleanup, err := app.Initialize()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer cleanup()

	if err := database.Migrate(container.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- container.Server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			container.Logger.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		container.Logger.Infof("received signal: %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = container.Server.Shutdown(ctx)
	}
}
