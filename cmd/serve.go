/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/eslsoft/repaso/internal/app"
	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()
		logger := container.Logger

		if err := database.Migrate(container.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		// Periodic background sync, disabled when interval is 0.
		var scheduler *gocron.Scheduler
		if interval := container.Config.Sync.IntervalMinutes; interval > 0 {
			scheduler = gocron.NewScheduler(time.UTC)
			userID := container.Config.Sync.UserID
			_, err := scheduler.Every(interval).Minutes().Do(func() {
				result, err := container.Sync.Sync(context.Background(), userID)
				if err != nil {
					if errors.Is(err, entity.ErrSyncInProgress) {
						logger.Debug("background sync skipped, previous run still active")
						return
					}
					logger.WithError(err).Error("background sync failed")
					return
				}
				logger.Infof("background sync: %d items, %d page errors",
					result.SyncedCount, len(result.Errors))
			})
			if err != nil {
				return fmt.Errorf("schedule background sync: %w", err)
			}
			scheduler.StartAsync()
			defer scheduler.Stop()
		}

		errCh := make(chan error, 1)
		go func() { errCh <- container.Server.Start() }()

		// Graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = container.Server.Shutdown(ctx)
			return nil
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
