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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/repaso/internal/app"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
)

// syncCmd runs one content sync against the knowledge base and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch study pages from the knowledge base once",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()
		if err := database.Migrate(container.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		if userID == 0 {
			userID = container.Config.Sync.UserID
		}
		result, err := container.Sync.Sync(cmd.Context(), userID)
		if err != nil {
			return err
		}

		cmd.Printf("synced %d items\n", result.SyncedCount)
		for _, msg := range result.Errors {
			cmd.Printf("page error: %s\n", msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Int64("user", 0, "user id to sync for (default: sync.user_id from config)")
}
