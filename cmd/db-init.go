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
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/repaso/internal/adapter/repository"
	"github.com/eslsoft/repaso/internal/infrastructure/config"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
	"github.com/eslsoft/repaso/internal/parser"
)

// dbInitCmd creates the database schema, optionally seeding a sample page for
// a quick local start.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetBool("seed")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		cmd.Println("schema ready")

		if !seed {
			return nil
		}
		items := parser.Parse("sample-page", "Sample Spanish Notes", sampleNotes)
		repo := repository.NewStudyItemRepository(db)
		now := time.Now()
		for _, item := range items {
			item.Normalize(now)
			if _, err := repo.Upsert(cmd.Context(), &item); err != nil {
				return fmt.Errorf("seed item %q: %w", item.Content, err)
			}
		}
		cmd.Printf("seeded %d sample items\n", len(items))
		return nil
	},
}

var sampleNotes = `# Sample Spanish Notes
perro = dog #noun #beginner
gato = cat #noun #beginner
conjugation: hablar -> hablo, hablas, habla
"¿Cómo estás?" = How are you?
biblioteca = library #noun #intermediate`

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("seed", false, "seed a sample page of study items after migrating")
}
