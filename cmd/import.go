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
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/repaso/internal/adapter/repository"
	"github.com/eslsoft/repaso/internal/infrastructure/config"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
)

const (
	importInputKey = "import.input"
	importSheetKey = "import.sheet"
	importPageKey  = "import.page_id"
	importTitleKey = "import.page_title"
)

// importCmd bulk-loads study items from a spreadsheet. Expected columns:
// content, type, difficulty, tags (comma separated). The first row is treated
// as a header and skipped.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import study items from an xlsx spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inputPath := viper.GetString(importInputKey)
		sheet := viper.GetString(importSheetKey)
		pageID := viper.GetString(importPageKey)
		pageTitle := viper.GetString(importTitleKey)
		if inputPath == "" {
			return fmt.Errorf("--input is required")
		}
		if pageID == "" {
			pageID = "import:" + filepath.Base(inputPath)
		}
		if pageTitle == "" {
			pageTitle = filepath.Base(inputPath)
		}

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

		f, err := excelize.OpenFile(filepath.Clean(inputPath))
		if err != nil {
			return fmt.Errorf("open spreadsheet: %w", err)
		}
		defer f.Close()
		if sheet == "" {
			sheet = f.GetSheetName(0)
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		repo := repository.NewStudyItemRepository(db)
		now := time.Now()
		imported := 0
		skipped := 0
		for i, cells := range rows {
			if i == 0 {
				continue
			}
			item, ok := importRowToItem(cells, pageID, pageTitle, int32(imported))
			if !ok {
				skipped++
				continue
			}
			item.Normalize(now)
			if _, err := repo.Upsert(ctx, &item); err != nil {
				return fmt.Errorf("store row %d: %w", i+1, err)
			}
			imported++
		}

		cmd.Printf("imported %d items (%d rows skipped)\n", imported, skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "path to the xlsx file")
	importCmd.Flags().String("sheet", "", "sheet name (default: first sheet)")
	importCmd.Flags().String("page-id", "", "source page id recorded on the imported items")
	importCmd.Flags().String("page-title", "", "source page title recorded on the imported items")

	bindImportConfig()
}

func bindImportConfig() {
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importSheetKey, importCmd.Flags().Lookup("sheet"))
	bindFlagToViper(importPageKey, importCmd.Flags().Lookup("page-id"))
	bindFlagToViper(importTitleKey, importCmd.Flags().Lookup("page-title"))
}
