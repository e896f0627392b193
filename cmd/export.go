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
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/repaso/internal/adapter/repository"
	"github.com/eslsoft/repaso/internal/infrastructure/config"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
	"github.com/eslsoft/repaso/pkg/itemfilter"
)

const (
	exportOutputKey = "export.output"
	exportFilterKey = "export.filter"
)

// exportCmd writes the item store to an xlsx spreadsheet, optionally reduced
// by a CEL filter expression.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export study items to an xlsx spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		outputPath := viper.GetString(exportOutputKey)
		filter := viper.GetString(exportFilterKey)
		if outputPath == "" {
			outputPath = fmt.Sprintf("repaso-items-%s.xlsx", time.Now().Format("20060102-150405"))
		}

		pred, err := itemfilter.Compile(filter)
		if err != nil {
			return err
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

		items, err := repository.NewStudyItemRepository(db).List(ctx)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)
		header := []any{"content", "type", "difficulty", "tags", "page", "page_id"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}

		rowNo := 2
		for _, item := range items {
			ok, err := pred(item)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			row := []any{
				item.Content,
				string(item.Type),
				string(item.Difficulty),
				strings.Join(item.Tags, ", "),
				item.SourcePageTitle,
				item.SourcePageID,
			}
			cell := fmt.Sprintf("A%d", rowNo)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d: %w", rowNo, err)
			}
			rowNo++
		}

		if err := f.SaveAs(outputPath); err != nil {
			return fmt.Errorf("save spreadsheet: %w", err)
		}
		cmd.Printf("exported %d items to %s\n", rowNo-2, outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "output xlsx path (default: timestamped file)")
	exportCmd.Flags().String("filter", "", `CEL filter, e.g. 'item_type == "vocabulary"'`)

	bindExportConfig()
}

func bindExportConfig() {
	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportFilterKey, exportCmd.Flags().Lookup("filter"))
}
