package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/repaso/internal/entity"
)

// importRowToItem maps one spreadsheet row to a study item. Rows without
// content are skipped.
func importRowToItem(cells []string, pageID, pageTitle string, ordinal int32) (entity.StudyItem, bool) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	content := cell(0)
	if content == "" {
		return entity.StudyItem{}, false
	}
	return entity.StudyItem{
		ID:              entity.StudyItemID(pageID, int(ordinal)),
		SourcePageID:    pageID,
		SourcePageTitle: pageTitle,
		Content:         content,
		Type:            entity.ParseItemType(cell(1)),
		Difficulty:      entity.ParseDifficulty(cell(2)),
		Tags:            splitTags(cell(3)),
		Ordinal:         ordinal,
	}, true
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		result = append(result, strings.ToLower(tag))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}
