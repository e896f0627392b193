// Package quiz turns study items into quiz questions. Questions are derived
// on demand and never persisted.
package quiz

import (
	"fmt"
	"strings"

	"github.com/eslsoft/repaso/internal/entity"
)

// Generate builds a question for the item based on its type. Malformed
// content never fails generation: anything that cannot be split into a
// prompt/answer pair degrades to a definition-recall question, so the answer
// is always non-empty.
func Generate(item entity.StudyItem) entity.QuizQuestion {
	q := entity.QuizQuestion{
		ItemID:      item.ID,
		Type:        item.Type,
		Explanation: explanation(item),
	}

	switch item.Type {
	case entity.ItemTypeVocabulary:
		if term, def, ok := splitContent(item.Content); ok {
			q.Question = fmt.Sprintf("Translate: %q", term)
			q.Answer = def
			return q
		}
	case entity.ItemTypePhrase:
		if term, def, ok := splitContent(item.Content); ok {
			q.Question = fmt.Sprintf("What does this phrase mean? %q", term)
			q.Answer = def
			return q
		}
	}

	q.Question = fmt.Sprintf("Study this content: %q", item.Content)
	q.Answer = item.Content
	return q
}

// splitContent splits "{term} = {definition}" content; it only succeeds on
// exactly two non-empty parts.
func splitContent(content string) (term, def string, ok bool) {
	parts := strings.Split(content, "=")
	if len(parts) != 2 {
		return "", "", false
	}
	term = strings.TrimSpace(parts[0])
	def = strings.TrimSpace(parts[1])
	if term == "" || def == "" {
		return "", "", false
	}
	return term, def, true
}

func explanation(item entity.StudyItem) string {
	if item.SourcePageTitle == "" {
		return item.Content
	}
	return fmt.Sprintf("%s (source: %s)", item.Content, item.SourcePageTitle)
}
