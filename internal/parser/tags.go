package parser

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/repaso/internal/entity"
)

var hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

var difficultyKeywords = []struct {
	keywords []string
	level    entity.Difficulty
}{
	{[]string{"beginner", "básico"}, entity.DifficultyBeginner},
	{[]string{"intermediate", "intermedio"}, entity.DifficultyIntermediate},
	{[]string{"advanced", "avanzado"}, entity.DifficultyAdvanced},
}

var posKeywords = []struct {
	keywords []string
	tag      string
}{
	{[]string{"verb", "verbo"}, "verb"},
	{[]string{"noun", "sustantivo"}, "noun"},
	{[]string{"adjective", "adjetivo"}, "adjective"},
}

// extractTags scans a finalized item's content for hashtag tokens, difficulty
// keywords (English or Spanish) and part-of-speech keywords. The difficulty
// field takes the first matching level and defaults to beginner.
func extractTags(content string) ([]string, entity.Difficulty) {
	tags := []string{}
	for _, m := range hashtagRe.FindAllStringSubmatch(content, -1) {
		tags = append(tags, strings.ToLower(m[1]))
	}

	lower := strings.ToLower(content)
	difficulty := entity.DifficultyBeginner
	matched := false
	for _, dk := range difficultyKeywords {
		if containsAny(lower, dk.keywords) {
			tags = append(tags, string(dk.level))
			if !matched {
				difficulty = dk.level
				matched = true
			}
		}
	}
	for _, pk := range posKeywords {
		if containsAny(lower, pk.keywords) {
			tags = append(tags, pk.tag)
		}
	}

	return lo.Uniq(tags), difficulty
}

func containsAny(s string, keywords []string) bool {
	return lo.SomeBy(keywords, func(kw string) bool {
		return strings.Contains(s, kw)
	})
}
