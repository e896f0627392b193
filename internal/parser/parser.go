// Package parser converts raw knowledge-base page text into typed study item
// candidates. Parsing is deterministic, performs no I/O, and never fails:
// unrecognized content degrades to untyped items or is skipped when empty.
package parser

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/repaso/internal/entity"
)

var (
	// A vocabulary separator is an equals sign or a hyphen with surrounding
	// whitespace, so hyphenated terms ("well-known") survive intact.
	pairSepRe = regexp.MustCompile(`=|\s-\s`)
	phraseRe  = regexp.MustCompile(`^["“«]\s*(.+?)\s*["”»]\s*(?:=|-)\s*(.+)$`)

	grammarPrefixes = []string{"conjugation:", "grammar:", "rule:"}
)

// candidate is an item under construction; continuation lines accumulate
// until the next pattern match or end of input closes it.
type candidate struct {
	typ   entity.ItemType
	lines []string
}

// Parse splits rawText into lines and folds them into study items. Item IDs
// are derived from the position among finalized items, not raw line numbers,
// so continuation lines never shift the IDs of later items.
func Parse(pageID, pageTitle, rawText string) []entity.StudyItem {
	var (
		items []entity.StudyItem
		open  *candidate
	)
	finalize := func() {
		if open == nil {
			return
		}
		content := strings.TrimSpace(strings.Join(open.lines, "\n"))
		if content != "" {
			items = append(items, newItem(pageID, pageTitle, len(items), open.typ, content))
		}
		open = nil
	}

	for _, raw := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if term, def, ok := splitVocabulary(line); ok {
			finalize()
			open = &candidate{typ: entity.ItemTypeVocabulary, lines: []string{term + " = " + def}}
			continue
		}
		if isGrammarLine(line) {
			finalize()
			open = &candidate{typ: entity.ItemTypeGrammar, lines: []string{line}}
			continue
		}
		if term, def, ok := splitPhrase(line); ok {
			finalize()
			open = &candidate{typ: entity.ItemTypePhrase, lines: []string{term + " = " + def}}
			continue
		}
		if open != nil {
			open.lines = append(open.lines, line)
			continue
		}
		open = &candidate{typ: entity.ItemTypeOther, lines: []string{line}}
	}
	finalize()

	return items
}

func newItem(pageID, pageTitle string, ordinal int, typ entity.ItemType, content string) entity.StudyItem {
	tags, difficulty := extractTags(content)
	return entity.StudyItem{
		ID:              entity.StudyItemID(pageID, ordinal),
		SourcePageID:    pageID,
		SourcePageTitle: pageTitle,
		Content:         content,
		Type:            typ,
		Difficulty:      difficulty,
		Tags:            tags,
		Ordinal:         int32(ordinal),
	}
}

// splitVocabulary matches "term <sep> definition" lines. Quoted lines belong
// to the phrase pattern and grammar-prefixed lines to the grammar pattern;
// matching them here would shadow those patterns entirely.
func splitVocabulary(line string) (term, def string, ok bool) {
	if startsWithQuote(line) || isGrammarLine(line) {
		return "", "", false
	}
	loc := pairSepRe.FindStringIndex(line)
	if loc == nil {
		return "", "", false
	}
	term = strings.TrimSpace(line[:loc[0]])
	def = strings.TrimSpace(line[loc[1]:])
	if term == "" || def == "" {
		return "", "", false
	}
	return term, def, true
}

func splitPhrase(line string) (term, def string, ok bool) {
	m := phraseRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	term = strings.TrimSpace(m[1])
	def = trimQuotes(strings.TrimSpace(m[2]))
	if term == "" || def == "" {
		return "", "", false
	}
	return term, def, true
}

func isGrammarLine(line string) bool {
	lower := strings.ToLower(line)
	return lo.SomeBy(grammarPrefixes, func(prefix string) bool {
		return strings.HasPrefix(lower, prefix)
	})
}

func startsWithQuote(line string) bool {
	return strings.HasPrefix(line, `"`) || strings.HasPrefix(line, "“") || strings.HasPrefix(line, "«")
}

func trimQuotes(s string) string {
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"«", "»"}} {
		if strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) && len(s) > len(pair[0])+len(pair[1]) {
			return strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
		}
	}
	return s
}
