package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType classifies an atomic piece of learnable content.
type ItemType string

const (
	ItemTypeVocabulary   ItemType = "vocabulary"
	ItemTypeGrammar      ItemType = "grammar"
	ItemTypePhrase       ItemType = "phrase"
	ItemTypeConversation ItemType = "conversation"
	ItemTypeOther        ItemType = "other"
)

// Difficulty grades how advanced a study item is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// itemIDNamespace seeds deterministic item identifiers. Never change it:
// re-syncing existing pages must keep producing the same IDs.
var itemIDNamespace = uuid.MustParse("8f2a1c44-9b3e-4d17-a6f0-2e51c7b8d903")

// StudyItemID derives a stable identifier from the source page and the item's
// position among the finalized items of that page.
func StudyItemID(pageID string, ordinal int) string {
	return uuid.NewSHA1(itemIDNamespace, []byte(fmt.Sprintf("%s:%d", pageID, ordinal))).String()
}

// StudyItem is one unit of learnable content extracted from a source page.
// Items are created and overwritten only by content sync; the upsert is keyed
// by the deterministic ID so repeated syncs are idempotent.
type StudyItem struct {
	ID              string
	SourcePageID    string
	SourcePageTitle string
	Content         string
	Type            ItemType
	Difficulty      Difficulty
	Tags            []string
	Ordinal         int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (si *StudyItem) Normalize(now time.Time) {
	if si.CreatedAt.IsZero() {
		si.CreatedAt = now
	}
	si.UpdatedAt = now
	if si.Type == "" {
		si.Type = ItemTypeOther
	}
	if si.Difficulty == "" {
		si.Difficulty = DifficultyBeginner
	}
	if si.Tags == nil {
		si.Tags = []string{}
	}
}

// ParseItemType converts an arbitrary string into a supported ItemType value.
func ParseItemType(s string) ItemType {
	switch ItemType(s) {
	case ItemTypeVocabulary, ItemTypeGrammar, ItemTypePhrase, ItemTypeConversation, ItemTypeOther:
		return ItemType(s)
	default:
		return ItemTypeOther
	}
}

// ParseDifficulty converts an arbitrary string into a supported Difficulty value.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return Difficulty(s)
	default:
		return DifficultyBeginner
	}
}
