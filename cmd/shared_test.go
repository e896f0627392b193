package cmd

import (
	"testing"

	"github.com/eslsoft/repaso/internal/entity"
)

func Test_importRowToItem(t *testing.T) {
	item, ok := importRowToItem(
		[]string{"perro = dog", "vocabulary", "beginner", "Noun, Animal"},
		"import:words.xlsx", "words.xlsx", 0,
	)
	if !ok {
		t.Fatal("expected row to map to an item")
	}
	if item.ID != entity.StudyItemID("import:words.xlsx", 0) {
		t.Fatalf("unexpected id: %s", item.ID)
	}
	if item.Type != entity.ItemTypeVocabulary || item.Difficulty != entity.DifficultyBeginner {
		t.Fatalf("bad classification: %s/%s", item.Type, item.Difficulty)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "noun" || item.Tags[1] != "animal" {
		t.Fatalf("bad tags: %v", item.Tags)
	}
}

func Test_importRowToItem_defaults(t *testing.T) {
	item, ok := importRowToItem([]string{"hablar = to speak"}, "p", "P", 3)
	if !ok {
		t.Fatal("expected row to map to an item")
	}
	if item.Type != entity.ItemTypeOther {
		t.Fatalf("expected other type, got %s", item.Type)
	}
	if item.Difficulty != entity.DifficultyBeginner {
		t.Fatalf("expected beginner difficulty, got %s", item.Difficulty)
	}
	if item.Ordinal != 3 {
		t.Fatalf("expected ordinal 3, got %d", item.Ordinal)
	}
}

func Test_importRowToItem_skipsEmptyRows(t *testing.T) {
	if _, ok := importRowToItem([]string{"   "}, "p", "P", 0); ok {
		t.Fatal("blank content row must be skipped")
	}
	if _, ok := importRowToItem(nil, "p", "P", 0); ok {
		t.Fatal("empty row must be skipped")
	}
}

func Test_splitTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ", nil},
		{"verb", []string{"verb"}},
		{"Verb, Grammar ,", []string{"verb", "grammar"}},
	}
	for _, c := range cases {
		got := splitTags(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}
