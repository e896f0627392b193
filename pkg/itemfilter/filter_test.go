package itemfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/repaso/internal/entity"
)

var sample = entity.StudyItem{
	Content:         "perro = dog",
	Type:            entity.ItemTypeVocabulary,
	Difficulty:      entity.DifficultyBeginner,
	SourcePageTitle: "Spanish Animals",
	Tags:            []string{"noun", "beginner"},
}

func TestCompileEmptyMatchesEverything(t *testing.T) {
	pred, err := Compile("  ")
	require.NoError(t, err)

	ok, err := pred(sample)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileFieldExpressions(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`item_type == "vocabulary"`, true},
		{`item_type == "grammar"`, false},
		{`"noun" in tags`, true},
		{`"verb" in tags`, false},
		{`content.contains("perro")`, true},
		{`difficulty == "beginner" && page.startsWith("Spanish")`, true},
		{`difficulty == "advanced" || "beginner" in tags`, true},
	}
	for _, tc := range cases {
		pred, err := Compile(tc.expr)
		require.NoErrorf(t, err, "expr %q", tc.expr)
		ok, err := pred(sample)
		require.NoErrorf(t, err, "expr %q", tc.expr)
		assert.Equalf(t, tc.want, ok, "expr %q", tc.expr)
	}
}

func TestCompileRejectsUnknownField(t *testing.T) {
	_, err := Compile(`owner == "me"`)
	assert.Error(t, err)
}

func TestCompileRejectsNonBoolean(t *testing.T) {
	_, err := Compile(`content`)
	assert.Error(t, err)
}

func TestCompileRejectsMalformedExpression(t *testing.T) {
	_, err := Compile(`item_type == `)
	assert.Error(t, err)
}
