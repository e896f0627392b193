package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/repository"
)

var testClock = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newStudyFixture(t *testing.T) (*studyUsecase, *fakeItemRepo, *fakeReviewRepo) {
	t.Helper()
	reviews := newFakeReviewRepo()
	items := newFakeItemRepo(reviews)
	uc := NewStudyUsecase(items, reviews).(*studyUsecase)
	uc.clock = func() time.Time { return testClock }
	return uc, items, reviews
}

func mustAddItem(t *testing.T, items *fakeItemRepo, id, content string, typ entity.ItemType) {
	t.Helper()
	_, err := items.Upsert(context.Background(), &entity.StudyItem{
		ID:              id,
		SourcePageID:    "page-1",
		SourcePageTitle: "Spanish Vocabulary",
		Content:         content,
		Type:            typ,
		Difficulty:      entity.DifficultyBeginner,
	})
	require.NoError(t, err)
}

func mustPutState(t *testing.T, reviews *fakeReviewRepo, itemID string, nextReview time.Time) {
	t.Helper()
	_, err := reviews.Put(context.Background(), &entity.ReviewState{
		UserID:       1,
		ItemID:       itemID,
		IntervalDays: 1,
		EaseFactor:   2.5,
		NextReview:   nextReview,
	})
	require.NoError(t, err)
}

func TestNextQuestionPrefersEarliestDue(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)
	mustAddItem(t, items, "item-b", "gato = cat", entity.ItemTypeVocabulary)
	mustPutState(t, reviews, "item-a", testClock.Add(-time.Hour))
	mustPutState(t, reviews, "item-b", testClock.Add(-48*time.Hour))

	q, err := uc.NextQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "item-b", q.ItemID)
	assert.Equal(t, `Translate: "gato"`, q.Question)
}

func TestNextQuestionFallsBackToFreshItem(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)
	mustAddItem(t, items, "item-b", "gato = cat", entity.ItemTypeVocabulary)
	mustPutState(t, reviews, "item-a", testClock.Add(24*time.Hour))

	q, err := uc.NextQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "item-b", q.ItemID)
}

func TestNextQuestionNothingAvailable(t *testing.T) {
	uc, _, _ := newStudyFixture(t)

	q, err := uc.NextQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestionSkipsStateOfDroppedItem(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-b", "gato = cat", entity.ItemTypeVocabulary)
	// item-a's state survived a re-sync that removed the item itself.
	mustPutState(t, reviews, "item-a", testClock.Add(-time.Hour))

	q, err := uc.NextQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "item-b", q.ItemID)
}

func TestNextQuestionRejectsInvalidUser(t *testing.T) {
	uc, _, _ := newStudyFixture(t)

	_, err := uc.NextQuestion(context.Background(), 0)
	assert.ErrorIs(t, err, entity.ErrInvalidUserID)
}

func TestSubmitAnswerCreatesStateOnFirstReview(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)

	result, err := uc.SubmitAnswer(context.Background(), 1, "item-a", "  DOG ")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "dog", result.CorrectAnswer)

	state, err := reviews.Get(context.Background(), 1, "item-a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), state.CorrectCount)
	assert.Equal(t, int32(1), state.Streak)
	assert.Equal(t, int32(1), state.IntervalDays)
	assert.InDelta(t, 2.6, state.EaseFactor, 1e-9)
	assert.Equal(t, testClock, state.LastReviewed)
	assert.Equal(t, testClock.AddDate(0, 0, 1), state.NextReview)
}

func TestSubmitAnswerScheduleProgression(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)

	wantIntervals := []int32{1, 6, 16}
	for i, want := range wantIntervals {
		result, err := uc.SubmitAnswer(context.Background(), 1, "item-a", "dog")
		require.NoError(t, err)
		require.True(t, result.Correct)

		state, err := reviews.Get(context.Background(), 1, "item-a")
		require.NoError(t, err)
		assert.Equal(t, int32(i+1), state.Streak)
		assert.Equal(t, want, state.IntervalDays)
		assert.Equal(t, testClock.AddDate(0, 0, int(want)), state.NextReview)
	}

	state, err := reviews.Get(context.Background(), 1, "item-a")
	require.NoError(t, err)
	assert.InDelta(t, 2.8, state.EaseFactor, 1e-9)
	assert.Equal(t, int32(3), state.CorrectCount)
}

func TestSubmitAnswerIncorrectResetsStreak(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)

	_, err := uc.SubmitAnswer(context.Background(), 1, "item-a", "dog")
	require.NoError(t, err)

	result, err := uc.SubmitAnswer(context.Background(), 1, "item-a", "cat")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "dog", result.CorrectAnswer)

	state, err := reviews.Get(context.Background(), 1, "item-a")
	require.NoError(t, err)
	assert.Equal(t, int32(0), state.Streak)
	assert.Equal(t, int32(1), state.IntervalDays)
	assert.Equal(t, int32(1), state.IncorrectCount)
	assert.InDelta(t, 2.4, state.EaseFactor, 1e-9)
}

func TestSubmitAnswerRetriesOnceOnConflict(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)
	reviews.putErrs = []error{entity.ErrReviewConflict}

	result, err := uc.SubmitAnswer(context.Background(), 1, "item-a", "dog")
	require.NoError(t, err)
	assert.True(t, result.Correct)

	state, err := reviews.Get(context.Background(), 1, "item-a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), state.CorrectCount)
}

func TestSubmitAnswerGivesUpOnRepeatedConflict(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)
	reviews.putErrs = []error{entity.ErrReviewConflict, entity.ErrReviewConflict}

	_, err := uc.SubmitAnswer(context.Background(), 1, "item-a", "dog")
	assert.ErrorIs(t, err, entity.ErrReviewConflict)
}

func TestSubmitAnswerUnknownItem(t *testing.T) {
	uc, _, _ := newStudyFixture(t)

	_, err := uc.SubmitAnswer(context.Background(), 1, "missing", "dog")
	assert.ErrorIs(t, err, entity.ErrItemNotFound)
}

func TestGetStatsAggregatesReviewedItems(t *testing.T) {
	uc, items, reviews := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)
	mustAddItem(t, items, "item-b", "gato = cat", entity.ItemTypeVocabulary)
	mustAddItem(t, items, "item-c", "casa = house", entity.ItemTypeVocabulary)

	_, err := reviews.Put(context.Background(), &entity.ReviewState{
		UserID: 1, ItemID: "item-a",
		CorrectCount: 2, IncorrectCount: 1, Streak: 2,
		IntervalDays: 6, EaseFactor: 2.6,
		NextReview: testClock.Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = reviews.Put(context.Background(), &entity.ReviewState{
		UserID: 1, ItemID: "item-b",
		CorrectCount: 4, Streak: 4,
		IntervalDays: 16, EaseFactor: 2.9,
		NextReview: testClock.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	stats, err := uc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(2), stats.ReviewedItems)
	// 6 correct of 7 answers, rounded to the nearest percent.
	assert.Equal(t, int32(86), stats.CorrectRate)
	assert.Equal(t, int32(4), stats.MaxStreak)
	assert.Equal(t, int64(1), stats.DueForReview)
}

func TestGetStatsWithoutAnswers(t *testing.T) {
	uc, items, _ := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)

	stats, err := uc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalItems)
	assert.Equal(t, int64(0), stats.ReviewedItems)
	assert.Equal(t, int32(0), stats.CorrectRate)
	assert.Equal(t, int32(0), stats.MaxStreak)
	assert.Equal(t, int64(0), stats.DueForReview)
}

func TestListItemsAppliesFilterAndPagination(t *testing.T) {
	uc, items, _ := newStudyFixture(t)
	mustAddItem(t, items, "item-a", "perro = dog", entity.ItemTypeVocabulary)
	mustAddItem(t, items, "item-b", "conjugation: hablar -> hablo", entity.ItemTypeGrammar)
	mustAddItem(t, items, "item-c", "gato = cat", entity.ItemTypeVocabulary)

	got, total, err := uc.ListItems(context.Background(), &repository.ListItemsQuery{
		FilterOrder: repository.FilterOrder{Filter: `item_type == "vocabulary"`},
		Pagination:  repository.Pagination{PageNo: 1, PageSize: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 1)
	assert.Equal(t, "item-a", got[0].ID)

	got, total, err = uc.ListItems(context.Background(), &repository.ListItemsQuery{
		FilterOrder: repository.FilterOrder{Filter: `item_type == "vocabulary"`},
		Pagination:  repository.Pagination{PageNo: 2, PageSize: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 1)
	assert.Equal(t, "item-c", got[0].ID)
}

func TestListItemsRejectsBadFilter(t *testing.T) {
	uc, _, _ := newStudyFixture(t)

	_, _, err := uc.ListItems(context.Background(), &repository.ListItemsQuery{
		FilterOrder: repository.FilterOrder{Filter: `owner == "me"`},
	})
	assert.Error(t, err)
}
