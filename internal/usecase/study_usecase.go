package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/quiz"
	"github.com/eslsoft/repaso/internal/repository"
	"github.com/eslsoft/repaso/internal/srs"
	"github.com/eslsoft/repaso/pkg/itemfilter"
)

const defaultPageSize = 50

// StudyUsecase encapsulates the quiz and progress operations exposed to the
// service layer.
type StudyUsecase interface {
	// NextQuestion returns the question for the earliest-due item, falling
	// back to a never-reviewed item. A nil question with a nil error means
	// nothing is available to review; callers must not treat it as a fault.
	NextQuestion(ctx context.Context, userID int64) (*entity.QuizQuestion, error)
	SubmitAnswer(ctx context.Context, userID int64, itemID, answer string) (*entity.AnswerResult, error)
	GetStats(ctx context.Context, userID int64) (*entity.ProgressStats, error)
	ListItems(ctx context.Context, query *repository.ListItemsQuery) ([]entity.StudyItem, int64, error)
}

// NewStudyUsecase wires the repositories with default behaviour.
func NewStudyUsecase(items repository.StudyItemRepository, reviews repository.ReviewStateRepository) StudyUsecase {
	return &studyUsecase{
		items:   items,
		reviews: reviews,
		clock:   time.Now,
	}
}

type studyUsecase struct {
	items   repository.StudyItemRepository
	reviews repository.ReviewStateRepository
	clock   func() time.Time
}

func (u *studyUsecase) NextQuestion(ctx context.Context, userID int64) (*entity.QuizQuestion, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}

	due, err := u.reviews.ListDue(ctx, userID, u.clock())
	if err != nil {
		return nil, err
	}
	for _, state := range due {
		item, err := u.items.Get(ctx, state.ItemID)
		if errors.Is(err, entity.ErrItemNotFound) {
			// The item was dropped by a re-sync after this state was written.
			continue
		}
		if err != nil {
			return nil, err
		}
		q := quiz.Generate(*item)
		return &q, nil
	}

	fresh, err := u.items.ListWithoutReviewState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 {
		return nil, nil
	}
	q := quiz.Generate(fresh[0])
	return &q, nil
}

func (u *studyUsecase) SubmitAnswer(ctx context.Context, userID int64, itemID, answer string) (*entity.AnswerResult, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}
	item, err := u.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	q := quiz.Generate(*item)
	correct := answersMatch(answer, q.Answer)

	// Racing submissions surface as ErrReviewConflict from the store's
	// atomic commit; one re-read-and-retry is allowed before giving up.
	for attempt := 0; ; attempt++ {
		current, err := u.currentState(ctx, userID, itemID)
		if err != nil {
			return nil, err
		}
		next := srs.Advance(current, correct, u.clock())
		if _, err := u.reviews.Put(ctx, &next); err != nil {
			if errors.Is(err, entity.ErrReviewConflict) && attempt == 0 {
				continue
			}
			return nil, err
		}
		break
	}

	return &entity.AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
	}, nil
}

func (u *studyUsecase) currentState(ctx context.Context, userID int64, itemID string) (entity.ReviewState, error) {
	state, err := u.reviews.Get(ctx, userID, itemID)
	if errors.Is(err, entity.ErrReviewStateNotFound) {
		return srs.NewState(userID, itemID), nil
	}
	if err != nil {
		return entity.ReviewState{}, err
	}
	return *state, nil
}

func (u *studyUsecase) GetStats(ctx context.Context, userID int64) (*entity.ProgressStats, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}
	total, err := u.items.Count(ctx)
	if err != nil {
		return nil, err
	}
	states, err := u.reviews.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	correct := lo.SumBy(states, func(s entity.ReviewState) int64 { return int64(s.CorrectCount) })
	incorrect := lo.SumBy(states, func(s entity.ReviewState) int64 { return int64(s.IncorrectCount) })
	maxStreak := lo.Reduce(states, func(acc int32, s entity.ReviewState, _ int) int32 {
		if s.Streak > acc {
			return s.Streak
		}
		return acc
	}, 0)
	due := lo.CountBy(states, func(s entity.ReviewState) bool { return s.Due(now) })

	stats := &entity.ProgressStats{
		TotalItems:    total,
		ReviewedItems: int64(len(states)),
		MaxStreak:     maxStreak,
		DueForReview:  int64(due),
	}
	if answered := correct + incorrect; answered > 0 {
		stats.CorrectRate = int32((100*correct + answered/2) / answered)
	}
	return stats, nil
}

func (u *studyUsecase) ListItems(ctx context.Context, query *repository.ListItemsQuery) ([]entity.StudyItem, int64, error) {
	if query == nil {
		query = &repository.ListItemsQuery{}
	}
	pred, err := itemfilter.Compile(query.Filter)
	if err != nil {
		return nil, 0, err
	}

	all, err := u.items.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	filtered := make([]entity.StudyItem, 0, len(all))
	for _, item := range all {
		ok, err := pred(item)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			filtered = append(filtered, item)
		}
	}

	total := int64(len(filtered))
	query.Pagination.Normalize(defaultPageSize)
	start := int(query.Offset())
	if start >= len(filtered) {
		return []entity.StudyItem{}, total, nil
	}
	end := start + int(query.PageSize)
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func answersMatch(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}
