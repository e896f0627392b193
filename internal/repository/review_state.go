package repository

import (
	"context"
	"time"

	"github.com/eslsoft/repaso/internal/entity"
)

// ReviewStateRepository abstracts persistence for per-user review schedules.
//
// Put is the atomic read-modify-write commit point: a state with Version 0 is
// inserted, anything else updated with an optimistic version check. Both
// return entity.ErrReviewConflict when another writer got there first, and
// callers are expected to re-read and retry.
type ReviewStateRepository interface {
	Get(ctx context.Context, userID int64, itemID string) (*entity.ReviewState, error)
	Put(ctx context.Context, state *entity.ReviewState) (*entity.ReviewState, error)
	// ListDue returns states with nextReview <= now ordered by nextReview
	// ascending, so the most overdue item wins ties.
	ListDue(ctx context.Context, userID int64, now time.Time) ([]entity.ReviewState, error)
	List(ctx context.Context, userID int64) ([]entity.ReviewState, error)
}
