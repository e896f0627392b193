package repository

import (
	"context"

	"github.com/eslsoft/repaso/internal/entity"
)

// ListItemsQuery holds parameters for listing study items.
type ListItemsQuery struct {
	Pagination
	FilterOrder
}

// StudyItemRepository abstracts persistence for study items to keep usecases
// storage agnostic. Upsert is keyed by the deterministic item ID so repeated
// syncs of unchanged content are idempotent.
type StudyItemRepository interface {
	Upsert(ctx context.Context, item *entity.StudyItem) (*entity.StudyItem, error)
	Get(ctx context.Context, id string) (*entity.StudyItem, error)
	// List returns all items in creation order (page, then ordinal).
	List(ctx context.Context) ([]entity.StudyItem, error)
	// ListWithoutReviewState returns items the user has never answered, in
	// creation order.
	ListWithoutReviewState(ctx context.Context, userID int64) ([]entity.StudyItem, error)
	Count(ctx context.Context) (int64, error)
	// DeleteStale removes items of a page whose IDs are not in keepIDs,
	// supporting full content re-syncs that drop removed entries.
	DeleteStale(ctx context.Context, pageID string, keepIDs []string) error
}
