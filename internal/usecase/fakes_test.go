package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/eslsoft/repaso/internal/entity"
)

type fakeItemRepo struct {
	mu      sync.RWMutex
	items   map[string]*entity.StudyItem
	order   []string
	reviews *fakeReviewRepo

	upsertErr func(item *entity.StudyItem) error
}

func newFakeItemRepo(reviews *fakeReviewRepo) *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.StudyItem), reviews: reviews}
}

func (r *fakeItemRepo) Upsert(ctx context.Context, item *entity.StudyItem) (*entity.StudyItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.upsertErr != nil {
		if err := r.upsertErr(item); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	stored := cloneItem(item)
	r.items[stored.ID] = stored
	return cloneItem(stored), nil
}

func (r *fakeItemRepo) Get(ctx context.Context, id string) (*entity.StudyItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, entity.ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (r *fakeItemRepo) List(ctx context.Context) ([]entity.StudyItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]entity.StudyItem, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *cloneItem(r.items[id]))
	}
	return result, nil
}

func (r *fakeItemRepo) ListWithoutReviewState(ctx context.Context, userID int64) ([]entity.StudyItem, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]entity.StudyItem, 0, len(all))
	for _, item := range all {
		if !r.reviews.has(userID, item.ID) {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *fakeItemRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *fakeItemRepo) DeleteStale(ctx context.Context, pageID string, keepIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	keep := make(map[string]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	remaining := r.order[:0]
	for _, id := range r.order {
		item := r.items[id]
		if item.SourcePageID == pageID {
			if _, ok := keep[id]; !ok {
				delete(r.items, id)
				continue
			}
		}
		remaining = append(remaining, id)
	}
	r.order = remaining
	return nil
}

type fakeReviewRepo struct {
	mu     sync.RWMutex
	states map[string]*entity.ReviewState

	putErrs []error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{states: make(map[string]*entity.ReviewState)}
}

func reviewKey(userID int64, itemID string) string {
	return fmt.Sprintf("%d:%s", userID, itemID)
}

func (r *fakeReviewRepo) has(userID int64, itemID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.states[reviewKey(userID, itemID)]
	return ok
}

func (r *fakeReviewRepo) Get(ctx context.Context, userID int64, itemID string) (*entity.ReviewState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.states[reviewKey(userID, itemID)]
	if !ok {
		return nil, entity.ErrReviewStateNotFound
	}
	clone := *state
	return &clone, nil
}

func (r *fakeReviewRepo) Put(ctx context.Context, state *entity.ReviewState) (*entity.ReviewState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.putErrs) > 0 {
		err := r.putErrs[0]
		r.putErrs = r.putErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	key := reviewKey(state.UserID, state.ItemID)
	existing, ok := r.states[key]
	if state.Version == 0 {
		if ok {
			return nil, entity.ErrReviewConflict
		}
	} else {
		if !ok || existing.Version != state.Version {
			return nil, entity.ErrReviewConflict
		}
	}
	clone := *state
	clone.Version++
	r.states[key] = &clone
	result := clone
	return &result, nil
}

func (r *fakeReviewRepo) ListDue(ctx context.Context, userID int64, now time.Time) ([]entity.ReviewState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []entity.ReviewState
	for _, state := range r.states {
		if state.UserID == userID && state.Due(now) {
			due = append(due, *state)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextReview.Before(due[j].NextReview) })
	return due, nil
}

func (r *fakeReviewRepo) List(ctx context.Context, userID int64) ([]entity.ReviewState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.ReviewState
	for _, state := range r.states {
		if state.UserID == userID {
			result = append(result, *state)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return result, nil
}

type fakePageSource struct {
	mu      sync.Mutex
	refs    []entity.PageRef
	content map[string]*entity.PageContent

	searchErr   error
	contentErrs map[string]error
	// searchGate, when set, blocks SearchPages until closed; used to hold a
	// sync mid-flight.
	searchGate chan struct{}
	searching  chan struct{}
}

func newFakePageSource() *fakePageSource {
	return &fakePageSource{content: make(map[string]*entity.PageContent), contentErrs: make(map[string]error)}
}

func (p *fakePageSource) addPage(id, title, rawText string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs = append(p.refs, entity.PageRef{ID: id, Title: title})
	p.content[id] = &entity.PageContent{ID: id, Title: title, RawText: rawText}
}

func (p *fakePageSource) SearchPages(ctx context.Context, keywords []string) ([]entity.PageRef, error) {
	if p.searching != nil {
		close(p.searching)
		p.searching = nil
	}
	if p.searchGate != nil {
		<-p.searchGate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.searchErr != nil {
		return nil, p.searchErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.PageRef(nil), p.refs...), nil
}

func (p *fakePageSource) GetPageContent(ctx context.Context, pageID string) (*entity.PageContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.contentErrs[pageID]; ok {
		return nil, err
	}
	page, ok := p.content[pageID]
	if !ok {
		return nil, fmt.Errorf("page %s not found", pageID)
	}
	clone := *page
	return &clone, nil
}

func cloneItem(src *entity.StudyItem) *entity.StudyItem {
	if src == nil {
		return nil
	}
	clone := *src
	if src.Tags != nil {
		clone.Tags = append([]string(nil), src.Tags...)
	}
	return &clone
}
