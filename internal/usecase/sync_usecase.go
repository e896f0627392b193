package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/parser"
	"github.com/eslsoft/repaso/internal/repository"
)

const defaultSyncParallelism = 4

// defaultTopics is the fixed keyword vocabulary used to find study material
// in the knowledge base.
var defaultTopics = []string{"spanish", "vocabulary", "grammar", "phrases", "conjugation"}

// SyncUsecase drives the content parser against knowledge-base pages and
// upserts the results into the item store.
type SyncUsecase interface {
	// Sync fetches matching pages, parses them and upserts the items. Pages
	// are processed in parallel and independently: a failing page lands in
	// the result's error list and never aborts the others. Only total
	// collaborator unavailability returns an error. At most one sync may run
	// per user; concurrent calls get entity.ErrSyncInProgress.
	Sync(ctx context.Context, userID int64) (*entity.SyncResult, error)
}

// SyncOptions tunes the orchestrator; zero values select defaults.
type SyncOptions struct {
	Topics      []string
	Parallelism int
}

// NewSyncUsecase wires the page source and item store with default behaviour.
func NewSyncUsecase(pages repository.PageSource, items repository.StudyItemRepository, logger *logrus.Logger, opts SyncOptions) SyncUsecase {
	topics := opts.Topics
	if len(topics) == 0 {
		topics = defaultTopics
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = defaultSyncParallelism
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &syncUsecase{
		pages:       pages,
		items:       items,
		logger:      logger,
		topics:      topics,
		parallelism: parallelism,
		clock:       time.Now,
		inFlight:    make(map[int64]struct{}),
	}
}

type syncUsecase struct {
	pages       repository.PageSource
	items       repository.StudyItemRepository
	logger      *logrus.Logger
	topics      []string
	parallelism int
	clock       func() time.Time

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func (s *syncUsecase) Sync(ctx context.Context, userID int64) (*entity.SyncResult, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}
	if !s.acquire(userID) {
		return nil, entity.ErrSyncInProgress
	}
	defer s.release(userID)

	refs, err := s.pages.SearchPages(ctx, s.topics)
	if err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}

	var (
		resMu  sync.Mutex
		synced int
		errs   []string
	)
	g := new(errgroup.Group)
	g.SetLimit(s.parallelism)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			count, errMsg := s.syncPage(ctx, ref)
			resMu.Lock()
			synced += count
			if errMsg != "" {
				errs = append(errs, errMsg)
			}
			resMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(errs)
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"pages":   len(refs),
		"synced":  synced,
		"errors":  len(errs),
	}).Info("content sync finished")

	return &entity.SyncResult{SyncedCount: synced, Errors: errs}, nil
}

// syncPage parses one page and upserts its items. An item-specific store
// failure aborts the remainder of this page only.
func (s *syncUsecase) syncPage(ctx context.Context, ref entity.PageRef) (int, string) {
	page, err := s.pages.GetPageContent(ctx, ref.ID)
	if err != nil {
		return 0, fmt.Sprintf("%s: fetch page: %v", ref.Title, err)
	}

	parsed := parser.Parse(page.ID, page.Title, page.RawText)
	now := s.clock()
	synced := 0
	keep := make([]string, 0, len(parsed))
	for _, item := range parsed {
		item.Normalize(now)
		if _, err := s.items.Upsert(ctx, &item); err != nil {
			return synced, fmt.Sprintf("%s: store item: %v", ref.Title, err)
		}
		synced++
		keep = append(keep, item.ID)
	}

	// A fully stored page may drop entries that no longer exist in the
	// source. Skipped on partial failure above, so nothing is lost.
	if err := s.items.DeleteStale(ctx, page.ID, keep); err != nil {
		return synced, fmt.Sprintf("%s: drop stale items: %v", ref.Title, err)
	}
	return synced, ""
}

func (s *syncUsecase) acquire(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *syncUsecase) release(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
