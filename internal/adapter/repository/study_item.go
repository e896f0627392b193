package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/repository"
)

type studyItemRow struct {
	ID              string    `db:"id"`
	SourcePageID    string    `db:"source_page_id"`
	SourcePageTitle string    `db:"source_page_title"`
	Content         string    `db:"content"`
	ItemType        string    `db:"item_type"`
	Difficulty      string    `db:"difficulty"`
	Tags            tagList   `db:"tags"`
	Ordinal         int32     `db:"ordinal"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r studyItemRow) toEntity() entity.StudyItem {
	return entity.StudyItem{
		ID:              r.ID,
		SourcePageID:    r.SourcePageID,
		SourcePageTitle: r.SourcePageTitle,
		Content:         r.Content,
		Type:            entity.ItemType(r.ItemType),
		Difficulty:      entity.Difficulty(r.Difficulty),
		Tags:            []string(r.Tags),
		Ordinal:         r.Ordinal,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type studyItemRepository struct{ db *sqlx.DB }

// NewStudyItemRepository returns a sqlx-backed item store. Queries are
// written with ? placeholders and rebound for the active driver.
func NewStudyItemRepository(db *sqlx.DB) repository.StudyItemRepository {
	return &studyItemRepository{db: db}
}

func (r *studyItemRepository) Upsert(ctx context.Context, item *entity.StudyItem) (*entity.StudyItem, error) {
	query := r.db.Rebind(`
		INSERT INTO study_items (
			id, source_page_id, source_page_title, content, item_type,
			difficulty, tags, ordinal, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			source_page_title = excluded.source_page_title,
			content = excluded.content,
			item_type = excluded.item_type,
			difficulty = excluded.difficulty,
			tags = excluded.tags,
			ordinal = excluded.ordinal,
			updated_at = excluded.updated_at`)
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.SourcePageID, item.SourcePageTitle, item.Content,
		string(item.Type), string(item.Difficulty), tagList(item.Tags),
		item.Ordinal, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert study item: %w", err)
	}
	return r.Get(ctx, item.ID)
}

func (r *studyItemRepository) Get(ctx context.Context, id string) (*entity.StudyItem, error) {
	var row studyItemRow
	query := r.db.Rebind(`SELECT * FROM study_items WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrItemNotFound
		}
		return nil, fmt.Errorf("get study item: %w", err)
	}
	item := row.toEntity()
	return &item, nil
}

func (r *studyItemRepository) List(ctx context.Context) ([]entity.StudyItem, error) {
	var rows []studyItemRow
	query := `SELECT * FROM study_items ORDER BY created_at, source_page_id, ordinal`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list study items: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *studyItemRepository) ListWithoutReviewState(ctx context.Context, userID int64) ([]entity.StudyItem, error) {
	var rows []studyItemRow
	query := r.db.Rebind(`
		SELECT i.* FROM study_items i
		LEFT JOIN review_states rs ON rs.item_id = i.id AND rs.user_id = ?
		WHERE rs.item_id IS NULL
		ORDER BY i.created_at, i.source_page_id, i.ordinal`)
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list unreviewed study items: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *studyItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM study_items`); err != nil {
		return 0, fmt.Errorf("count study items: %w", err)
	}
	return count, nil
}

func (r *studyItemRepository) DeleteStale(ctx context.Context, pageID string, keepIDs []string) error {
	if len(keepIDs) == 0 {
		query := r.db.Rebind(`DELETE FROM study_items WHERE source_page_id = ?`)
		if _, err := r.db.ExecContext(ctx, query, pageID); err != nil {
			return fmt.Errorf("delete stale study items: %w", err)
		}
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keepIDs)), ",")
	args := make([]any, 0, len(keepIDs)+1)
	args = append(args, pageID)
	for _, id := range keepIDs {
		args = append(args, id)
	}
	query := r.db.Rebind(fmt.Sprintf(
		`DELETE FROM study_items WHERE source_page_id = ? AND id NOT IN (%s)`, placeholders))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stale study items: %w", err)
	}
	return nil
}

func rowsToItems(rows []studyItemRow) []entity.StudyItem {
	items := make([]entity.StudyItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}
