package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/repaso/internal/entity"
	"github.com/eslsoft/repaso/internal/repository"
)

type reviewStateRow struct {
	UserID         int64        `db:"user_id"`
	ItemID         string       `db:"item_id"`
	CorrectCount   int32        `db:"correct_count"`
	IncorrectCount int32        `db:"incorrect_count"`
	Streak         int32        `db:"streak"`
	IntervalDays   int32        `db:"interval_days"`
	EaseFactor     float64      `db:"ease_factor"`
	LastReviewed   sql.NullTime `db:"last_reviewed"`
	NextReview     time.Time    `db:"next_review"`
	Version        int64        `db:"version"`
}

func (r reviewStateRow) toEntity() entity.ReviewState {
	state := entity.ReviewState{
		UserID:         r.UserID,
		ItemID:         r.ItemID,
		CorrectCount:   r.CorrectCount,
		IncorrectCount: r.IncorrectCount,
		Streak:         r.Streak,
		IntervalDays:   r.IntervalDays,
		EaseFactor:     r.EaseFactor,
		NextReview:     r.NextReview,
		Version:        r.Version,
	}
	if r.LastReviewed.Valid {
		state.LastReviewed = r.LastReviewed.Time
	}
	return state
}

type reviewStateRepository struct{ db *sqlx.DB }

// NewReviewStateRepository returns a sqlx-backed review state store with
// optimistic version checks on updates.
func NewReviewStateRepository(db *sqlx.DB) repository.ReviewStateRepository {
	return &reviewStateRepository{db: db}
}

func (r *reviewStateRepository) Get(ctx context.Context, userID int64, itemID string) (*entity.ReviewState, error) {
	var row reviewStateRow
	query := r.db.Rebind(`SELECT * FROM review_states WHERE user_id = ? AND item_id = ?`)
	if err := r.db.GetContext(ctx, &row, query, userID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrReviewStateNotFound
		}
		return nil, fmt.Errorf("get review state: %w", err)
	}
	state := row.toEntity()
	return &state, nil
}

func (r *reviewStateRepository) Put(ctx context.Context, state *entity.ReviewState) (*entity.ReviewState, error) {
	if state.Version == 0 {
		return r.insert(ctx, state)
	}
	return r.update(ctx, state)
}

func (r *reviewStateRepository) insert(ctx context.Context, state *entity.ReviewState) (*entity.ReviewState, error) {
	query := r.db.Rebind(`
		INSERT INTO review_states (
			user_id, item_id, correct_count, incorrect_count, streak,
			interval_days, ease_factor, last_reviewed, next_review, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`)
	_, err := r.db.ExecContext(ctx, query,
		state.UserID, state.ItemID, state.CorrectCount, state.IncorrectCount,
		state.Streak, state.IntervalDays, state.EaseFactor,
		nullTime(state.LastReviewed), state.NextReview,
	)
	if err != nil {
		// A duplicate key here means somebody inserted the first review
		// concurrently. The driver error formats differ, so confirm by
		// re-reading instead of matching error codes.
		if _, getErr := r.Get(ctx, state.UserID, state.ItemID); getErr == nil {
			return nil, entity.ErrReviewConflict
		}
		return nil, fmt.Errorf("insert review state: %w", err)
	}
	return r.Get(ctx, state.UserID, state.ItemID)
}

func (r *reviewStateRepository) update(ctx context.Context, state *entity.ReviewState) (*entity.ReviewState, error) {
	query := r.db.Rebind(`
		UPDATE review_states SET
			correct_count = ?, incorrect_count = ?, streak = ?,
			interval_days = ?, ease_factor = ?, last_reviewed = ?,
			next_review = ?, version = version + 1
		WHERE user_id = ? AND item_id = ? AND version = ?`)
	res, err := r.db.ExecContext(ctx, query,
		state.CorrectCount, state.IncorrectCount, state.Streak,
		state.IntervalDays, state.EaseFactor, nullTime(state.LastReviewed),
		state.NextReview, state.UserID, state.ItemID, state.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("update review state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update review state: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrReviewConflict
	}
	return r.Get(ctx, state.UserID, state.ItemID)
}

func (r *reviewStateRepository) ListDue(ctx context.Context, userID int64, now time.Time) ([]entity.ReviewState, error) {
	var rows []reviewStateRow
	query := r.db.Rebind(`
		SELECT * FROM review_states
		WHERE user_id = ? AND next_review <= ?
		ORDER BY next_review`)
	if err := r.db.SelectContext(ctx, &rows, query, userID, now); err != nil {
		return nil, fmt.Errorf("list due review states: %w", err)
	}
	return rowsToStates(rows), nil
}

func (r *reviewStateRepository) List(ctx context.Context, userID int64) ([]entity.ReviewState, error) {
	var rows []reviewStateRow
	query := r.db.Rebind(`SELECT * FROM review_states WHERE user_id = ? ORDER BY item_id`)
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list review states: %w", err)
	}
	return rowsToStates(rows), nil
}

func rowsToStates(rows []reviewStateRow) []entity.ReviewState {
	states := make([]entity.ReviewState, 0, len(rows))
	for _, row := range rows {
		states = append(states, row.toEntity())
	}
	return states
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
