package entity

import "errors"

// Domain errors for study items and related aggregates.
var (
	ErrItemNotFound        = errors.New("study item not found")
	ErrReviewStateNotFound = errors.New("review state not found")
	ErrReviewConflict      = errors.New("concurrent review state update")
	ErrSyncInProgress      = errors.New("sync already in progress")
	ErrInvalidStudyItem    = errors.New("invalid study item")
	ErrInvalidUserID       = errors.New("invalid user ID")
)
