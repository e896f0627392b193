package entity

import "time"

// ReviewState tracks one user's spaced-repetition history and schedule for a
// single study item. The (UserID, ItemID) pair is unique; Version backs the
// store's optimistic read-modify-write.
type ReviewState struct {
	UserID         int64
	ItemID         string
	CorrectCount   int32
	IncorrectCount int32
	Streak         int32
	IntervalDays   int32
	EaseFactor     float64
	LastReviewed   time.Time
	NextReview     time.Time
	Version        int64
}

// Due reports whether the item is scheduled for review at the given instant.
func (rs *ReviewState) Due(now time.Time) bool {
	return !rs.NextReview.After(now)
}
