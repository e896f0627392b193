// Package srs implements the SM-2 spaced-repetition transition. It is pure:
// callers hand in a review state snapshot and receive the next one, making
// persistence and concurrency somebody else's problem.
package srs

import (
	"math"
	"time"

	"github.com/eslsoft/repaso/internal/entity"
)

const (
	// InitialEase is the ease factor assigned to a never-reviewed item.
	InitialEase = 2.5
	// MinEase bounds the ease factor from below.
	MinEase = 1.3

	firstInterval  = 1
	secondInterval = 6
	easeBonus      = 0.1
	easePenalty    = 0.2
)

// NewState returns the review state for an item answered for the first time.
func NewState(userID int64, itemID string) entity.ReviewState {
	return entity.ReviewState{
		UserID:       userID,
		ItemID:       itemID,
		IntervalDays: firstInterval,
		EaseFactor:   InitialEase,
	}
}

// Advance applies one answer outcome to the state.
//
// The ordering is load-bearing: on a correct answer the interval is computed
// from the pre-update ease factor, and only then is the ease factor bumped.
// Swapping the two produces intervals that drift one step ahead.
func Advance(s entity.ReviewState, correct bool, now time.Time) entity.ReviewState {
	if correct {
		s.CorrectCount++
		s.Streak++
		switch s.Streak {
		case 1:
			s.IntervalDays = firstInterval
		case 2:
			s.IntervalDays = secondInterval
		default:
			s.IntervalDays = int32(math.Round(float64(s.IntervalDays) * s.EaseFactor))
		}
		s.EaseFactor = math.Max(MinEase, s.EaseFactor+easeBonus)
	} else {
		s.IncorrectCount++
		s.Streak = 0
		s.IntervalDays = firstInterval
		s.EaseFactor = math.Max(MinEase, s.EaseFactor-easePenalty)
	}
	s.LastReviewed = now
	s.NextReview = now.AddDate(0, 0, int(s.IntervalDays))
	return s
}
