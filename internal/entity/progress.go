package entity

// ProgressStats is a pure aggregate over a user's review states, recomputed
// on request.
type ProgressStats struct {
	TotalItems    int64
	ReviewedItems int64
	CorrectRate   int32
	MaxStreak     int32
	DueForReview  int64
}

// SyncResult reports the outcome of a content sync. Partial success is the
// normal case: Errors itemizes per-page failures that did not abort the run.
type SyncResult struct {
	SyncedCount int
	Errors      []string
}
