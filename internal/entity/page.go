package entity

import "time"

// PageRef identifies a knowledge-base page returned by a search.
type PageRef struct {
	ID         string
	Title      string
	LastEdited time.Time
}

// PageContent is the raw text of a knowledge-base page to be parsed into
// study items.
type PageContent struct {
	ID      string
	Title   string
	RawText string
}
