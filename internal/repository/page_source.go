package repository

import (
	"context"

	"github.com/eslsoft/repaso/internal/entity"
)

// PageSource abstracts the external knowledge-base collaborator that supplies
// raw page content. Implementations own their transport concerns, including
// timeouts; searches may legitimately return zero results.
type PageSource interface {
	SearchPages(ctx context.Context, keywords []string) ([]entity.PageRef, error)
	GetPageContent(ctx context.Context, pageID string) (*entity.PageContent, error)
}
