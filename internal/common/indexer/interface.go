package indexer

import (
	"context"

	"github.com/project-tico/td-scraper/internal/domain"
)

// Indexer defines the interface for record persistence backends
type Indexer interface {
	// BulkIndex upserts multiple records at once
	BulkIndex(ctx context.Context, jobs []*domain.Job) error
}
