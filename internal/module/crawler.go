package module

import (
	"context"

	"github.com/project-tico/td-scraper/internal/domain"
)

// JobHandler is a callback invoked with the records assembled from each
// listing page
type JobHandler func(jobs []*domain.Job) error

// Crawler is the common interface for job board crawlers
type Crawler interface {
	// Crawl fetches and assembles every record from the source
	Crawl(ctx context.Context) ([]*domain.Job, error)
	// CrawlWithCallback fetches page by page and calls handler after each page
	CrawlWithCallback(ctx context.Context, handler JobHandler) error
	// Source returns the source identifier
	Source() domain.JobSource
}
