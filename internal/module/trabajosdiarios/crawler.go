package trabajosdiarios

import (
	"context"
	"log"
	"time"

	"github.com/project-tico/td-scraper/internal/common/dedup"
	"github.com/project-tico/td-scraper/internal/common/normalizer"
	"github.com/project-tico/td-scraper/internal/config"
	"github.com/project-tico/td-scraper/internal/domain"
	"github.com/project-tico/td-scraper/internal/module"
)

// Crawler walks the province listings of trabajosdiarios.co.cr and
// assembles one record per detail page.
type Crawler struct {
	fetcher    *fetcher
	normalizer *normalizer.Normalizer
	seen       dedup.SeenSet
	profile    *config.Profile
	config     Config
}

// Config holds crawl pacing and limits
type Config struct {
	MaxPages int
	// Stop after this many jobs in total; 0 means unlimited
	MaxJobs       int
	RequestDelay  time.Duration
	PageDelay     time.Duration
	ProvinceDelay time.Duration
	Timeout       time.Duration
	UserAgent     string
}

// NewCrawler creates a crawler over the profile's listing URLs
func NewCrawler(profile *config.Profile, seen dedup.SeenSet, cfg Config) *Crawler {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = time.Second
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = 2 * time.Second
	}
	if cfg.ProvinceDelay <= 0 {
		cfg.ProvinceDelay = 5 * time.Second
	}
	if seen == nil {
		seen = dedup.NewMemorySeenSet()
	}
	return &Crawler{
		fetcher:    newFetcher(cfg.UserAgent, cfg.RequestDelay, cfg.Timeout),
		normalizer: normalizer.NewNormalizer(profile),
		seen:       seen,
		profile:    profile,
		config:     cfg,
	}
}

// Crawl fetches every province listing and returns all records
func (c *Crawler) Crawl(ctx context.Context) ([]*domain.Job, error) {
	var all []*domain.Job
	err := c.CrawlWithCallback(ctx, func(jobs []*domain.Job) error {
		all = append(all, jobs...)
		return nil
	})
	return all, err
}

// CrawlWithCallback walks province by province, page by page, calling
// handler with each page's assembled records. Fetch and parse failures
// are logged and skipped; only context cancellation aborts the run.
func (c *Crawler) CrawlWithCallback(ctx context.Context, handler module.JobHandler) error {
	total := 0
	for i, listURL := range c.profile.ListingURLs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		log.Printf("[TrabajosDiarios] Crawling listing %d/%d: %s", i+1, len(c.profile.ListingURLs), listURL)

		limitHit, err := c.crawlListing(ctx, listURL, &total, handler)
		if err != nil {
			return err
		}
		if limitHit {
			log.Printf("[TrabajosDiarios] Reached maximum of %d jobs", c.config.MaxJobs)
			break
		}

		if i < len(c.profile.ListingURLs)-1 {
			time.Sleep(c.config.ProvinceDelay)
		}
	}

	log.Printf("[TrabajosDiarios] Crawled %d jobs", total)
	return nil
}

// crawlListing pages through one province listing. It reports whether the
// global job limit was hit; the returned error is only ever a context
// cancellation.
func (c *Crawler) crawlListing(ctx context.Context, listURL string, total *int, handler module.JobHandler) (bool, error) {
	for page := 1; page <= c.config.MaxPages; page++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		pageURL := buildPageURL(listURL, page)
		log.Printf("[TrabajosDiarios] Scraping page %d: %s", page, pageURL)

		doc, err := c.fetcher.Fetch(pageURL)
		if err != nil {
			log.Printf("[TrabajosDiarios] Error on page %d: %v", page, err)
			break
		}

		links := collectJobLinks(doc, c.profile.BaseURL)
		if len(links) == 0 {
			log.Printf("[TrabajosDiarios] No job links found on page %d", page)
			break
		}
		log.Printf("[TrabajosDiarios] Found %d job links", len(links))

		var pageJobs []*domain.Job
		for _, jobURL := range links {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			default:
			}

			if c.config.MaxJobs > 0 && *total >= c.config.MaxJobs {
				break
			}

			if seen, err := c.seen.Seen(ctx, jobURL); err != nil {
				log.Printf("[TrabajosDiarios] Seen check failed for %s: %v", jobURL, err)
			} else if seen {
				continue
			}

			job, err := c.scrapeJob(jobURL)
			if err != nil {
				log.Printf("[TrabajosDiarios] Error scraping %s: %v", jobURL, err)
				continue
			}

			// Marked only after a successful scrape so transient
			// failures stay eligible for the next run
			if err := c.seen.Mark(ctx, jobURL); err != nil {
				log.Printf("[TrabajosDiarios] Mark seen failed for %s: %v", jobURL, err)
			}

			pageJobs = append(pageJobs, job)
			*total++
			log.Printf("[TrabajosDiarios] [%d] %s", *total, job.Title)

			time.Sleep(c.config.RequestDelay)
		}

		if len(pageJobs) > 0 && handler != nil {
			if err := handler(pageJobs); err != nil {
				log.Printf("[TrabajosDiarios] Handler error: %v", err)
			}
		}

		if c.config.MaxJobs > 0 && *total >= c.config.MaxJobs {
			return true, nil
		}

		if !hasNextPage(doc) {
			log.Printf("[TrabajosDiarios] No more pages after page %d", page)
			break
		}

		time.Sleep(c.config.PageDelay)
	}

	return false, nil
}

func (c *Crawler) scrapeJob(jobURL string) (*domain.Job, error) {
	doc, err := c.fetcher.Fetch(jobURL)
	if err != nil {
		return nil, err
	}
	return c.normalizer.Normalize(jobURL, doc), nil
}

// Source returns the source identifier
func (c *Crawler) Source() domain.JobSource {
	return domain.SourceTrabajosDiarios
}
