package trabajosdiarios

import (
	"bytes"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// fetcher wraps a colly collector that downloads pages and hands back
// parsed documents.
type fetcher struct {
	collector *colly.Collector
}

func newFetcher(userAgent string, delay, timeout time.Duration) *fetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)

	if delay > 0 {
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Delay:       delay,
			RandomDelay: delay / 2,
		})
	}
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}

	return &fetcher{collector: c}
}

// Fetch downloads one page and parses it into a document
func (f *fetcher) Fetch(url string) (*goquery.Document, error) {
	var doc *goquery.Document
	var fetchErr error

	collector := f.collector.Clone()

	collector.OnResponse(func(r *colly.Response) {
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchErr = fmt.Errorf("parse html: %w", err)
			return
		}
		doc = parsed
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("colly error: %w (status: %d)", err, r.StatusCode)
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("visit url: %w", err)
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	if doc == nil {
		return nil, fmt.Errorf("no document from %s", url)
	}
	return doc, nil
}
