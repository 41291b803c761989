package trabajosdiarios

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-tico/td-scraper/internal/config"
	"github.com/project-tico/td-scraper/internal/domain"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ofertas-trabajo/en-test", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<a href="/trabajo/1/cocinero">Cocinero</a>
<a href="/trabajo/2/vendedor">Vendedor</a>
</body></html>`)
	})
	mux.HandleFunc("/trabajo/1/cocinero", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<script type="application/ld+json">{"@type": "JobPosting", "title": "Cocinero", "employmentType": "FULL_TIME"}</script>
</head><body><h1>Cocinero</h1></body></html>`)
	})
	mux.HandleFunc("/trabajo/2/vendedor", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<h1>Vendedor de mostrador</h1>
<div class="job-description"><p>Atención de clientes.</p></div>
</body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testProfile(base string) *config.Profile {
	profile := config.DefaultProfile()
	profile.BaseURL = base
	profile.ListingURLs = []string{base + "/ofertas-trabajo/en-test"}
	return profile
}

func fastConfig() Config {
	return Config{
		MaxPages:      2,
		RequestDelay:  time.Millisecond,
		PageDelay:     time.Millisecond,
		ProvinceDelay: time.Millisecond,
		Timeout:       5 * time.Second,
		UserAgent:     "test-agent",
	}
}

func TestCrawl(t *testing.T) {
	srv := testServer(t)
	crawler := NewCrawler(testProfile(srv.URL), nil, fastConfig())

	jobs, err := crawler.Crawl(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Cocinero", jobs[0].Title)
	assert.Equal(t, "Tiempo Completo", jobs[0].JobType)
	assert.Equal(t, srv.URL+"/trabajo/1/cocinero", jobs[0].ApplyURL)

	assert.Equal(t, "Vendedor de mostrador", jobs[1].Title)
	assert.Equal(t, "Atención de clientes.", jobs[1].Description)
	assert.Equal(t, "Ventas", jobs[1].Category)
}

func TestCrawlEmptyListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ofertas-trabajo/en-test", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>No hay ofertas disponibles.</p></body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	crawler := NewCrawler(testProfile(srv.URL), nil, fastConfig())
	jobs, err := crawler.Crawl(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestCrawlSkipsSeen(t *testing.T) {
	srv := testServer(t)
	crawler := NewCrawler(testProfile(srv.URL), nil, fastConfig())

	first, err := crawler.Crawl(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := crawler.Crawl(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second, "already scraped pages should be skipped")
}

func TestCrawlMaxJobs(t *testing.T) {
	srv := testServer(t)
	cfg := fastConfig()
	cfg.MaxJobs = 1
	crawler := NewCrawler(testProfile(srv.URL), nil, cfg)

	jobs, err := crawler.Crawl(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestCrawlCancelled(t *testing.T) {
	srv := testServer(t)
	crawler := NewCrawler(testProfile(srv.URL), nil, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := crawler.Crawl(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrawlCallbackPerPage(t *testing.T) {
	srv := testServer(t)
	crawler := NewCrawler(testProfile(srv.URL), nil, fastConfig())

	var batches [][]*domain.Job
	err := crawler.CrawlWithCallback(context.Background(), func(jobs []*domain.Job) error {
		batches = append(batches, jobs)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 2)
}

func TestSource(t *testing.T) {
	crawler := NewCrawler(config.DefaultProfile(), nil, fastConfig())
	assert.Equal(t, domain.SourceTrabajosDiarios, crawler.Source())
}
