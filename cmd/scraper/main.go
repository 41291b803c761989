package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/project-tico/td-scraper/internal/common/dedup"
	"github.com/project-tico/td-scraper/internal/common/export"
	"github.com/project-tico/td-scraper/internal/common/indexer"
	"github.com/project-tico/td-scraper/internal/config"
	"github.com/project-tico/td-scraper/internal/domain"
	"github.com/project-tico/td-scraper/internal/module/trabajosdiarios"
	"github.com/project-tico/td-scraper/internal/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting TrabajosDiarios Scraper")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("Site profile failed: %v", err)
	}
	if cfg.CategoryPolicy != "" {
		profile.CategoryPolicy = cfg.CategoryPolicy
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel the crawl on SIGINT/SIGTERM; partial results are still written
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping crawl...")
		cancel()
	}()

	// Redis is only needed for the redis seen set and queue publishing
	var rdb *redis.Client
	if cfg.Dedup.Backend == "redis" || cfg.Redis.Publish {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Println("Redis connected")
	}

	var seen dedup.SeenSet
	switch cfg.Dedup.Backend {
	case "redis":
		seen = dedup.NewRedisSeenSet(rdb, "job:seen", cfg.Dedup.TTL)
	default:
		seen = dedup.NewMemorySeenSet()
	}

	var publisher *queue.Publisher
	if cfg.Redis.Publish {
		publisher = queue.NewPublisher(rdb, cfg.Redis.JobQueue)
	}

	crawler := trabajosdiarios.NewCrawler(profile, seen, trabajosdiarios.Config{
		MaxPages:      cfg.Crawler.MaxPages,
		MaxJobs:       cfg.Crawler.MaxJobs,
		RequestDelay:  cfg.Crawler.RequestDelay,
		PageDelay:     cfg.Crawler.PageDelay,
		ProvinceDelay: cfg.Crawler.ProvinceDelay,
		Timeout:       cfg.Crawler.Timeout,
		UserAgent:     cfg.Crawler.UserAgent,
	})

	// Stream pages into the queue while accumulating for the file exports
	var jobs []*domain.Job
	err = crawler.CrawlWithCallback(ctx, func(page []*domain.Job) error {
		jobs = append(jobs, page...)
		if publisher != nil {
			if err := publisher.PublishBatch(ctx, page); err != nil {
				log.Printf("Publish error: %v", err)
			}
		}
		return nil
	})
	if err != nil && err != context.Canceled {
		log.Printf("Crawl error: %v", err)
	}

	if len(jobs) == 0 {
		log.Println("No jobs scraped, skipping export")
		return
	}

	if err := export.WriteCSV(cfg.Output.CSVPath, jobs); err != nil {
		log.Printf("CSV export error: %v", err)
	} else {
		log.Printf("Wrote %d jobs to %s", len(jobs), cfg.Output.CSVPath)
	}

	if err := export.WriteJSON(cfg.Output.JSONPath, jobs); err != nil {
		log.Printf("JSON export error: %v", err)
	} else {
		log.Printf("Wrote %d jobs to %s", len(jobs), cfg.Output.JSONPath)
	}

	// Sinks use a fresh context so a cancelled crawl still flushes results
	indexCtx := context.Background()

	if cfg.Postgres.ConnectionString != "" {
		pgIndexer, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
		if err != nil {
			log.Fatalf("PostgreSQL connection failed: %v", err)
		}
		defer pgIndexer.Close()
		log.Println("PostgreSQL connected")

		if err := pgIndexer.BulkIndex(indexCtx, jobs); err != nil {
			log.Printf("PostgreSQL index error: %v", err)
		} else {
			log.Printf("Indexed %d jobs to table %s", len(jobs), cfg.Postgres.TableName)
		}
	}

	if cfg.Elasticsearch.Enabled {
		esIndexer, err := indexer.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
		if err != nil {
			log.Fatalf("Elasticsearch connection failed: %v", err)
		}
		log.Printf("Elasticsearch connected, index: %s", cfg.Elasticsearch.Index)

		if err := esIndexer.EnsureIndex(indexCtx); err != nil {
			log.Printf("Warning: Failed to ensure index: %v", err)
		}
		if err := esIndexer.BulkIndex(indexCtx, jobs); err != nil {
			log.Printf("Elasticsearch index error: %v", err)
		} else {
			log.Printf("Indexed %d jobs to index %s", len(jobs), cfg.Elasticsearch.Index)
		}
	}

	log.Printf("Done: %d jobs scraped", len(jobs))
}
