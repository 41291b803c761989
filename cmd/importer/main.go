package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/project-tico/td-scraper/internal/common/indexer"
	"github.com/project-tico/td-scraper/internal/config"
	"github.com/project-tico/td-scraper/internal/module/importer"
	"github.com/project-tico/td-scraper/internal/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Importer Service")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	var sinks []indexer.Indexer

	if cfg.Postgres.ConnectionString != "" {
		pgIndexer, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
		if err != nil {
			log.Fatalf("PostgreSQL connection failed: %v", err)
		}
		defer pgIndexer.Close()
		log.Printf("PostgreSQL connected, table: %s", cfg.Postgres.TableName)
		sinks = append(sinks, pgIndexer)
	}

	if cfg.Elasticsearch.Enabled {
		esIndexer, err := indexer.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
		if err != nil {
			log.Fatalf("Elasticsearch connection failed: %v", err)
		}
		log.Printf("Elasticsearch connected, index: %s", cfg.Elasticsearch.Index)

		// Ensure index exists with proper mapping
		if err := esIndexer.EnsureIndex(ctx); err != nil {
			log.Printf("Warning: Failed to ensure index: %v", err)
		}
		sinks = append(sinks, esIndexer)
	}

	if len(sinks) == 0 {
		log.Fatal("No sinks configured, set POSTGRES_URL or ELASTICSEARCH_URL")
	}

	consumer := queue.NewConsumer(rdb, cfg.Redis.JobQueue, 5*time.Second)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		im := importer.NewImporter(consumer, sinks, cfg.Importer.BatchSize)
		if err := im.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Importer error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutdown signal received, stopping...")
	cancel()

	// Wait for goroutines to finish
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Graceful shutdown complete")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout, forcing exit")
	}
}
