// Package importer drains published records into the configured sinks.
package importer

import (
	"context"
	"log"

	"github.com/project-tico/td-scraper/internal/common/indexer"
	"github.com/project-tico/td-scraper/internal/queue"
)

// Importer consumes record batches from the queue and bulk-indexes them.
// Records are processed sequentially; the scraper publishes slowly enough
// that one consumer keeps up.
type Importer struct {
	consumer  *queue.Consumer
	sinks     []indexer.Indexer
	batchSize int
}

// NewImporter creates an importer writing to the given sinks
func NewImporter(consumer *queue.Consumer, sinks []indexer.Indexer, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Importer{
		consumer:  consumer,
		sinks:     sinks,
		batchSize: batchSize,
	}
}

// Run consumes until the context is cancelled. Sink failures are logged
// per batch; the loop keeps going so one bad batch cannot stall the queue.
func (im *Importer) Run(ctx context.Context) error {
	log.Printf("[Importer] Started, batch size %d", im.batchSize)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Importer] Stopping")
			return ctx.Err()
		default:
		}

		// ConsumeBatch blocks on the first item, so an idle queue does
		// not spin
		jobs, err := im.consumer.ConsumeBatch(ctx, im.batchSize)
		if err != nil {
			log.Printf("[Importer] Consume error: %v", err)
			continue
		}
		if len(jobs) == 0 {
			continue
		}

		log.Printf("[Importer] Processing %d records", len(jobs))
		for _, sink := range im.sinks {
			if err := sink.BulkIndex(ctx, jobs); err != nil {
				log.Printf("[Importer] Index error: %v", err)
			}
		}
	}
}
