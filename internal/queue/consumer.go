package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/project-tico/td-scraper/internal/domain"
)

// Consumer pops records off the Redis list the scraper publishes to.
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a new queue consumer
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if queueName == "" {
		queueName = "jobs:records"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{
		client:    client,
		queueName: queueName,
		timeout:   timeout,
	}
}

// Consume blocks and waits for a record from the queue.
// Returns nil, nil if timeout occurs with no record
func (c *Consumer) Consume(ctx context.Context) (*domain.Job, error) {
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Timeout, nothing queued
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var job domain.Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}

	return &job, nil
}

// ConsumeBatch consumes up to maxBatch records from the queue.
// Uses BRPOP to block-wait for the first item (prevents CPU spinning),
// then non-blocking RPOP to fill the rest of the batch.
func (c *Consumer) ConsumeBatch(ctx context.Context, maxBatch int) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0, maxBatch)

	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return jobs, nil // Timeout, nothing queued
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) >= 2 {
		var job domain.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err == nil {
			jobs = append(jobs, &job)
		}
	}

	for i := 1; i < maxBatch; i++ {
		result, err := c.client.RPop(ctx, c.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				break // Queue drained
			}
			return jobs, fmt.Errorf("rpop: %w", err)
		}

		var job domain.Job
		if err := json.Unmarshal([]byte(result), &job); err != nil {
			continue // Skip malformed payloads
		}

		jobs = append(jobs, &job)
	}

	return jobs, nil
}
