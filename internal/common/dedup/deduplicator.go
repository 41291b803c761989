package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenSet tracks detail URLs that have already been scraped.
type SeenSet interface {
	// Seen reports whether the URL was marked before
	Seen(ctx context.Context, url string) (bool, error)
	// Mark records the URL as scraped
	Mark(ctx context.Context, url string) error
}

// MemorySeenSet is the per-run default: every run starts empty.
type MemorySeenSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func NewMemorySeenSet() *MemorySeenSet {
	return &MemorySeenSet{urls: make(map[string]struct{})}
}

func (m *MemorySeenSet) Seen(_ context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.urls[url]
	return ok, nil
}

func (m *MemorySeenSet) Mark(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls[url] = struct{}{}
	return nil
}

// RedisSeenSet persists the seen set across runs. Keys expire so delisted
// postings eventually become eligible again.
type RedisSeenSet struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSeenSet creates a Redis-backed seen set
func NewRedisSeenSet(client *redis.Client, prefix string, ttl time.Duration) *RedisSeenSet {
	if prefix == "" {
		prefix = "job:seen"
	}
	if ttl == 0 {
		ttl = 24 * time.Hour * 30
	}
	return &RedisSeenSet{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisSeenSet) Seen(ctx context.Context, url string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.makeKey(url)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return exists > 0, nil
}

func (r *RedisSeenSet) Mark(ctx context.Context, url string) error {
	if err := r.client.Set(ctx, r.makeKey(url), time.Now().Unix(), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisSeenSet) makeKey(url string) string {
	h := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s:%s", r.prefix, hex.EncodeToString(h[:16]))
}
