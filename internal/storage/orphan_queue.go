package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// OrphanQueueKey is the Redis list holding keys of uploaded objects whose
// aggregate save failed. The janitor worker drains it.
const OrphanQueueKey = "orphan_uploads_queue"

// OrphanQueue records uploads that are no longer referenced by any saved
// aggregate so they can be deleted in the background.
type OrphanQueue struct {
	rdb *redis.Client
}

// NewOrphanQueue creates a new OrphanQueue.
func NewOrphanQueue(rdb *redis.Client) *OrphanQueue {
	return &OrphanQueue{rdb: rdb}
}

// Enqueue pushes an object key onto the cleanup queue.
func (q *OrphanQueue) Enqueue(ctx context.Context, key string) error {
	return q.rdb.RPush(ctx, OrphanQueueKey, key).Err()
}
