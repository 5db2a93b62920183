package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/craftedu/coursecraft-backend/internal/storage"
)

// Deleter removes an object from the external store by key.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// UploadJanitor consumes the orphan upload queue and deletes the referenced
// objects from the external store. Keys land on the queue whenever an upload
// succeeded but the course save that should have referenced it did not.
type UploadJanitor struct {
	rdb   *redis.Client
	store Deleter
	log   zerolog.Logger
}

// NewUploadJanitor creates a new UploadJanitor.
func NewUploadJanitor(rdb *redis.Client, store Deleter, log zerolog.Logger) *UploadJanitor {
	return &UploadJanitor{
		rdb:   rdb,
		store: store,
		log:   log.With().Str("component", "upload_janitor").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *UploadJanitor) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *UploadJanitor) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, storage.OrphanQueueKey).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	key := result[1]
	if err := w.store.Delete(ctx, key); err != nil {
		w.log.Error().Err(err).
			Str("key", key).
			Msg("Delete error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, storage.OrphanQueueKey, key)
		time.Sleep(5 * time.Second)
		return
	}

	w.log.Debug().Str("key", key).Msg("Orphan removed")
}

// drain processes all remaining items in the queue before shutdown.
func (w *UploadJanitor) drain(ctx context.Context) {
	drained := 0
	for {
		key, err := w.rdb.LPop(ctx, storage.OrphanQueueKey).Result()
		if err != nil {
			break
		}

		if err := w.store.Delete(ctx, key); err != nil {
			w.log.Error().Err(err).Str("key", key).Msg("Drain delete error")
			w.rdb.RPush(ctx, storage.OrphanQueueKey, key)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
