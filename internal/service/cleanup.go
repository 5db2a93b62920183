package service

import (
	"context"

	"github.com/craftedu/coursecraft-backend/internal/model"
	"github.com/rs/zerolog"
)

// collectResourceKeys gathers the store keys of every resource binary
// referenced beneath the given lessons. URLs that do not belong to the
// store map to no key and are skipped.
func collectResourceKeys(uploader Uploader, lessons []model.Lesson) []string {
	var keys []string
	for i := range lessons {
		for j := range lessons[i].Resources {
			res := &lessons[i].Resources[j]
			if key := uploader.KeyFromURL(res.ImageURL); key != "" {
				keys = append(keys, key)
			}
			if key := uploader.KeyFromURL(res.VideoURL); key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// enqueueOrphans hands keys to the janitor queue. Best effort: an enqueue
// failure only logs; the object stays orphaned, which is the documented
// trade-off of uploading before saving.
func enqueueOrphans(ctx context.Context, orphans OrphanQueue, log zerolog.Logger, keys []string) {
	for _, key := range keys {
		if err := orphans.Enqueue(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to enqueue orphaned upload")
		}
	}
}
