package cache

import (
	"context"
	"time"

	"github.com/cinebase/cinebase/internal/models"
)

// EntryStore is the durable store behind the read-through fetcher. Lookups
// filter on expiry; writes upsert on the full cache key so refreshes replace
// the stale row instead of accumulating duplicates.
type EntryStore interface {
	Lookup(ctx context.Context, key string, now time.Time) (*models.CacheEntry, bool, error)
	Save(ctx context.Context, entry *models.CacheEntry) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
