package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cinebase/cinebase/internal/models"
)

// DatabaseStore implements EntryStore on the primary SQL database.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore constructs a database-backed EntryStore.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	if db == nil {
		return nil
	}
	return &DatabaseStore{db: db}
}

// Lookup returns the entry for key provided its expiry is strictly in the
// future. An expired row is reported as absent, never as an error.
func (s *DatabaseStore) Lookup(ctx context.Context, key string, now time.Time) (*models.CacheEntry, bool, error) {
	if s == nil {
		return nil, false, errors.New("cache: database store not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var entry models.CacheEntry
	err := s.db.WithContext(ctx).
		Take(&entry, "cache_key = ? AND expires_at > ?", key, now).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &entry, true, nil
}

// Save upserts the entry keyed by its full cache key, replacing the payload
// and expiry of any existing row for the same logical call.
func (s *DatabaseStore) Save(ctx context.Context, entry *models.CacheEntry) error {
	if s == nil {
		return errors.New("cache: database store not initialised")
	}
	if entry == nil {
		return errors.New("cache: nil entry")
	}
	if entry.ExpiresAt.IsZero() {
		return errors.New("cache: entry must carry an expiry")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"payload", "subject_id", "subject_kind", "cached_at", "expires_at", "updated_at",
			}),
		}).Create(entry).Error
}

// Count returns the number of rows currently held, expired or not.
func (s *DatabaseStore) Count(ctx context.Context) (int64, error) {
	if s == nil {
		return 0, errors.New("cache: database store not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.CacheEntry{}).Count(&count).Error
	return count, err
}

// DeleteExpired removes rows whose expiry has passed. The fetcher never
// deletes; this exists for the maintenance cleaner.
func (s *DatabaseStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if s == nil {
		return 0, errors.New("cache: database store not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.CacheEntry{})
	return res.RowsAffected, res.Error
}
