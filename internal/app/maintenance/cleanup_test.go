package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebase/cinebase/internal/cache"
	"github.com/cinebase/cinebase/internal/database/testutil"
	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/services"
	"gorm.io/datatypes"
)

func TestRunOncePrunesExpiredEntries(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	store := cache.NewDatabaseStore(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.CacheEntry{
		{CacheKey: "expired", SubjectKind: models.SubjectGeneral, Payload: datatypes.JSON(`{}`), CachedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{CacheKey: "fresh", SubjectKind: models.SubjectGeneral, Payload: datatypes.JSON(`{}`), CachedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	cleaner, err := NewCleaner(store, nil, Options{Clock: func() time.Time { return now }})
	require.NoError(t, err)

	require.NoError(t, cleaner.RunOnce(context.Background()))

	var keys []string
	require.NoError(t, db.Model(&models.CacheEntry{}).Pluck("cache_key", &keys).Error)
	assert.Equal(t, []string{"fresh"}, keys)
}

func TestRunOncePrunesAgedHistory(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	store := cache.NewDatabaseStore(db)

	history, err := services.NewHistoryService(db)
	require.NoError(t, err)

	old := models.HistoryEntry{UserID: "user-a", MediaKind: "movie", TMDBID: 1, ViewedAt: time.Now().AddDate(0, 0, -100)}
	recent := models.HistoryEntry{UserID: "user-a", MediaKind: "movie", TMDBID: 2, ViewedAt: time.Now()}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	cleaner, err := NewCleaner(store, history, Options{HistoryRetention: 90 * 24 * time.Hour})
	require.NoError(t, err)

	require.NoError(t, cleaner.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.HistoryEntry{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRunOnceSkipsHistoryWithoutRetention(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	store := cache.NewDatabaseStore(db)

	history, err := services.NewHistoryService(db)
	require.NoError(t, err)

	old := models.HistoryEntry{UserID: "user-a", MediaKind: "movie", TMDBID: 1, ViewedAt: time.Now().AddDate(-1, 0, 0)}
	require.NoError(t, db.Create(&old).Error)

	cleaner, err := NewCleaner(store, history, Options{})
	require.NoError(t, err)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.HistoryEntry{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

type failingStore struct{}

func (failingStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("delete failed")
}

func (failingStore) Count(context.Context) (int64, error) {
	return 0, errors.New("count failed")
}

type countingPruner struct{ calls int }

func (p *countingPruner) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	p.calls++
	return 0, nil
}

func TestRunOnceContinuesPastStoreFailure(t *testing.T) {
	pruner := &countingPruner{}
	cleaner, err := NewCleaner(failingStore{}, pruner, Options{HistoryRetention: time.Hour})
	require.NoError(t, err)

	err = cleaner.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, pruner.calls)
}

func TestNewCleanerRequiresStore(t *testing.T) {
	_, err := NewCleaner(nil, nil, Options{})
	require.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	cleaner, err := NewCleaner(cache.NewDatabaseStore(db), nil, Options{Schedule: "not-a-schedule"})
	require.NoError(t, err)

	require.Error(t, cleaner.Start())
}

func TestStartAndStop(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	cleaner, err := NewCleaner(cache.NewDatabaseStore(db), nil, Options{Schedule: "@every 1h"})
	require.NoError(t, err)

	require.NoError(t, cleaner.Start())
	cleaner.Stop()
}
