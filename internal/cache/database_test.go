package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/cinebase/cinebase/internal/database/testutil"
	"github.com/cinebase/cinebase/internal/models"
)

func TestDatabaseStoreLookupMissOnEmpty(t *testing.T) {
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))

	_, found, err := store.Lookup(context.Background(), "details_movie_550", time.Now())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDatabaseStoreSaveAndLookup(t *testing.T) {
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))
	now := time.Now()

	entry := &models.CacheEntry{
		SubjectID:   550,
		SubjectKind: models.SubjectMovie,
		CacheKey:    "details_movie_550",
		Payload:     datatypes.JSON(`{"id":550}`),
		CachedAt:    now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), entry))

	got, found, err := store.Lookup(context.Background(), "details_movie_550", now)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"id":550}`, string(got.Payload))
	assert.Equal(t, 550, got.SubjectID)
}

func TestDatabaseStoreExpiryBoundary(t *testing.T) {
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))
	now := time.Now().Truncate(time.Millisecond)

	entry := &models.CacheEntry{
		SubjectKind: models.SubjectGeneral,
		CacheKey:    "genres_movie",
		Payload:     datatypes.JSON(`{"genres":[]}`),
		CachedAt:    now.Add(-time.Hour),
		ExpiresAt:   now,
	}
	require.NoError(t, store.Save(context.Background(), entry))

	// expires_at == now is expired
	_, found, err := store.Lookup(context.Background(), "genres_movie", now)
	require.NoError(t, err)
	assert.False(t, found)

	// one millisecond earlier it is still fresh
	_, found, err = store.Lookup(context.Background(), "genres_movie", now.Add(-time.Millisecond))
	require.NoError(t, err)
	assert.True(t, found)
}

func TestDatabaseStoreUpsertReplacesRow(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	store := NewDatabaseStore(db)
	now := time.Now()

	first := &models.CacheEntry{
		SubjectID:   550,
		SubjectKind: models.SubjectMovie,
		CacheKey:    "details_movie_550",
		Payload:     datatypes.JSON(`{"rev":1}`),
		CachedAt:    now.Add(-8 * 24 * time.Hour),
		ExpiresAt:   now.Add(-24 * time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), first))

	refreshed := &models.CacheEntry{
		SubjectID:   550,
		SubjectKind: models.SubjectMovie,
		CacheKey:    "details_movie_550",
		Payload:     datatypes.JSON(`{"rev":2}`),
		CachedAt:    now,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), refreshed))

	var count int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Where("cache_key = ?", "details_movie_550").Count(&count).Error)
	assert.Equal(t, int64(1), count, "refresh must replace the row, not duplicate it")

	got, found, err := store.Lookup(context.Background(), "details_movie_550", now)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"rev":2}`, string(got.Payload))
}

func TestDatabaseStoreRejectsEntryWithoutExpiry(t *testing.T) {
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))

	err := store.Save(context.Background(), &models.CacheEntry{
		CacheKey: "details_movie_550",
		Payload:  datatypes.JSON(`{}`),
	})
	require.Error(t, err)
}

func TestDatabaseStoreDeleteExpired(t *testing.T) {
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))
	now := time.Now()

	stale := &models.CacheEntry{
		SubjectKind: models.SubjectGeneral,
		CacheKey:    "trending_movie_p1_day",
		Payload:     datatypes.JSON(`{}`),
		CachedAt:    now.Add(-12 * time.Hour),
		ExpiresAt:   now.Add(-6 * time.Hour),
	}
	fresh := &models.CacheEntry{
		SubjectKind: models.SubjectGeneral,
		CacheKey:    "trending_movie_p1_week",
		Payload:     datatypes.JSON(`{}`),
		CachedAt:    now,
		ExpiresAt:   now.Add(6 * time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), stale))
	require.NoError(t, store.Save(context.Background(), fresh))

	removed, err := store.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, found, err := store.Lookup(context.Background(), "trending_movie_p1_week", now)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestNilDatabaseStore(t *testing.T) {
	var store *DatabaseStore

	_, _, err := store.Lookup(context.Background(), "k", time.Now())
	require.Error(t, err)
	require.Error(t, store.Save(context.Background(), &models.CacheEntry{}))
}
