package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebase/cinebase/internal/cache"
	"github.com/cinebase/cinebase/internal/database/testutil"
	"github.com/cinebase/cinebase/internal/models"
)

func TestSearchServiceBypassesCache(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	upstream := &recordingUpstream{}
	fetcher, err := cache.NewFetcher(upstream, cache.NewDatabaseStore(db))
	require.NoError(t, err)

	svc, err := NewSearchService(fetcher)
	require.NoError(t, err)

	// The same query twice hits upstream twice and never touches the table.
	_, err = svc.SearchMovies(context.Background(), "inception", 1)
	require.NoError(t, err)
	_, err = svc.SearchMovies(context.Background(), "inception", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callCount())
	assert.Equal(t, "/search/movie?page=1&query=inception", upstream.lastCall())

	var count int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSearchServicePaths(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewSearchService(fetcher)
	require.NoError(t, err)

	_, err = svc.SearchTV(context.Background(), "lost", 2)
	require.NoError(t, err)
	assert.Equal(t, "/search/tv?page=2&query=lost", upstream.lastCall())

	_, err = svc.SearchMulti(context.Background(), "nolan", 1)
	require.NoError(t, err)
	assert.Equal(t, "/search/multi?page=1&query=nolan", upstream.lastCall())
}

func TestSearchServiceRejectsEmptyQuery(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewSearchService(fetcher)
	require.NoError(t, err)

	_, err = svc.SearchMovies(context.Background(), "   ", 1)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, upstream.callCount())
}

func TestDiscoverPassesFiltersThrough(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewSearchService(fetcher)
	require.NoError(t, err)

	_, err = svc.Discover(context.Background(), "movie", map[string]string{
		"with_genres": "28",
		"year":        "2020",
		"page":        "99",
		"api_key":     "sneaky",
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, "/discover/movie?page=3&with_genres=28&year=2020", upstream.lastCall())
}

func TestDiscoverRejectsKind(t *testing.T) {
	fetcher, _ := newTestFetcher(t)
	svc, err := NewSearchService(fetcher)
	require.NoError(t, err)

	_, err = svc.Discover(context.Background(), "person", nil, 1)
	assert.ErrorIs(t, err, ErrInvalidKind)
}
