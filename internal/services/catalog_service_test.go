package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebase/cinebase/internal/cache"
	"github.com/cinebase/cinebase/internal/database/testutil"
	"github.com/cinebase/cinebase/internal/models"
)

type recordingUpstream struct {
	mu    sync.Mutex
	calls []string
}

func (u *recordingUpstream) Get(_ context.Context, path string, query url.Values) (json.RawMessage, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	full := path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	u.calls = append(u.calls, full)
	return json.RawMessage(`{"path":"` + path + `"}`), nil
}

func (u *recordingUpstream) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

func (u *recordingUpstream) lastCall() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.calls) == 0 {
		return ""
	}
	return u.calls[len(u.calls)-1]
}

func newTestFetcher(t *testing.T) (*cache.Fetcher, *recordingUpstream) {
	t.Helper()

	upstream := &recordingUpstream{}
	store := cache.NewDatabaseStore(testutil.MustOpenTestDB(t))
	fetcher, err := cache.NewFetcher(upstream, store)
	require.NoError(t, err)
	return fetcher, upstream
}

func TestMovieServiceTrending(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	payload, err := svc.Trending(context.Background(), "day", 2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/trending/movie/day"}`, string(payload))
	assert.Equal(t, "/trending/movie/day?page=2", upstream.lastCall())

	// Second identical call is served from the cache.
	_, err = svc.Trending(context.Background(), "day", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.callCount())

	// A different page is a distinct logical request.
	_, err = svc.Trending(context.Background(), "day", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callCount())
}

func TestMovieServiceTrendingDefaultsWindow(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	_, err = svc.Trending(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "/trending/movie/week?page=1", upstream.lastCall())
}

func TestMovieServiceTrendingRejectsWindow(t *testing.T) {
	fetcher, _ := newTestFetcher(t)
	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	_, err = svc.Trending(context.Background(), "month", 1)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestMovieServiceListings(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	cases := []struct {
		name string
		call func(context.Context, int) (any, error)
		path string
	}{
		{"popular", func(ctx context.Context, page int) (any, error) { return svc.Popular(ctx, page) }, "/movie/popular"},
		{"top_rated", func(ctx context.Context, page int) (any, error) { return svc.TopRated(ctx, page) }, "/movie/top_rated"},
		{"upcoming", func(ctx context.Context, page int) (any, error) { return svc.Upcoming(ctx, page) }, "/movie/upcoming"},
		{"now_playing", func(ctx context.Context, page int) (any, error) { return svc.NowPlaying(ctx, page) }, "/movie/now_playing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.call(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tc.path+"?page=1", upstream.lastCall())
		})
	}
}

func TestMovieServiceSubjectEndpoints(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	_, err = svc.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "/movie/550", upstream.lastCall())

	_, err = svc.Credits(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/credits", upstream.lastCall())

	_, err = svc.Videos(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/videos", upstream.lastCall())

	_, err = svc.Similar(context.Background(), 550, 1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/similar?page=1", upstream.lastCall())

	_, err = svc.Recommendations(context.Background(), 550, 1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/recommendations?page=1", upstream.lastCall())

	// Details for a different title never collides with the first.
	_, err = svc.Details(context.Background(), 551)
	require.NoError(t, err)
	assert.Equal(t, "/movie/551", upstream.lastCall())

	// Repeating any of the above stays on the cache.
	before := upstream.callCount()
	_, err = svc.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, before, upstream.callCount())
}

func TestTVServiceEndpoints(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewTVService(fetcher)
	require.NoError(t, err)

	_, err = svc.Trending(context.Background(), "week", 1)
	require.NoError(t, err)
	assert.Equal(t, "/trending/tv/week?page=1", upstream.lastCall())

	_, err = svc.Popular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/tv/popular?page=1", upstream.lastCall())

	_, err = svc.Details(context.Background(), 1399)
	require.NoError(t, err)
	assert.Equal(t, "/tv/1399", upstream.lastCall())

	// Movie and TV details for the same numeric id are distinct entries.
	movies, err := NewMovieService(fetcher)
	require.NoError(t, err)
	_, err = movies.Details(context.Background(), 1399)
	require.NoError(t, err)
	assert.Equal(t, "/movie/1399", upstream.lastCall())
}

func TestGenreServiceCachesPerKind(t *testing.T) {
	fetcher, upstream := newTestFetcher(t)
	svc, err := NewGenreService(fetcher)
	require.NoError(t, err)

	_, err = svc.MovieGenres(context.Background())
	require.NoError(t, err)
	_, err = svc.TVGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callCount())

	_, err = svc.MovieGenres(context.Background())
	require.NoError(t, err)
	_, err = svc.TVGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callCount())
}

func TestCatalogServiceExpiryRefetches(t *testing.T) {
	upstream := &recordingUpstream{}
	store := cache.NewDatabaseStore(testutil.MustOpenTestDB(t))

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fetcher, err := cache.NewFetcher(upstream, store, cache.WithClock(func() time.Time { return current }))
	require.NoError(t, err)

	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	_, err = svc.NowPlaying(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, upstream.callCount())

	// Inside the three hour window the entry is still served.
	current = current.Add(2 * time.Hour)
	_, err = svc.NowPlaying(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.callCount())

	// At exactly the expiry instant the entry no longer counts as fresh.
	current = current.Add(time.Hour)
	_, err = svc.NowPlaying(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callCount())
}

func TestCatalogServiceStoresSubjectMetadata(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	upstream := &recordingUpstream{}
	fetcher, err := cache.NewFetcher(upstream, cache.NewDatabaseStore(db))
	require.NoError(t, err)

	svc, err := NewMovieService(fetcher)
	require.NoError(t, err)

	_, err = svc.Details(context.Background(), 550)
	require.NoError(t, err)

	var entry models.CacheEntry
	require.NoError(t, db.Take(&entry, "cache_key = ?", "details_movie_550").Error)
	assert.Equal(t, 550, entry.SubjectID)
	assert.Equal(t, models.SubjectMovie, entry.SubjectKind)
}
