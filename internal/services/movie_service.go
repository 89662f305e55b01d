package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"gorm.io/datatypes"

	"github.com/cinebase/cinebase/internal/cache"
	"github.com/cinebase/cinebase/internal/models"
)

// MovieService serves movie catalog endpoints through the read-through cache.
// TTLs come from the cache policy table; the service only builds keys and
// upstream paths.
type MovieService struct {
	fetcher *cache.Fetcher
}

// NewMovieService constructs a movie catalog service.
func NewMovieService(fetcher *cache.Fetcher) (*MovieService, error) {
	if fetcher == nil {
		return nil, errors.New("movie service: fetcher is required")
	}
	return &MovieService{fetcher: fetcher}, nil
}

// Trending returns trending movies for the supplied time window.
func (s *MovieService) Trending(ctx context.Context, window string, page int) (datatypes.JSON, error) {
	window, ok := normaliseWindow(window)
	if !ok {
		return nil, ErrInvalidWindow
	}
	page = normalisePage(page)

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        fmt.Sprintf("/trending/movie/%s", window),
		Query:       url.Values{"page": []string{pageQueryValue(page)}},
		Key:         cache.Key(cache.ClassTrending, models.SubjectMovie, cache.WithPage(page), cache.WithWindow(window)),
		Class:       cache.ClassTrending,
		SubjectKind: models.SubjectGeneral,
		TTL:         cache.TTL(cache.ClassTrending),
	})
}

// Popular returns the popular movie listing.
func (s *MovieService) Popular(ctx context.Context, page int) (datatypes.JSON, error) {
	return s.listing(ctx, cache.ClassPopular, "/movie/popular", page)
}

// TopRated returns the top-rated movie listing.
func (s *MovieService) TopRated(ctx context.Context, page int) (datatypes.JSON, error) {
	return s.listing(ctx, cache.ClassTopRated, "/movie/top_rated", page)
}

// Upcoming returns movies with upcoming release dates.
func (s *MovieService) Upcoming(ctx context.Context, page int) (datatypes.JSON, error) {
	return s.listing(ctx, cache.ClassUpcoming, "/movie/upcoming", page)
}

// NowPlaying returns movies currently in theatres.
func (s *MovieService) NowPlaying(ctx context.Context, page int) (datatypes.JSON, error) {
	return s.listing(ctx, cache.ClassNowPlaying, "/movie/now_playing", page)
}

// Details returns full metadata for one movie.
func (s *MovieService) Details(ctx context.Context, id int) (datatypes.JSON, error) {
	return s.subject(ctx, cache.ClassDetails, fmt.Sprintf("/movie/%d", id), id)
}

// Credits returns cast and crew for one movie.
func (s *MovieService) Credits(ctx context.Context, id int) (datatypes.JSON, error) {
	return s.subject(ctx, cache.ClassCredits, fmt.Sprintf("/movie/%d/credits", id), id)
}

// Videos returns trailers and clips for one movie.
func (s *MovieService) Videos(ctx context.Context, id int) (datatypes.JSON, error) {
	return s.subject(ctx, cache.ClassVideos, fmt.Sprintf("/movie/%d/videos", id), id)
}

// Similar returns titles similar to the supplied movie.
func (s *MovieService) Similar(ctx context.Context, id, page int) (datatypes.JSON, error) {
	return s.subjectListing(ctx, cache.ClassSimilar, fmt.Sprintf("/movie/%d/similar", id), id, page)
}

// Recommendations returns recommended titles for the supplied movie.
func (s *MovieService) Recommendations(ctx context.Context, id, page int) (datatypes.JSON, error) {
	return s.subjectListing(ctx, cache.ClassRecommendations, fmt.Sprintf("/movie/%d/recommendations", id), id, page)
}

func (s *MovieService) listing(ctx context.Context, class, path string, page int) (datatypes.JSON, error) {
	page = normalisePage(page)

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Query:       url.Values{"page": []string{pageQueryValue(page)}},
		Key:         cache.Key(class, models.SubjectMovie, cache.WithPage(page)),
		Class:       class,
		SubjectKind: models.SubjectGeneral,
		TTL:         cache.TTL(class),
	})
}

func (s *MovieService) subject(ctx context.Context, class, path string, id int) (datatypes.JSON, error) {
	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Key:         cache.Key(class, models.SubjectMovie, cache.WithSubject(id)),
		Class:       class,
		SubjectID:   id,
		SubjectKind: models.SubjectMovie,
		TTL:         cache.TTL(class),
	})
}

func (s *MovieService) subjectListing(ctx context.Context, class, path string, id, page int) (datatypes.JSON, error) {
	page = normalisePage(page)

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Query:       url.Values{"page": []string{pageQueryValue(page)}},
		Key:         cache.Key(class, models.SubjectMovie, cache.WithSubject(id), cache.WithPage(page)),
		Class:       class,
		SubjectID:   id,
		SubjectKind: models.SubjectMovie,
		TTL:         cache.TTL(class),
	})
}
