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

// TVService serves TV catalog endpoints through the read-through cache.
type TVService struct {
	fetcher *cache.Fetcher
}

// NewTVService constructs a TV catalog service.
func NewTVService(fetcher *cache.Fetcher) (*TVService, error) {
	if fetcher == nil {
		return nil, errors.New("tv service: fetcher is required")
	}
	return &TVService{fetcher: fetcher}, nil
}

// Trending returns trending shows for the supplied time window.
func (s *TVService) Trending(ctx context.Context, window string, page int) (datatypes.JSON, error) {
	window, ok := normaliseWindow(window)
	if !ok {
		return nil, ErrInvalidWindow
	}
	page = normalisePage(page)

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        fmt.Sprintf("/trending/tv/%s", window),
		Query:       url.Values{"page": []string{pageQueryValue(page)}},
		Key:         cache.Key(cache.ClassTrending, models.SubjectTV, cache.WithPage(page), cache.WithWindow(window)),
		Class:       cache.ClassTrending,
		SubjectKind: models.SubjectGeneral,
		TTL:         cache.TTL(cache.ClassTrending),
	})
}

// Popular returns the popular show listing.
func (s *TVService) Popular(ctx context.Context, page int) (datatypes.JSON, error) {
	return s.listing(ctx, cache.ClassPopular, "/tv/popular", page)
}

// TopRated returns the top-rated show listing.
func (s *TVService) TopRated(ctx context.Context, page int) (datatypes.JSON, error) {
	return s.listing(ctx, cache.ClassTopRated, "/tv/top_rated", page)
}

// Details returns full metadata for one show.
func (s *TVService) Details(ctx context.Context, id int) (datatypes.JSON, error) {
	return s.subject(ctx, cache.ClassDetails, fmt.Sprintf("/tv/%d", id), id)
}

// Credits returns cast and crew for one show.
func (s *TVService) Credits(ctx context.Context, id int) (datatypes.JSON, error) {
	return s.subject(ctx, cache.ClassCredits, fmt.Sprintf("/tv/%d/credits", id), id)
}

// Videos returns trailers and clips for one show.
func (s *TVService) Videos(ctx context.Context, id int) (datatypes.JSON, error) {
	return s.subject(ctx, cache.ClassVideos, fmt.Sprintf("/tv/%d/videos", id), id)
}

// Similar returns shows similar to the supplied one.
func (s *TVService) Similar(ctx context.Context, id, page int) (datatypes.JSON, error) {
	return s.subjectListing(ctx, cache.ClassSimilar, fmt.Sprintf("/tv/%d/similar", id), id, page)
}

// Recommendations returns recommended shows for the supplied one.
func (s *TVService) Recommendations(ctx context.Context, id, page int) (datatypes.JSON, error) {
	return s.subjectListing(ctx, cache.ClassRecommendations, fmt.Sprintf("/tv/%d/recommendations", id), id, page)
}

func (s *TVService) listing(ctx context.Context, class, path string, page int) (datatypes.JSON, error) {
	page = normalisePage(page)

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Query:       url.Values{"page": []string{pageQueryValue(page)}},
		Key:         cache.Key(class, models.SubjectTV, cache.WithPage(page)),
		Class:       class,
		SubjectKind: models.SubjectGeneral,
		TTL:         cache.TTL(class),
	})
}

func (s *TVService) subject(ctx context.Context, class, path string, id int) (datatypes.JSON, error) {
	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Key:         cache.Key(class, models.SubjectTV, cache.WithSubject(id)),
		Class:       class,
		SubjectID:   id,
		SubjectKind: models.SubjectTV,
		TTL:         cache.TTL(class),
	})
}

func (s *TVService) subjectListing(ctx context.Context, class, path string, id, page int) (datatypes.JSON, error) {
	page = normalisePage(page)

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Query:       url.Values{"page": []string{pageQueryValue(page)}},
		Key:         cache.Key(class, models.SubjectTV, cache.WithSubject(id), cache.WithPage(page)),
		Class:       class,
		SubjectID:   id,
		SubjectKind: models.SubjectTV,
		TTL:         cache.TTL(class),
	})
}
