package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"gorm.io/datatypes"

	"github.com/cinebase/cinebase/internal/cache"
)

// SearchService serves free-text search and filtered discovery. These
// classes bypass the cache entirely: every invocation calls upstream.
type SearchService struct {
	fetcher *cache.Fetcher
}

// NewSearchService constructs a search service.
func NewSearchService(fetcher *cache.Fetcher) (*SearchService, error) {
	if fetcher == nil {
		return nil, errors.New("search service: fetcher is required")
	}
	return &SearchService{fetcher: fetcher}, nil
}

// SearchMovies searches movies by free text.
func (s *SearchService) SearchMovies(ctx context.Context, query string, page int) (datatypes.JSON, error) {
	return s.search(ctx, "/search/movie", query, page)
}

// SearchTV searches shows by free text.
func (s *SearchService) SearchTV(ctx context.Context, query string, page int) (datatypes.JSON, error) {
	return s.search(ctx, "/search/tv", query, page)
}

// SearchMulti searches movies, shows and people in one call.
func (s *SearchService) SearchMulti(ctx context.Context, query string, page int) (datatypes.JSON, error) {
	return s.search(ctx, "/search/multi", query, page)
}

// Discover runs filtered discovery for the supplied media kind. Filters are
// passed through to the upstream verbatim.
func (s *SearchService) Discover(ctx context.Context, kind string, filters map[string]string, page int) (datatypes.JSON, error) {
	kind, ok := normaliseKind(kind)
	if !ok {
		return nil, ErrInvalidKind
	}

	values := url.Values{}
	for key, value := range filters {
		key = strings.TrimSpace(key)
		if key == "" || key == "page" || key == "api_key" {
			continue
		}
		values.Set(key, value)
	}
	values.Set("page", pageQueryValue(page))

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:  "/discover/" + kind,
		Query: values,
		Class: cache.ClassDiscover,
		TTL:   cache.TTL(cache.ClassDiscover),
	})
}

func (s *SearchService) search(ctx context.Context, path, query string, page int) (datatypes.JSON, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("page", pageQueryValue(page))

	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:  path,
		Query: values,
		Class: cache.ClassSearch,
		TTL:   cache.TTL(cache.ClassSearch),
	})
}
