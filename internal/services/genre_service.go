package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/cinebase/cinebase/internal/cache"
	"github.com/cinebase/cinebase/internal/models"
)

// GenreService serves the genre lists, the longest-lived cached responses.
type GenreService struct {
	fetcher *cache.Fetcher
}

// NewGenreService constructs a genre service.
func NewGenreService(fetcher *cache.Fetcher) (*GenreService, error) {
	if fetcher == nil {
		return nil, errors.New("genre service: fetcher is required")
	}
	return &GenreService{fetcher: fetcher}, nil
}

// MovieGenres returns the movie genre list.
func (s *GenreService) MovieGenres(ctx context.Context) (datatypes.JSON, error) {
	return s.genres(ctx, models.SubjectMovie, "/genre/movie/list")
}

// TVGenres returns the TV genre list.
func (s *GenreService) TVGenres(ctx context.Context) (datatypes.JSON, error) {
	return s.genres(ctx, models.SubjectTV, "/genre/tv/list")
}

func (s *GenreService) genres(ctx context.Context, kind, path string) (datatypes.JSON, error) {
	return s.fetcher.Fetch(ensuredContext(ctx), cache.Request{
		Path:        path,
		Key:         cache.Key(cache.ClassGenres, kind),
		Class:       cache.ClassGenres,
		SubjectKind: models.SubjectGeneral,
		TTL:         cache.TTL(cache.ClassGenres),
	})
}
