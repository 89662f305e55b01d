package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cinebase/cinebase/internal/models"
)

// FavoriteService manages the per-user favorites list.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService constructs a favorites service.
func NewFavoriteService(db *gorm.DB) (*FavoriteService, error) {
	if db == nil {
		return nil, errors.New("favorite service: db is required")
	}
	return &FavoriteService{db: db}, nil
}

// List returns a page of the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string, page, perPage int) ([]models.FavoriteItem, int64, error) {
	if s == nil {
		return nil, 0, errors.New("favorite service: service not initialised")
	}
	ctx = ensuredContext(ctx)
	page, perPage = normaliseListPage(page, perPage)

	query := s.db.WithContext(ctx).Model(&models.FavoriteItem{}).
		Where("user_id = ?", strings.TrimSpace(userID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.FavoriteItem
	err := query.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Add marks a title as a favorite. Re-adding is a no-op returning the
// stored item.
func (s *FavoriteService) Add(ctx context.Context, userID string, input AddListItemInput) (*models.FavoriteItem, error) {
	if s == nil {
		return nil, errors.New("favorite service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	kind, ok := normaliseKind(input.MediaKind)
	if !ok {
		return nil, ErrInvalidKind
	}

	item := models.FavoriteItem{
		UserID:     strings.TrimSpace(userID),
		MediaKind:  kind,
		TMDBID:     input.TMDBID,
		Title:      strings.TrimSpace(input.Title),
		PosterPath: strings.TrimSpace(input.PosterPath),
	}

	err := s.db.WithContext(ctx).Create(&item).Error
	if err != nil {
		if !isUniqueConstraintError(err) {
			return nil, err
		}

		var existing models.FavoriteItem
		lookupErr := s.db.WithContext(ctx).
			Take(&existing, "user_id = ? AND media_kind = ? AND tmdb_id = ?", item.UserID, kind, input.TMDBID).Error
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &existing, nil
	}

	return &item, nil
}

// Remove deletes a favorite.
func (s *FavoriteService) Remove(ctx context.Context, userID, mediaKind string, tmdbID int) error {
	if s == nil {
		return errors.New("favorite service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	kind, ok := normaliseKind(mediaKind)
	if !ok {
		return ErrInvalidKind
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND media_kind = ? AND tmdb_id = ?", strings.TrimSpace(userID), kind, tmdbID).
		Delete(&models.FavoriteItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
