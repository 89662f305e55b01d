package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cinebase/cinebase/internal/models"
)

// WatchlistService manages the per-user watchlist.
type WatchlistService struct {
	db *gorm.DB
}

// NewWatchlistService constructs a watchlist service.
func NewWatchlistService(db *gorm.DB) (*WatchlistService, error) {
	if db == nil {
		return nil, errors.New("watchlist service: db is required")
	}
	return &WatchlistService{db: db}, nil
}

// AddListItemInput captures the fields stored when a title is added to a list.
type AddListItemInput struct {
	MediaKind  string
	TMDBID     int
	Title      string
	PosterPath string
}

// List returns a page of the user's watchlist, newest first.
func (s *WatchlistService) List(ctx context.Context, userID string, page, perPage int) ([]models.WatchlistItem, int64, error) {
	if s == nil {
		return nil, 0, errors.New("watchlist service: service not initialised")
	}
	ctx = ensuredContext(ctx)
	page, perPage = normaliseListPage(page, perPage)

	query := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Where("user_id = ?", strings.TrimSpace(userID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.WatchlistItem
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

// Add puts a title on the user's watchlist. Re-adding an existing title
// returns the stored item without error.
func (s *WatchlistService) Add(ctx context.Context, userID string, input AddListItemInput) (*models.WatchlistItem, error) {
	if s == nil {
		return nil, errors.New("watchlist service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	kind, ok := normaliseKind(input.MediaKind)
	if !ok {
		return nil, ErrInvalidKind
	}

	item := models.WatchlistItem{
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

		// Already present: return the existing row.
		var existing models.WatchlistItem
		lookupErr := s.db.WithContext(ctx).
			Take(&existing, "user_id = ? AND media_kind = ? AND tmdb_id = ?", item.UserID, kind, input.TMDBID).Error
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &existing, nil
	}

	return &item, nil
}

// Remove deletes a title from the user's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID, mediaKind string, tmdbID int) error {
	if s == nil {
		return errors.New("watchlist service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	kind, ok := normaliseKind(mediaKind)
	if !ok {
		return ErrInvalidKind
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND media_kind = ? AND tmdb_id = ?", strings.TrimSpace(userID), kind, tmdbID).
		Delete(&models.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Contains reports whether a title is on the user's watchlist.
func (s *WatchlistService) Contains(ctx context.Context, userID, mediaKind string, tmdbID int) (bool, error) {
	if s == nil {
		return false, errors.New("watchlist service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	kind, ok := normaliseKind(mediaKind)
	if !ok {
		return false, ErrInvalidKind
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Where("user_id = ? AND media_kind = ? AND tmdb_id = ?", strings.TrimSpace(userID), kind, tmdbID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
