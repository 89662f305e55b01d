package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cinebase/cinebase/internal/models"
)

// HistoryService manages the per-user viewing history. History is
// append-only: repeated views create separate entries.
type HistoryService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewHistoryService constructs a history service.
func NewHistoryService(db *gorm.DB) (*HistoryService, error) {
	if db == nil {
		return nil, errors.New("history service: db is required")
	}
	return &HistoryService{db: db, now: time.Now}, nil
}

// List returns a page of the user's history, most recent view first.
func (s *HistoryService) List(ctx context.Context, userID string, page, perPage int) ([]models.HistoryEntry, int64, error) {
	if s == nil {
		return nil, 0, errors.New("history service: service not initialised")
	}
	ctx = ensuredContext(ctx)
	page, perPage = normaliseListPage(page, perPage)

	query := s.db.WithContext(ctx).Model(&models.HistoryEntry{}).
		Where("user_id = ?", strings.TrimSpace(userID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.HistoryEntry
	err := query.
		Order("viewed_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Record appends a view to the user's history.
func (s *HistoryService) Record(ctx context.Context, userID string, input AddListItemInput) (*models.HistoryEntry, error) {
	if s == nil {
		return nil, errors.New("history service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	kind, ok := normaliseKind(input.MediaKind)
	if !ok {
		return nil, ErrInvalidKind
	}

	entry := models.HistoryEntry{
		UserID:     strings.TrimSpace(userID),
		MediaKind:  kind,
		TMDBID:     input.TMDBID,
		Title:      strings.TrimSpace(input.Title),
		PosterPath: strings.TrimSpace(input.PosterPath),
		ViewedAt:   s.now(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Remove deletes a single history entry owned by the user.
func (s *HistoryService) Remove(ctx context.Context, userID, entryID string) error {
	if s == nil {
		return errors.New("history service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", strings.TrimSpace(entryID), strings.TrimSpace(userID)).
		Delete(&models.HistoryEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Clear removes the user's entire history.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int64, error) {
	if s == nil {
		return 0, errors.New("history service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Delete(&models.HistoryEntry{})
	return res.RowsAffected, res.Error
}

// DeleteOlderThan prunes history entries viewed before the cutoff. Used by
// the maintenance cleaner.
func (s *HistoryService) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil {
		return 0, errors.New("history service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	res := s.db.WithContext(ctx).
		Where("viewed_at < ?", cutoff).
		Delete(&models.HistoryEntry{})
	return res.RowsAffected, res.Error
}
