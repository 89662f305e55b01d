package models

import "time"

// HistoryEntry records that a user viewed a title. History is append-only;
// repeated views of the same title create separate entries.
type HistoryEntry struct {
	BaseModel

	UserID    string `gorm:"size:128;index:idx_history_user" json:"user_id"`
	MediaKind string `gorm:"size:16" json:"media_kind"`
	TMDBID    int    `json:"tmdb_id"`

	Title      string    `gorm:"size:512" json:"title"`
	PosterPath string    `gorm:"size:256" json:"poster_path"`
	ViewedAt   time.Time `gorm:"index" json:"viewed_at"`
}
