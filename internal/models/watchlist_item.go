package models

// WatchlistItem marks a title a user intends to watch. One row per
// (user, media kind, tmdb id); re-adding an existing title is a no-op.
type WatchlistItem struct {
	BaseModel

	UserID    string `gorm:"size:128;index;uniqueIndex:idx_watchlist_identity" json:"user_id"`
	MediaKind string `gorm:"size:16;uniqueIndex:idx_watchlist_identity" json:"media_kind"`
	TMDBID    int    `gorm:"uniqueIndex:idx_watchlist_identity" json:"tmdb_id"`

	// Denormalised display fields captured when the item was added.
	Title      string `gorm:"size:512" json:"title"`
	PosterPath string `gorm:"size:256" json:"poster_path"`
}
