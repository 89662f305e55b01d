package models

// FavoriteItem marks a title a user has favourited. Same identity rules as
// the watchlist: one row per (user, media kind, tmdb id).
type FavoriteItem struct {
	BaseModel

	UserID    string `gorm:"size:128;index;uniqueIndex:idx_favorite_identity" json:"user_id"`
	MediaKind string `gorm:"size:16;uniqueIndex:idx_favorite_identity" json:"media_kind"`
	TMDBID    int    `gorm:"uniqueIndex:idx_favorite_identity" json:"tmdb_id"`

	Title      string `gorm:"size:512" json:"title"`
	PosterPath string `gorm:"size:256" json:"poster_path"`
}
