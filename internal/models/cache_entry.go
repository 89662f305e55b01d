package models

import (
	"time"

	"gorm.io/datatypes"
)

// Subject kinds attached to cached metadata responses.
const (
	SubjectMovie   = "movie"
	SubjectTV      = "tv"
	SubjectGeneral = "general"
)

// CacheEntry stores one upstream metadata response together with its expiry.
// The cache key uniquely identifies the logical upstream call, so at most one
// row exists per logical call; refreshes upsert in place rather than insert.
type CacheEntry struct {
	BaseModel

	// SubjectID is the upstream numeric id of the cached subject, or 0 for
	// responses not tied to a single title (trending pages, genre lists).
	SubjectID   int    `gorm:"index" json:"subject_id"`
	SubjectKind string `gorm:"size:16;index" json:"subject_kind"`

	CacheKey string         `gorm:"size:256;uniqueIndex" json:"cache_key"`
	Payload  datatypes.JSON `json:"payload"`

	CachedAt  time.Time `json:"cached_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

// Fresh reports whether the entry may still satisfy a lookup at the supplied
// instant. An expiry exactly equal to now counts as expired.
func (e *CacheEntry) Fresh(now time.Time) bool {
	if e == nil {
		return false
	}
	return e.ExpiresAt.After(now)
}
