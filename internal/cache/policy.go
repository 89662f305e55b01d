package cache

import (
	"fmt"
	"strings"
	"time"
)

// Endpoint classes recognised by the TTL policy. The class is the first
// component of every cache key.
const (
	ClassTrending        = "trending"
	ClassPopular         = "popular"
	ClassTopRated        = "top_rated"
	ClassUpcoming        = "upcoming"
	ClassNowPlaying      = "now_playing"
	ClassDetails         = "details"
	ClassCredits         = "credits"
	ClassVideos          = "videos"
	ClassGenres          = "genres"
	ClassSimilar         = "similar"
	ClassRecommendations = "recommendations"
	ClassSearch          = "search"
	ClassDiscover        = "discover"
)

// ttlPolicy maps endpoint classes to their time-to-live. A zero duration
// means the class bypasses the cache entirely.
var ttlPolicy = map[string]time.Duration{
	ClassTrending:        6 * time.Hour,
	ClassPopular:         12 * time.Hour,
	ClassTopRated:        12 * time.Hour,
	ClassUpcoming:        12 * time.Hour,
	ClassNowPlaying:      3 * time.Hour,
	ClassDetails:         7 * 24 * time.Hour,
	ClassCredits:         7 * 24 * time.Hour,
	ClassVideos:          7 * 24 * time.Hour,
	ClassGenres:          30 * 24 * time.Hour,
	ClassSimilar:         24 * time.Hour,
	ClassRecommendations: 24 * time.Hour,
	ClassSearch:          0,
	ClassDiscover:        0,
}

// TTL returns the policy duration for an endpoint class. Unknown classes
// bypass the cache rather than caching with a guessed lifetime.
func TTL(class string) time.Duration {
	return ttlPolicy[strings.ToLower(strings.TrimSpace(class))]
}

type keyParts struct {
	subjectID int
	page      int
	window    string
}

// KeyOption appends an optional component to a cache key.
type KeyOption func(*keyParts)

// WithSubject encodes the upstream numeric id of the cached subject.
func WithSubject(id int) KeyOption {
	return func(p *keyParts) {
		p.subjectID = id
	}
}

// WithPage encodes the result page number.
func WithPage(page int) KeyOption {
	return func(p *keyParts) {
		p.page = page
	}
}

// WithWindow encodes the trending time window ("day" or "week").
func WithWindow(window string) KeyOption {
	return func(p *keyParts) {
		p.window = strings.ToLower(strings.TrimSpace(window))
	}
}

// Key builds the deterministic identity of a logical upstream call:
// {class}_{mediaKind}[_{subjectID}][_p{page}][_{window}]. It is a pure
// function of the request; caller identity and wall-clock time never
// participate, so identical requests share an entry and distinct requests
// never collide.
func Key(class, mediaKind string, opts ...KeyOption) string {
	parts := keyParts{}
	for _, opt := range opts {
		opt(&parts)
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(class)))
	b.WriteString("_")
	b.WriteString(strings.ToLower(strings.TrimSpace(mediaKind)))

	if parts.subjectID > 0 {
		fmt.Fprintf(&b, "_%d", parts.subjectID)
	}
	if parts.page > 0 {
		fmt.Fprintf(&b, "_p%d", parts.page)
	}
	if parts.window != "" {
		b.WriteString("_")
		b.WriteString(parts.window)
	}

	return b.String()
}
