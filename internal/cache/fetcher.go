// Package cache implements the read-through response cache that fronts the
// upstream metadata API: lookups are keyed by the logical identity of a call
// and filtered by a per-endpoint-class expiry; misses fetch upstream once and
// persist the verbatim payload.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/pkg/logger"
	"github.com/cinebase/cinebase/pkg/metrics"
)

// Upstream is the outbound API collaborator. *tmdb.Client satisfies it.
type Upstream interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
}

// Request describes one logical upstream call to serve through the cache.
type Request struct {
	// Path is the upstream API path called on a miss, with path parameters
	// already substituted.
	Path string
	// Query carries upstream query parameters fixed per call site. Anything
	// that affects the response must also be encoded into Key.
	Query url.Values

	// Key is the deterministic identity of the call, built via Key().
	Key string
	// Class selects the TTL policy row; used for metrics labels too.
	Class string

	// SubjectID and SubjectKind categorise the stored entry. SubjectID is 0
	// for responses not tied to a single title.
	SubjectID   int
	SubjectKind string

	// TTL is the caller-selected policy duration. Zero or negative bypasses
	// the cache entirely: no lookup, no write.
	TTL time.Duration
}

// Fetcher is the cache-fronted fetcher. It holds no mutable state of its own;
// the durable store is shared across concurrent invocations. Concurrent
// misses for one key may each call upstream (no per-key in-flight dedup); the
// upsert keyed on the full cache key keeps the table at one row per call.
type Fetcher struct {
	upstream Upstream
	store    EntryStore
	now      func() time.Time
	log      *zap.Logger
}

// FetcherOption customises the Fetcher.
type FetcherOption func(*Fetcher)

// WithClock overrides the clock, primarily for tests.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFetcher constructs the read-through fetcher from its collaborators.
func NewFetcher(upstream Upstream, store EntryStore, opts ...FetcherOption) (*Fetcher, error) {
	if upstream == nil {
		return nil, errors.New("cache: upstream client is required")
	}
	if store == nil {
		return nil, errors.New("cache: entry store is required")
	}

	fetcher := &Fetcher{
		upstream: upstream,
		store:    store,
		now:      time.Now,
		log:      logger.WithModule("cache"),
	}

	for _, opt := range opts {
		opt(fetcher)
	}

	return fetcher, nil
}

// Fetch serves one logical request: a stored entry whose expiry is strictly
// in the future is returned verbatim without network I/O; otherwise upstream
// is called exactly once and, on success, the payload is stored with
// expiry = now + TTL. Upstream failures surface unwrapped; no entry is
// written and no stale payload is served in their place. A store write
// failure after a successful fetch is logged and the fresh payload returned.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (datatypes.JSON, error) {
	if f == nil {
		return nil, errors.New("cache: fetcher not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, errors.New("cache: request path is required")
	}

	class := req.Class
	if class == "" {
		class = "unknown"
	}

	if req.TTL <= 0 {
		metrics.CacheLookups.WithLabelValues(class, "bypass").Inc()
		return f.fetchUpstream(ctx, req)
	}

	if strings.TrimSpace(req.Key) == "" {
		return nil, errors.New("cache: cache key is required for cached classes")
	}

	now := f.now()
	entry, found, err := f.store.Lookup(ctx, req.Key, now)
	if err != nil {
		return nil, err
	}
	if found {
		metrics.CacheLookups.WithLabelValues(class, "hit").Inc()
		f.log.Debug("cache hit", zap.String("key", req.Key))
		return entry.Payload, nil
	}

	metrics.CacheLookups.WithLabelValues(class, "miss").Inc()
	f.log.Debug("cache miss", zap.String("key", req.Key), zap.String("path", req.Path))

	payload, err := f.fetchUpstream(ctx, req)
	if err != nil {
		return nil, err
	}

	kind := req.SubjectKind
	if kind == "" {
		kind = models.SubjectGeneral
	}

	entry = &models.CacheEntry{
		SubjectID:   req.SubjectID,
		SubjectKind: kind,
		CacheKey:    req.Key,
		Payload:     datatypes.JSON(payload),
		CachedAt:    now,
		ExpiresAt:   now.Add(req.TTL),
	}

	// Cache population survives request abandonment: the write runs under a
	// detached context so a cancelled caller still leaves a warm entry.
	if err := f.store.Save(context.WithoutCancel(ctx), entry); err != nil {
		f.log.Warn("cache write failed; serving fetched payload",
			zap.String("key", req.Key),
			zap.Error(err),
		)
	}

	return datatypes.JSON(payload), nil
}

func (f *Fetcher) fetchUpstream(ctx context.Context, req Request) (datatypes.JSON, error) {
	payload, err := f.upstream.Get(ctx, req.Path, req.Query)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(payload), nil
}

// FetchAs runs Fetch and decodes the payload into T for typed callers.
func FetchAs[T any](ctx context.Context, f *Fetcher, req Request) (T, error) {
	var out T

	payload, err := f.Fetch(ctx, req)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return out, err
	}
	return out, nil
}
