// Package maintenance runs the periodic cleanup job: expired cache rows and
// aged history entries are pruned on a cron schedule.
package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cinebase/cinebase/pkg/logger"
	"github.com/cinebase/cinebase/pkg/metrics"
)

// CacheStore is the slice of the cache store the cleaner needs.
type CacheStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// HistoryPruner removes viewing history older than a cutoff.
type HistoryPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Cleaner prunes expired cache entries and aged history on a schedule.
type Cleaner struct {
	store            CacheStore
	history          HistoryPruner
	historyRetention time.Duration
	schedule         string

	cron *cron.Cron
	log  *zap.Logger
	now  func() time.Time
}

// Options configures the cleaner.
type Options struct {
	// Schedule is a cron expression; defaults to hourly.
	Schedule string
	// HistoryRetention bounds how long viewing history is kept. Zero
	// disables history pruning.
	HistoryRetention time.Duration
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// NewCleaner constructs the maintenance cleaner. The history pruner may be
// nil when history pruning is disabled.
func NewCleaner(store CacheStore, history HistoryPruner, opts Options) (*Cleaner, error) {
	if store == nil {
		return nil, errors.New("maintenance: cache store is required")
	}

	schedule := opts.Schedule
	if schedule == "" {
		schedule = "@hourly"
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	return &Cleaner{
		store:            store,
		history:          history,
		historyRetention: opts.HistoryRetention,
		schedule:         schedule,
		log:              logger.WithModule("maintenance"),
		now:              now,
	}, nil
}

// Start schedules the cleanup job. It returns after the scheduler is running.
func (c *Cleaner) Start() error {
	if c == nil {
		return errors.New("maintenance: cleaner not initialised")
	}
	if c.cron != nil {
		return errors.New("maintenance: cleaner already started")
	}

	runner := cron.New()
	_, err := runner.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("cleanup run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	c.cron = runner
	runner.Start()
	c.log.Info("cleanup scheduled", zap.String("schedule", c.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (c *Cleaner) Stop() {
	if c == nil || c.cron == nil {
		return
	}
	<-c.cron.Stop().Done()
	c.cron = nil
}

// RunOnce executes a single cleanup pass. Both prune steps run even when one
// fails; errors are combined.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if c == nil {
		return errors.New("maintenance: cleaner not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := c.now()
	var errs error

	removed, err := c.store.DeleteExpired(ctx, now)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if removed > 0 {
		c.log.Info("pruned expired cache entries", zap.Int64("removed", removed))
	}

	if c.history != nil && c.historyRetention > 0 {
		cutoff := now.Add(-c.historyRetention)
		removed, err := c.history.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if removed > 0 {
			c.log.Info("pruned aged history entries", zap.Int64("removed", removed))
		}
	}

	if count, err := c.store.Count(ctx); err == nil {
		metrics.CacheEntries.Set(float64(count))
	}

	return errs
}
