package hospital

import (
	"context"
	"log/slog"
	"time"
)

// Updater is the periodic job that pulls the upstream feed, joins known
// coordinates and replaces the stored snapshot. One updater per deployment.
type Updater struct {
	feed     *FeedClient
	dir      *Directory
	resolver *Resolver
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

func NewUpdater(feed *FeedClient, dir *Directory, store *Store, interval time.Duration, logger *slog.Logger) *Updater {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		feed:     feed,
		dir:      dir,
		resolver: NewResolver(),
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
// A failed cycle is logged and skipped; the previous snapshot stays in
// place.
func (u *Updater) Run(ctx context.Context) error {
	if err := u.RefreshOnce(ctx); err != nil {
		u.logger.Warn("initial facility refresh failed", "error", err)
	}

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := u.RefreshOnce(ctx); err != nil {
				u.logger.Warn("facility refresh failed", "error", err)
			}
		}
	}
}

// RefreshOnce performs one fetch-join-store cycle.
func (u *Updater) RefreshOnce(ctx context.Context) error {
	facilities, err := u.feed.Fetch(ctx)
	if err != nil {
		return err
	}

	known := u.dir.Snapshot()
	resolved := 0
	for i := range facilities {
		if coord, ok := u.resolver.Resolve(facilities[i].Name, known); ok {
			c := coord
			facilities[i].Coordinates = &c
			resolved++
		}
	}

	if u.store != nil {
		if err := u.store.ReplaceAll(ctx, facilities); err != nil {
			return err
		}
	}
	u.logger.Info("facility snapshot updated", "facilities", len(facilities), "with_coordinates", resolved)
	return nil
}
