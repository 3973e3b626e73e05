package hospital

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrFeedUnavailable is returned when the upstream feed cannot be fetched
// and no snapshot has ever been populated. Callers substitute a
// clearly-labeled placeholder estimate instead of failing the request.
var ErrFeedUnavailable = errors.New("facility feed unavailable")

// Cache is a TTL-bounded snapshot cache in front of the slow, unreliable
// upstream feed. The snapshot is replaced atomically on refresh; a failed
// refresh serves the previous snapshot unchanged (stale-but-available).
// Concurrent misses coalesce onto a single upstream fetch.
type Cache struct {
	ttl   time.Duration
	group singleflight.Group

	mu        sync.RWMutex
	snapshot  *Snapshot
	fetchedAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{ttl: ttl}
}

// Get returns the cached snapshot while it is fresh, refreshing it through
// fetch otherwise. The in-flight refresh is shared across callers.
func (c *Cache) Get(ctx context.Context, fetch func(context.Context) ([]FacilityRecord, error)) (*Snapshot, error) {
	if snap := c.fresh(); snap != nil {
		return snap, nil
	}

	v, err, _ := c.group.Do("feed", func() (any, error) {
		// A waiter queued behind the winning refresh may arrive here after
		// the swap; the fresh snapshot makes the extra fetch unnecessary.
		if snap := c.fresh(); snap != nil {
			return snap, nil
		}

		facilities, err := fetch(ctx)
		if err != nil {
			if stale := c.current(); stale != nil {
				return stale, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		}

		snap := &Snapshot{Facilities: facilities, FetchedAt: time.Now()}
		c.mu.Lock()
		c.snapshot = snap
		c.fetchedAt = snap.FetchedAt
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (c *Cache) fresh() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.snapshot
	}
	return nil
}

func (c *Cache) current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}
