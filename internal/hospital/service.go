package hospital

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
)

// ErrNoFacilities is returned when the feed is reachable but carries no
// facility usable for the request.
var ErrNoFacilities = errors.New("no facilities available")

// Service is the recommendation entry point. It is a pure function of its
// inputs plus the cached feed and the coordinate directory; the only shared
// mutable state is the cache, which handles its own synchronization.
type Service struct {
	feed   *FeedClient
	cache  *Cache
	dir    *Directory
	ranker *Ranker
	store  *Store // optional
	logger *slog.Logger
}

func NewService(feed *FeedClient, cache *Cache, dir *Directory, ranker *Ranker, store *Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		feed:   feed,
		cache:  cache,
		dir:    dir,
		ranker: ranker,
		store:  store,
		logger: logger,
	}
}

// Recommend returns at most three facilities for the given urgency level
// and patient location, sorted by combined wait+distance score. SelfCare
// and Pharmacy levels always yield an empty list.
func (s *Service) Recommend(ctx context.Context, level string, lat, lng float64) ([]RankedRecommendation, error) {
	if _, routed := levelCategory[level]; !routed {
		return nil, nil
	}

	snap, err := s.cache.Get(ctx, s.feed.Fetch)
	if err != nil {
		return nil, err
	}
	return s.ranker.Recommend(level, lat, lng, snap.Facilities, s.dir.Snapshot()), nil
}

// RegionRecommendation is the single best-in-region pick of RecommendByRegion.
type RegionRecommendation struct {
	Facility    FacilityRecord `json:"facility"`
	WaitMinutes int            `json:"wait_minutes"`
	Status      Status         `json:"status"`
	Note        string         `json:"note"`
}

// RecommendByRegion picks the facility with the shortest wait among those
// whose region contains location (case-insensitive).
func (s *Service) RecommendByRegion(ctx context.Context, location string) (*RegionRecommendation, error) {
	snap, err := s.cache.Get(ctx, s.feed.Fetch)
	if err != nil {
		return nil, err
	}

	var best *FacilityRecord
	bestWait := 0
	for i := range snap.Facilities {
		facility := &snap.Facilities[i]
		if !strings.Contains(strings.ToLower(facility.Region), strings.ToLower(location)) {
			continue
		}
		wait := ParseWaitMinutes(facility.WaitTime)
		if best == nil || wait < bestWait {
			best = facility
			bestWait = wait
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w for region %q", ErrNoFacilities, location)
	}

	status := StatusRecommended
	if bestWait > longWaitThresholdMin {
		status = StatusLongWait
	}
	return &RegionRecommendation{
		Facility:    *best,
		WaitMinutes: bestWait,
		Status:      status,
		Note:        "Best option in region based on current data.",
	}, nil
}

// LatestWaitTimes serves the most recent flattened snapshot: the redis
// store when available, the cached feed otherwise.
func (s *Service) LatestWaitTimes(ctx context.Context) ([]FacilityRecord, error) {
	if s.store != nil {
		facilities, err := s.store.All(ctx)
		if err == nil && len(facilities) > 0 {
			return facilities, nil
		}
		if err != nil {
			s.logger.Warn("facility store read failed, falling back to feed", "error", err)
		}
	}

	snap, err := s.cache.Get(ctx, s.feed.Fetch)
	if err != nil {
		return nil, err
	}
	return snap.Facilities, nil
}

// Placeholder builds the substitute estimate served when the feed has never
// been reachable.
func Placeholder() PlaceholderEstimate {
	return PlaceholderEstimate{
		Facility:         "AI-Predicted Facility",
		PredictedWaitMin: 30 + rand.IntN(121),
		Note:             "Fallback prediction; live wait-time data unavailable.",
	}
}
