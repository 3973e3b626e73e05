package hospital

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	facilityKeyPrefix = "facility:"
	facilityCountKey  = "facility:count"
)

// Store keeps the latest flattened facility snapshot in redis so readers
// (the /ed-waits endpoint, other processes) can see it without hitting the
// upstream feed. Writes are replace-all: one full snapshot per cycle.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// ReplaceAll writes the snapshot under facility:1..N plus facility:count in
// a single pipeline.
func (s *Store) ReplaceAll(ctx context.Context, facilities []FacilityRecord) error {
	pipe := s.rdb.TxPipeline()
	for i, facility := range facilities {
		data, err := json.Marshal(facility)
		if err != nil {
			return fmt.Errorf("marshal facility %q: %w", facility.Name, err)
		}
		pipe.Set(ctx, facilityKeyPrefix+strconv.Itoa(i+1), data, 0)
	}
	pipe.Set(ctx, facilityCountKey, len(facilities), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store facility snapshot: %w", err)
	}
	return nil
}

// All reads the stored snapshot, sorted by facility name. Entries that fail
// to decode are skipped.
func (s *Store) All(ctx context.Context) ([]FacilityRecord, error) {
	count, err := s.rdb.Get(ctx, facilityCountKey).Int()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("read facility count: %w", err)
	}

	facilities := make([]FacilityRecord, 0, count)
	for i := 1; i <= count; i++ {
		data, err := s.rdb.Get(ctx, facilityKeyPrefix+strconv.Itoa(i)).Bytes()
		if err != nil {
			continue
		}
		var facility FacilityRecord
		if err := json.Unmarshal(data, &facility); err != nil {
			continue
		}
		if facility.Name == "" {
			continue
		}
		facilities = append(facilities, facility)
	}
	sort.Slice(facilities, func(i, j int) bool {
		return facilities[i].Name < facilities[j].Name
	})
	return facilities, nil
}
