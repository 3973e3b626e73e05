package hospital

import "time"

// Category is the care tier a facility serves.
type Category string

const (
	CategoryEmergency   Category = "Emergency"
	CategoryUrgent      Category = "Urgent"
	CategoryPrimaryCare Category = "PrimaryCare"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FacilityRecord is one facility flattened out of the upstream
// region -> category -> facility feed. Records are replaced wholesale on
// every successful fetch and never mutated in place.
type FacilityRecord struct {
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Region      string      `json:"region"`
	WaitTime    string      `json:"wait_time"`
	Note        string      `json:"note,omitempty"`
	Address     string      `json:"address,omitempty"`
	URL         string      `json:"url,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
}

// Status distinguishes an acceptable wait from one over the long-wait
// threshold. It is independent of ranking position.
type Status string

const (
	StatusRecommended Status = "Recommended"
	StatusLongWait    Status = "LongWait"
)

// RankedRecommendation is one entry of a recommendation list. Created fresh
// per call and never persisted.
type RankedRecommendation struct {
	Facility      FacilityRecord `json:"facility"`
	DistanceKm    float64        `json:"distance_km"`
	WaitMinutes   int            `json:"wait_minutes"`
	CombinedScore float64        `json:"combined_score"`
	Status        Status         `json:"status"`
	Label         string         `json:"label"`
}

// Snapshot is one full feed cycle. Owned by the cache and replaced
// atomically; readers never observe a partial update.
type Snapshot struct {
	Facilities []FacilityRecord
	FetchedAt  time.Time
}

// PlaceholderEstimate is the clearly-labeled substitute served when the
// upstream feed is unavailable and no snapshot has ever been populated.
type PlaceholderEstimate struct {
	Facility         string `json:"facility"`
	PredictedWaitMin int    `json:"predicted_wait_minutes"`
	Note             string `json:"note"`
}
