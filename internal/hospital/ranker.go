package hospital

import "sort"

const (
	// maxRecommendations caps every recommendation list.
	maxRecommendations = 3
	// longWaitThresholdMin flags waits above this as LongWait.
	longWaitThresholdMin = 120
	// distanceWeight weights kilometres against wait minutes in the
	// combined score.
	distanceWeight = 2
)

const (
	labelBalanced    = "Recommended / balanced choice"
	labelAlternative = "Alternative option"
)

// levelCategory maps an urgency level onto the facility tier that serves
// it. SelfCare and Pharmacy deliberately have no mapping: routine care does
// not warrant facility routing.
var levelCategory = map[string]Category{
	"Emergency":   CategoryEmergency,
	"Urgent":      CategoryUrgent,
	"PrimaryCare": CategoryPrimaryCare,
}

// Ranker turns a facility snapshot into a ranked shortlist for one urgency
// level and patient location.
type Ranker struct {
	resolver *Resolver
}

func NewRanker(resolver *Resolver) *Ranker {
	return &Ranker{resolver: resolver}
}

// Recommend filters facilities to the level's tier, scores every candidate
// with a resolvable coordinate by wait_minutes + 2*distance_km, and returns
// at most three entries in non-decreasing score order. Candidates without a
// resolvable coordinate are omitted, never scored at distance zero.
func (r *Ranker) Recommend(level string, patientLat, patientLng float64, facilities []FacilityRecord, known map[string]Coordinate) []RankedRecommendation {
	category, ok := levelCategory[level]
	if !ok {
		return nil
	}

	var ranked []RankedRecommendation
	for _, facility := range facilities {
		if facility.Category != category {
			continue
		}

		coord, found := facility.Coordinates, facility.Coordinates != nil
		var c Coordinate
		if found {
			c = *coord
		} else {
			c, found = r.resolver.Resolve(facility.Name, known)
		}
		if !found {
			continue
		}

		wait := ParseWaitMinutes(facility.WaitTime)
		dist := DistanceKm(patientLat, patientLng, c.Lat, c.Lng)
		status := StatusRecommended
		if wait > longWaitThresholdMin {
			status = StatusLongWait
		}

		ranked = append(ranked, RankedRecommendation{
			Facility:      facility,
			DistanceKm:    dist,
			WaitMinutes:   wait,
			CombinedScore: float64(wait) + distanceWeight*dist,
			Status:        status,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore < ranked[j].CombinedScore
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	for i := range ranked {
		if i == 0 {
			ranked[i].Label = labelBalanced
		} else {
			ranked[i].Label = labelAlternative
		}
	}
	return ranked
}
