package hospital

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// matchThreshold is the minimum similarity (0-100) for accepting a
// name-to-coordinate resolution.
const matchThreshold = 80

// Resolver maps noisy facility names from the feed onto known coordinate
// records. The feed carries no stable identifiers, so names are all we have.
type Resolver struct {
	threshold int
}

func NewResolver() *Resolver {
	return &Resolver{threshold: matchThreshold}
}

// Resolve finds the best fuzzy match for rawName among the known names and
// returns its coordinate when the similarity clears the threshold. Below
// threshold it returns false; the caller must drop the facility from
// distance-based ranking rather than guess a location.
func (r *Resolver) Resolve(rawName string, known map[string]Coordinate) (Coordinate, bool) {
	name := strings.ToLower(strings.TrimSpace(rawName))
	if name == "" || len(known) == 0 {
		return Coordinate{}, false
	}

	bestScore := -1
	var bestCoord Coordinate
	for candidate, coord := range known {
		normalized := strings.ToLower(strings.TrimSpace(candidate))
		if normalized == name {
			return coord, true
		}
		if score := fuzzy.WRatio(name, normalized); score > bestScore {
			bestScore = score
			bestCoord = coord
		}
	}

	if bestScore < r.threshold {
		return Coordinate{}, false
	}
	return bestCoord, true
}
