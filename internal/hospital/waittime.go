package hospital

import (
	"strconv"
	"strings"
)

// ParseWaitMinutes converts a feed wait string like "2 hr 30 min" to total
// minutes. Malformed segments count as 0, so "Closed" and
// "Wait times unavailable" both parse to 0 minutes. That is a documented
// simplification: a closed site scores as if it had no wait.
func ParseWaitMinutes(wait string) int {
	if wait == "" {
		return 0
	}
	wait = strings.ToLower(wait)

	hours, minutes := 0, 0
	if strings.Contains(wait, "hr") {
		parts := strings.SplitN(wait, "hr", 2)
		hours, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
		if strings.Contains(parts[1], "min") {
			minutes, _ = strconv.Atoi(strings.TrimSpace(strings.Replace(parts[1], "min", "", 1)))
		}
	} else if strings.Contains(wait, "min") {
		minutes, _ = strconv.Atoi(strings.TrimSpace(strings.Replace(wait, "min", "", 1)))
	}
	return hours*60 + minutes
}
