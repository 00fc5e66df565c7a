package prescription

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses prescription durations of the form "<n> <unit>",
// where unit is hour, day, week or month, singular or plural. A month
// counts as 30 days. Anything else does not parse.
func ParseDuration(s string) (time.Duration, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) != 2 {
		return 0, false
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, false
	}

	unit := strings.TrimSuffix(fields[1], "s")
	var per time.Duration
	switch unit {
	case "hour":
		per = time.Hour
	case "day":
		per = 24 * time.Hour
	case "week":
		per = 7 * 24 * time.Hour
	case "month":
		per = 30 * 24 * time.Hour
	default:
		return 0, false
	}

	return time.Duration(n) * per, true
}
