// Package engine turns flat snapshots of time entries and cost items into
// week/day groupings and year/month financial rollups. Every function here is
// pure: same snapshot plus same criteria gives the same output, ordering
// included. Nothing is cached between calls and nothing mutates its inputs.
package engine

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// clockMinutes converts an "HH:MM" wall-clock string to minutes since
// midnight. A component that does not parse counts as zero so that malformed
// input degrades to a zero contribution instead of poisoning totals.
func clockMinutes(clock string) int {
	h, m, _ := strings.Cut(clock, ":")
	hours, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hours < 0 {
		hours = 0
	}
	mins, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil || mins < 0 {
		mins = 0
	}
	return hours*60 + mins
}

// DurationMinutes returns the elapsed minutes between two "HH:MM" wall-clock
// strings. An end before the start is read as an overnight shift ending the
// next day. The result is never negative.
func DurationMinutes(start, end string) int {
	minutes := clockMinutes(end) - clockMinutes(start)
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return minutes
}

// Hours converts minutes to fractional hours.
func Hours(minutes int) float64 {
	return float64(minutes) / 60
}
