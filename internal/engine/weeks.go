package engine

import (
	"sort"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// DayGroup collects the entries of one calendar day with their minute total.
type DayGroup struct {
	Date         time.Time
	Entries      []model.TimeEntry
	TotalMinutes int
}

// WeekGroup is a Monday-aligned 7-day span of DayGroups.
type WeekGroup struct {
	Start        time.Time // Monday, midnight
	Days         []DayGroup
	TotalMinutes int
}

// GroupWeeks buckets entries into weeks and days for the activity feed,
// most recent first. Weeks with no entries never appear: the structure is
// sparse and entry-driven, not a padded calendar.
func GroupWeeks(entries []model.TimeEntry) []WeekGroup {
	sorted := make([]model.TimeEntry, len(entries))
	copy(sorted, entries)

	// Recency-first: date descending, start time descending within a day.
	// Processing in this order means weeks and days are created already in
	// display order, so no final sort is needed.
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := dateOnly(sorted[i].Date), dateOnly(sorted[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return clockMinutes(sorted[i].Start) > clockMinutes(sorted[j].Start)
	})

	var weeks []WeekGroup
	for _, e := range sorted {
		day := dateOnly(e.Date)
		start := WeekStart(day)

		if len(weeks) == 0 || !weeks[len(weeks)-1].Start.Equal(start) {
			weeks = append(weeks, WeekGroup{Start: start})
		}
		w := &weeks[len(weeks)-1]

		if len(w.Days) == 0 || !w.Days[len(w.Days)-1].Date.Equal(day) {
			w.Days = append(w.Days, DayGroup{Date: day})
		}
		d := &w.Days[len(w.Days)-1]

		minutes := DurationMinutes(e.Start, e.End)
		d.Entries = append(d.Entries, e)
		d.TotalMinutes += minutes
		w.TotalMinutes += minutes
	}
	return weeks
}

// WeekStart returns the Monday of the week containing t, truncated to a date.
func WeekStart(t time.Time) time.Time {
	day := dateOnly(t)
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
