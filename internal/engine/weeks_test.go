package engine

import (
	"testing"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupWeeksSameWeekDescendingDays(t *testing.T) {
	// 2024-05-01 (Wed) and 2024-05-03 (Fri) share the week of Mon 2024-04-29.
	entries := []model.TimeEntry{
		{ID: 1, Date: date(2024, 5, 1), Start: "09:00", End: "10:00"},
		{ID: 2, Date: date(2024, 5, 3), Start: "14:00", End: "15:30"},
	}

	weeks := GroupWeeks(entries)
	if len(weeks) != 1 {
		t.Fatalf("weeks = %d, want 1", len(weeks))
	}
	w := weeks[0]
	if want := date(2024, 4, 29); !w.Start.Equal(want) {
		t.Errorf("week start = %s, want %s", w.Start, want)
	}
	if len(w.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(w.Days))
	}
	if !w.Days[0].Date.Equal(date(2024, 5, 3)) || !w.Days[1].Date.Equal(date(2024, 5, 1)) {
		t.Errorf("day order = [%s, %s], want [2024-05-03, 2024-05-01]",
			w.Days[0].Date.Format(time.DateOnly), w.Days[1].Date.Format(time.DateOnly))
	}
	if w.TotalMinutes != 150 {
		t.Errorf("week total = %d, want 150", w.TotalMinutes)
	}
}

func TestGroupWeeksRecentWeekFirst(t *testing.T) {
	entries := []model.TimeEntry{
		{ID: 1, Date: date(2024, 5, 6), Start: "09:00", End: "10:00"},  // Mon, week of 05-06
		{ID: 2, Date: date(2024, 4, 30), Start: "09:00", End: "10:00"}, // Tue, week of 04-29
	}

	weeks := GroupWeeks(entries)
	if len(weeks) != 2 {
		t.Fatalf("weeks = %d, want 2", len(weeks))
	}
	if !weeks[0].Start.Equal(date(2024, 5, 6)) {
		t.Errorf("first week = %s, want 2024-05-06", weeks[0].Start.Format(time.DateOnly))
	}
	if !weeks[1].Start.Equal(date(2024, 4, 29)) {
		t.Errorf("second week = %s, want 2024-04-29", weeks[1].Start.Format(time.DateOnly))
	}
}

func TestGroupWeeksSameDayStartDescending(t *testing.T) {
	entries := []model.TimeEntry{
		{ID: 1, Date: date(2024, 5, 1), Start: "08:00", End: "09:00"},
		{ID: 2, Date: date(2024, 5, 1), Start: "16:00", End: "17:00"},
		{ID: 3, Date: date(2024, 5, 1), Start: "12:00", End: "13:00"},
	}

	weeks := GroupWeeks(entries)
	day := weeks[0].Days[0]
	if len(day.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(day.Entries))
	}
	wantOrder := []int64{2, 3, 1}
	for i, want := range wantOrder {
		if day.Entries[i].ID != want {
			t.Errorf("entry[%d].ID = %d, want %d", i, day.Entries[i].ID, want)
		}
	}
}

func TestGroupWeeksTotalsConsistent(t *testing.T) {
	entries := []model.TimeEntry{
		{ID: 1, Date: date(2024, 1, 1), Start: "09:00", End: "10:30"},
		{ID: 2, Date: date(2024, 1, 2), Start: "23:30", End: "00:15"},
		{ID: 3, Date: date(2024, 2, 14), Start: "10:00", End: "10:00"},
		{ID: 4, Date: date(2024, 2, 14), Start: "11:00", End: "12:45"},
		{ID: 5, Date: date(2023, 12, 31), Start: "07:00", End: "08:00"},
	}

	var wantTotal int
	for _, e := range entries {
		wantTotal += DurationMinutes(e.Start, e.End)
	}

	var dayTotal, weekTotal, entryTotal int
	for _, w := range GroupWeeks(entries) {
		weekTotal += w.TotalMinutes
		var daysInWeek int
		for _, d := range w.Days {
			dayTotal += d.TotalMinutes
			daysInWeek += d.TotalMinutes
			for _, e := range d.Entries {
				entryTotal += DurationMinutes(e.Start, e.End)
			}
		}
		if daysInWeek != w.TotalMinutes {
			t.Errorf("week %s total %d != sum of day totals %d",
				w.Start.Format(time.DateOnly), w.TotalMinutes, daysInWeek)
		}
	}

	if dayTotal != wantTotal || weekTotal != wantTotal || entryTotal != wantTotal {
		t.Errorf("totals day=%d week=%d entry=%d, want all %d", dayTotal, weekTotal, entryTotal, wantTotal)
	}
}

func TestGroupWeeksEmpty(t *testing.T) {
	if weeks := GroupWeeks(nil); len(weeks) != 0 {
		t.Fatalf("weeks = %d, want 0", len(weeks))
	}
}

func TestGroupWeeksDoesNotMutateInput(t *testing.T) {
	entries := []model.TimeEntry{
		{ID: 1, Date: date(2024, 5, 3), Start: "09:00", End: "10:00"},
		{ID: 2, Date: date(2024, 5, 1), Start: "09:00", End: "10:00"},
	}
	GroupWeeks(entries)
	if entries[0].ID != 1 || entries[1].ID != 2 {
		t.Error("input slice was reordered")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2024, 5, 1), date(2024, 4, 29)},  // Wednesday
		{date(2024, 4, 29), date(2024, 4, 29)}, // Monday maps to itself
		{date(2024, 5, 5), date(2024, 4, 29)},  // Sunday closes the week
		{date(2024, 1, 1), date(2024, 1, 1)},   // New Year Monday
		{date(2023, 1, 1), date(2022, 12, 26)}, // year boundary
	}

	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%s) = %s, want %s",
				tt.in.Format(time.DateOnly), got.Format(time.DateOnly), tt.want.Format(time.DateOnly))
		}
	}
}
