package engine

import "time"

// ChartSegment is one project's slice of a monthly bar, with its height as a
// fraction of the year-wide maximum.
type ChartSegment struct {
	ProjectID int64
	Name      string
	Color     string
	Hours     float64
	Fraction  float64 // in [0,1]
}

// ChartColumn is one month's bar.
type ChartColumn struct {
	Month      time.Month
	TotalHours float64
	Segments   []ChartSegment
}

// ScaleChart derives proportional segment heights for the 12-month series.
// All columns share one maximum (the busiest month's total, floored at 1) so
// bar heights stay comparable across months: a quiet month renders short
// instead of being stretched to fill its column.
func ScaleChart(months [12]MonthlyAggregate) [12]ChartColumn {
	maxHours := 1.0
	for _, m := range months {
		if m.TotalHours > maxHours {
			maxHours = m.TotalHours
		}
	}

	var columns [12]ChartColumn
	for i, m := range months {
		col := ChartColumn{Month: time.Month(i + 1), TotalHours: m.TotalHours}
		for _, ph := range m.Breakdown {
			col.Segments = append(col.Segments, ChartSegment{
				ProjectID: ph.ProjectID,
				Name:      ph.Name,
				Color:     ph.Color,
				Hours:     ph.Hours,
				Fraction:  ph.Hours / maxHours,
			})
		}
		columns[i] = col
	}
	return columns
}
