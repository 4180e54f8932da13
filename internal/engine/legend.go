package engine

import (
	"sort"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// Legend produces one entry per distinct project in the year/filter-scoped
// set, hours descending. Ties keep encounter order. Projects missing from the
// catalog have no name to show and are left out.
func Legend(entries []model.TimeEntry, projects []model.Project, crit Criteria) []ProjectHours {
	byID := projectIndex(projects)

	totals := make(map[int64]*ProjectHours)
	var order []int64
	for _, e := range FilterEntries(entries, crit) {
		p, known := byID[e.ProjectID]
		if !known {
			continue
		}
		ph, ok := totals[e.ProjectID]
		if !ok {
			ph = &ProjectHours{ProjectID: p.ID, Name: p.Name, Color: p.Color}
			totals[e.ProjectID] = ph
			order = append(order, e.ProjectID)
		}
		ph.Hours += Hours(DurationMinutes(e.Start, e.End))
	}

	legend := make([]ProjectHours, 0, len(order))
	for _, id := range order {
		legend = append(legend, *totals[id])
	}
	sort.SliceStable(legend, func(i, j int) bool {
		return legend[i].Hours > legend[j].Hours
	})
	return legend
}
