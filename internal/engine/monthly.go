package engine

import (
	"sort"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// ProjectHours is one project's hour share of a month (or of a year, for the
// legend).
type ProjectHours struct {
	ProjectID int64
	Name      string
	Color     string
	Hours     float64
}

// MonthlyAggregate is the financial rollup of one calendar month.
type MonthlyAggregate struct {
	Month          time.Month
	TotalHours     float64
	HoursAmount    float64
	LicensesAmount float64
	ServersAmount  float64
	DomainsAmount  float64
	TotalAmount    float64
	EntryCount     int
	// Breakdown is sorted hours-descending. Entries whose project is not in
	// the catalog still count toward TotalHours but cannot appear here.
	Breakdown []ProjectHours
}

// YearReport holds the 12 monthly aggregates of one target year plus the
// year-level totals.
type YearReport struct {
	Year             int
	Months           [12]MonthlyAggregate
	GrandTotalHours  float64
	GrandTotalAmount float64
}

// CategoryAmount reads the rollup amount for one cost category.
func (m MonthlyAggregate) CategoryAmount(cat model.CostCategory) float64 {
	switch cat {
	case model.CategoryLicenses:
		return m.LicensesAmount
	case model.CategoryServers:
		return m.ServersAmount
	case model.CategoryDomains:
		return m.DomainsAmount
	}
	return 0
}

// AggregateYear computes the 12 monthly rollups for crit.Year. Only records
// whose date year matches exactly are considered; a different year is a
// separate call. Months with no matching data still appear, zeroed.
func AggregateYear(entries []model.TimeEntry, costs []model.CostItem, projects []model.Project, crit Criteria) YearReport {
	report := YearReport{Year: crit.Year}
	byID := projectIndex(projects)
	scoped := FilterEntries(entries, crit)

	for i := range report.Months {
		month := time.Month(i + 1)
		agg := MonthlyAggregate{Month: month}

		breakdown := make(map[int64]*ProjectHours)
		var order []int64

		for _, e := range scoped {
			if e.Date.Month() != month {
				continue
			}
			hours := Hours(DurationMinutes(e.Start, e.End))
			agg.TotalHours += hours
			agg.EntryCount++

			p, known := byID[e.ProjectID]
			if e.Billable && known {
				agg.HoursAmount += hours * p.HourlyRate
			}
			if !known {
				continue
			}
			ph, ok := breakdown[e.ProjectID]
			if !ok {
				ph = &ProjectHours{ProjectID: p.ID, Name: p.Name, Color: p.Color}
				breakdown[e.ProjectID] = ph
				order = append(order, e.ProjectID)
			}
			ph.Hours += hours
		}

		for _, id := range order {
			agg.Breakdown = append(agg.Breakdown, *breakdown[id])
		}
		sort.SliceStable(agg.Breakdown, func(a, b int) bool {
			return agg.Breakdown[a].Hours > agg.Breakdown[b].Hours
		})

		agg.LicensesAmount = sumCosts(costs, model.CategoryLicenses, month, crit)
		agg.ServersAmount = sumCosts(costs, model.CategoryServers, month, crit)
		agg.DomainsAmount = sumCosts(costs, model.CategoryDomains, month, crit)
		agg.TotalAmount = agg.HoursAmount + agg.LicensesAmount + agg.ServersAmount + agg.DomainsAmount

		report.GrandTotalHours += agg.TotalHours
		report.GrandTotalAmount += agg.TotalAmount
		report.Months[i] = agg
	}
	return report
}

// FilterEntries returns the entries in scope for crit: matching year, active
// project set, and invoice status. Order is preserved.
func FilterEntries(entries []model.TimeEntry, crit Criteria) []model.TimeEntry {
	var scoped []model.TimeEntry
	for _, e := range entries {
		if e.Date.Year() != crit.Year {
			continue
		}
		if !crit.ProjectIDs[e.ProjectID] {
			continue
		}
		if !crit.Invoice.matches(e.Invoiced) {
			continue
		}
		scoped = append(scoped, e)
	}
	return scoped
}

// sumCosts totals one category's prices for one month under the criteria.
// The same path serves all three categories; the tag is just a filter.
func sumCosts(costs []model.CostItem, cat model.CostCategory, month time.Month, crit Criteria) float64 {
	var total float64
	for _, c := range costs {
		if c.Category != cat {
			continue
		}
		if c.Date.Year() != crit.Year || c.Date.Month() != month {
			continue
		}
		if !crit.ProjectIDs[c.ProjectID] {
			continue
		}
		if !crit.Invoice.matches(c.Invoiced) {
			continue
		}
		total += c.Price
	}
	return total
}

func projectIndex(projects []model.Project) map[int64]model.Project {
	byID := make(map[int64]model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	return byID
}
