package engine

import (
	"math"
	"testing"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func allProjects(projects []model.Project) map[int64]bool {
	ids := make(map[int64]bool, len(projects))
	for _, p := range projects {
		ids[p.ID] = true
	}
	return ids
}

func TestAggregateYearBillableEntry(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "Website", Client: "Acme", HourlyRate: 50},
	}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 3, 10), Start: "09:00", End: "11:00", Billable: true},
	}

	crit := Criteria{Year: 2024, Client: ClientAll, ProjectIDs: allProjects(projects), Invoice: InvoiceAll}
	report := AggregateYear(entries, nil, projects, crit)

	march := report.Months[2]
	if !approx(march.TotalHours, 2) {
		t.Errorf("March hours = %v, want 2", march.TotalHours)
	}
	if !approx(march.HoursAmount, 100) {
		t.Errorf("March hours amount = %v, want 100", march.HoursAmount)
	}
	if !approx(march.TotalAmount, 100) {
		t.Errorf("March total amount = %v, want 100", march.TotalAmount)
	}
	if march.EntryCount != 1 {
		t.Errorf("March entry count = %d, want 1", march.EntryCount)
	}

	// All other months still exist, zeroed.
	for i, m := range report.Months {
		if i == 2 {
			continue
		}
		if m.TotalHours != 0 || m.TotalAmount != 0 || m.EntryCount != 0 {
			t.Errorf("month %d not zero: %+v", i+1, m)
		}
	}
}

func TestAggregateYearInvoicedFilterExcludesEntry(t *testing.T) {
	projects := []model.Project{{ID: 1, Name: "Website", HourlyRate: 50}}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 3, 10), Start: "09:00", End: "11:00", Billable: true, Invoiced: false},
	}

	crit := Criteria{Year: 2024, ProjectIDs: allProjects(projects), Invoice: InvoicedOnly}
	report := AggregateYear(entries, nil, projects, crit)

	march := report.Months[2]
	if march.TotalHours != 0 || march.HoursAmount != 0 || march.TotalAmount != 0 || march.EntryCount != 0 {
		t.Errorf("March should be zero under invoiced-only filter: %+v", march)
	}
}

func TestAggregateYearNonBillableEntryEarnsNothing(t *testing.T) {
	projects := []model.Project{{ID: 1, Name: "Website", HourlyRate: 80}}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 5, 2), Start: "10:00", End: "12:00", Billable: false},
	}

	crit := Criteria{Year: 2024, ProjectIDs: allProjects(projects), Invoice: InvoiceAll}
	report := AggregateYear(entries, nil, projects, crit)

	may := report.Months[4]
	if !approx(may.TotalHours, 2) {
		t.Errorf("May hours = %v, want 2 (non-billable time still counts)", may.TotalHours)
	}
	if may.HoursAmount != 0 {
		t.Errorf("May hours amount = %v, want 0 for non-billable entry", may.HoursAmount)
	}
}

func TestAggregateYearCostCategories(t *testing.T) {
	projects := []model.Project{{ID: 1, Name: "Website"}}
	costs := []model.CostItem{
		{ID: 1, Name: "IDE seat", Price: 120, ProjectID: 1, Date: date(2024, 6, 5), Invoiced: true, Category: model.CategoryLicenses},
		{ID: 2, Name: "VPS", Price: 40, ProjectID: 1, Date: date(2024, 6, 20), Category: model.CategoryServers},
		{ID: 3, Name: "example.com", Price: 12, ProjectID: 1, Date: date(2024, 6, 1), Category: model.CategoryDomains},
		{ID: 4, Name: "VPS", Price: 40, ProjectID: 1, Date: date(2024, 7, 20), Category: model.CategoryServers},
	}

	crit := Criteria{Year: 2024, ProjectIDs: allProjects(projects), Invoice: InvoiceAll}
	report := AggregateYear(nil, costs, projects, crit)

	june := report.Months[5]
	if !approx(june.LicensesAmount, 120) || !approx(june.ServersAmount, 40) || !approx(june.DomainsAmount, 12) {
		t.Errorf("June category amounts = %v/%v/%v, want 120/40/12",
			june.LicensesAmount, june.ServersAmount, june.DomainsAmount)
	}
	if !approx(june.TotalAmount, 172) {
		t.Errorf("June total = %v, want 172", june.TotalAmount)
	}
	if !approx(report.Months[6].ServersAmount, 40) {
		t.Errorf("July servers = %v, want 40", report.Months[6].ServersAmount)
	}

	// Invoiced license item drops out under not-invoiced.
	crit.Invoice = NotInvoiced
	report = AggregateYear(nil, costs, projects, crit)
	june = report.Months[5]
	if june.LicensesAmount != 0 {
		t.Errorf("June licenses = %v under not-invoiced, want 0", june.LicensesAmount)
	}
	if !approx(june.ServersAmount, 40) {
		t.Errorf("June servers = %v under not-invoiced, want 40", june.ServersAmount)
	}
}

func TestAggregateYearGrandTotalLaw(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "Website", HourlyRate: 50},
		{ID: 2, Name: "API", HourlyRate: 75},
	}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 1, 8), Start: "09:00", End: "12:00", Billable: true},
		{ID: 2, ProjectID: 2, Date: date(2024, 1, 9), Start: "13:00", End: "17:30", Billable: true},
		{ID: 3, ProjectID: 1, Date: date(2024, 11, 2), Start: "23:30", End: "00:15", Billable: true},
		{ID: 4, ProjectID: 2, Date: date(2023, 11, 2), Start: "09:00", End: "17:00", Billable: true}, // wrong year
	}
	costs := []model.CostItem{
		{ID: 1, Price: 30, ProjectID: 1, Date: date(2024, 4, 1), Category: model.CategoryServers},
	}

	for _, invoice := range []InvoiceFilter{InvoiceAll, InvoicedOnly, NotInvoiced} {
		crit := Criteria{Year: 2024, ProjectIDs: allProjects(projects), Invoice: invoice}
		report := AggregateYear(entries, costs, projects, crit)

		var hours, amount float64
		for _, m := range report.Months {
			hours += m.TotalHours
			amount += m.TotalAmount
		}
		if !approx(report.GrandTotalHours, hours) {
			t.Errorf("invoice=%s: grand hours %v != month sum %v", invoice, report.GrandTotalHours, hours)
		}
		if !approx(report.GrandTotalAmount, amount) {
			t.Errorf("invoice=%s: grand amount %v != month sum %v", invoice, report.GrandTotalAmount, amount)
		}
	}
}

func TestAggregateYearBreakdownSortedByHours(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "Website", Color: "#FF0000"},
		{ID: 2, Name: "API", Color: "#00FF00"},
	}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 2, 1), Start: "09:00", End: "10:00"},
		{ID: 2, ProjectID: 2, Date: date(2024, 2, 1), Start: "10:00", End: "14:00"},
		{ID: 3, ProjectID: 1, Date: date(2024, 2, 2), Start: "09:00", End: "10:30"},
	}

	crit := Criteria{Year: 2024, ProjectIDs: allProjects(projects), Invoice: InvoiceAll}
	report := AggregateYear(entries, nil, projects, crit)

	feb := report.Months[1]
	if len(feb.Breakdown) != 2 {
		t.Fatalf("breakdown = %d, want 2", len(feb.Breakdown))
	}
	if feb.Breakdown[0].ProjectID != 2 || !approx(feb.Breakdown[0].Hours, 4) {
		t.Errorf("breakdown[0] = %+v, want project 2 with 4h", feb.Breakdown[0])
	}
	if feb.Breakdown[1].ProjectID != 1 || !approx(feb.Breakdown[1].Hours, 2.5) {
		t.Errorf("breakdown[1] = %+v, want project 1 with 2.5h", feb.Breakdown[1])
	}
	if feb.Breakdown[0].Name != "API" || feb.Breakdown[0].Color != "#00FF00" {
		t.Errorf("breakdown carries wrong project metadata: %+v", feb.Breakdown[0])
	}
}

func TestAggregateYearDanglingProjectRef(t *testing.T) {
	projects := []model.Project{{ID: 1, Name: "Website", HourlyRate: 50}}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 3, 1), Start: "09:00", End: "10:00", Billable: true},
		{ID: 2, ProjectID: 99, Date: date(2024, 3, 1), Start: "09:00", End: "11:00", Billable: true},
	}

	ids := allProjects(projects)
	ids[99] = true // selection still carries the dangling id
	crit := Criteria{Year: 2024, ProjectIDs: ids, Invoice: InvoiceAll}
	report := AggregateYear(entries, nil, projects, crit)

	march := report.Months[2]
	if !approx(march.TotalHours, 3) {
		t.Errorf("March hours = %v, want 3 (dangling ref still counts time)", march.TotalHours)
	}
	if !approx(march.HoursAmount, 50) {
		t.Errorf("March amount = %v, want 50 (no rate for unknown project)", march.HoursAmount)
	}
	if len(march.Breakdown) != 1 || march.Breakdown[0].ProjectID != 1 {
		t.Errorf("breakdown = %+v, dangling ref must not appear", march.Breakdown)
	}
}

func TestAggregateYearStaleSelectionExcluded(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "Website", Client: "Acme"},
		{ID: 2, Name: "Audit", Client: "Beta"},
	}
	entries := []model.TimeEntry{
		{ID: 1, ProjectID: 1, Date: date(2024, 1, 3), Start: "09:00", End: "10:00"},
		{ID: 2, ProjectID: 2, Date: date(2024, 1, 3), Start: "09:00", End: "10:00"},
	}

	// Selection reconciled against the Acme-only available set: project 2
	// is stale and must not contribute.
	available := AvailableProjects(projects, ClientFilter("Acme"))
	active := ReconcileSelection(map[int64]bool{1: true, 2: true}, available)

	crit := Criteria{Year: 2024, Client: ClientFilter("Acme"), ProjectIDs: active, Invoice: InvoiceAll}
	report := AggregateYear(entries, nil, projects, crit)
	if !approx(report.GrandTotalHours, 1) {
		t.Errorf("grand hours = %v, want 1", report.GrandTotalHours)
	}
}

func TestAggregateYearEmptyInputStillTwelveMonths(t *testing.T) {
	crit := Criteria{Year: 2024, ProjectIDs: map[int64]bool{}, Invoice: InvoiceAll}
	report := AggregateYear(nil, nil, nil, crit)

	for i, m := range report.Months {
		if m.Month != time.Month(i+1) {
			t.Errorf("month[%d].Month = %v, want %v", i, m.Month, time.Month(i+1))
		}
		if m.TotalHours != 0 || m.TotalAmount != 0 {
			t.Errorf("month %d not zero: %+v", i+1, m)
		}
	}
	if report.GrandTotalHours != 0 || report.GrandTotalAmount != 0 {
		t.Errorf("grand totals not zero: %+v", report)
	}
}

func TestCategoryAmount(t *testing.T) {
	m := MonthlyAggregate{LicensesAmount: 1, ServersAmount: 2, DomainsAmount: 3}
	if m.CategoryAmount(model.CategoryLicenses) != 1 ||
		m.CategoryAmount(model.CategoryServers) != 2 ||
		m.CategoryAmount(model.CategoryDomains) != 3 {
		t.Errorf("CategoryAmount mismatch: %+v", m)
	}
	if m.CategoryAmount(model.CostCategory("other")) != 0 {
		t.Error("unknown category should read as 0")
	}
}
