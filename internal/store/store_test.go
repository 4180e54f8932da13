package store

import (
	"testing"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustProject(t *testing.T, s *Store, name, client string, rate float64) *model.Project {
	t.Helper()
	p, err := s.CreateProject(name, client, "#6C63FF", rate)
	if err != nil {
		t.Fatalf("CreateProject(%q): %v", name, err)
	}
	return p
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ============================================================
// Projects & clients
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)

	p := mustProject(t, s, "Website", "Acme", 50)
	if p.ID == 0 {
		t.Fatal("project ID should be assigned")
	}
	if !p.Active {
		t.Error("new project should be active")
	}

	got, err := s.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Website" || got.Client != "Acme" || got.HourlyRate != 50 {
		t.Errorf("got %+v", got)
	}
}

func TestListProjectsExcludesInactive(t *testing.T) {
	s := newTestStore(t)

	a := mustProject(t, s, "Alpha", "", 0)
	mustProject(t, s, "Beta", "", 0)

	if err := s.DeactivateProject(a.ID); err != nil {
		t.Fatal(err)
	}

	active, err := s.ListProjects(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Name != "Beta" {
		t.Errorf("active = %+v", active)
	}

	all, err := s.ListProjects(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
}

func TestClientLifecycle(t *testing.T) {
	s := newTestStore(t)

	c, err := s.CreateClient("  Acme   Inc ", "#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Acme Inc" {
		t.Errorf("name not normalized: %q", c.Name)
	}

	got, err := s.GetClient("Acme Inc")
	if err != nil {
		t.Fatal(err)
	}
	if got.Color != "#FF0000" {
		t.Errorf("color = %q", got.Color)
	}

	if _, err := s.CreateClient("Acme Inc", "#00FF00"); err == nil {
		t.Error("duplicate client name should be rejected")
	}

	if _, err := s.CreateClient("   ", "#000000"); err == nil {
		t.Error("empty client name should be rejected")
	}
}

func TestUpdateClientColor(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateClient("Acme", "#FF0000"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateClientColor("Acme", "#00FF00"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetClient("Acme")
	if err != nil {
		t.Fatal(err)
	}
	if got.Color != "#00FF00" {
		t.Errorf("color = %q, want #00FF00", got.Color)
	}
}

func TestDeleteClientUnassignsProjects(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateClient("Acme", "#FF0000"); err != nil {
		t.Fatal(err)
	}
	p := mustProject(t, s, "Website", "Acme", 50)

	if err := s.DeleteClient("Acme"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Client != "" {
		t.Errorf("project client = %q, want unassigned", got.Client)
	}
}

// ============================================================
// Time entries
// ============================================================

func TestCreateEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "Acme", 50)

	e, err := s.CreateEntry(model.TimeEntry{
		ProjectID:   p.ID,
		Date:        date(2024, 3, 10),
		Start:       "09:00",
		End:         "11:00",
		Description: "landing page",
		Billable:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !e.Date.Equal(date(2024, 3, 10)) {
		t.Errorf("date = %s", e.Date)
	}
	if e.Start != "09:00" || e.End != "11:00" {
		t.Errorf("clock = %s-%s", e.Start, e.End)
	}
	if !e.Billable || e.Invoiced {
		t.Errorf("flags = %+v", e)
	}
}

func TestCreateEntryNonBillableNeverInvoiced(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "", 0)

	e, err := s.CreateEntry(model.TimeEntry{
		ProjectID: p.ID,
		Date:      date(2024, 3, 10),
		Start:     "09:00",
		End:       "10:00",
		Billable:  false,
		Invoiced:  true, // contradiction resolved at write time
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Invoiced {
		t.Error("non-billable entry must not be invoiced")
	}
}

func TestSetEntryInvoicedRespectsBillable(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "", 0)

	billable, _ := s.CreateEntry(model.TimeEntry{ProjectID: p.ID, Date: date(2024, 1, 1), Start: "09:00", End: "10:00", Billable: true})
	free, _ := s.CreateEntry(model.TimeEntry{ProjectID: p.ID, Date: date(2024, 1, 2), Start: "09:00", End: "10:00", Billable: false})

	if err := s.SetEntryInvoiced(billable.ID, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEntryInvoiced(free.ID, true); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetEntry(billable.ID)
	if !got.Invoiced {
		t.Error("billable entry should be invoiced now")
	}
	got, _ = s.GetEntry(free.ID)
	if got.Invoiced {
		t.Error("non-billable entry must stay un-invoiced")
	}
}

func TestListEntriesFilters(t *testing.T) {
	s := newTestStore(t)
	p1 := mustProject(t, s, "Website", "", 0)
	p2 := mustProject(t, s, "API", "", 0)

	s.CreateEntry(model.TimeEntry{ProjectID: p1.ID, Date: date(2024, 3, 10), Start: "09:00", End: "10:00", Billable: true})
	s.CreateEntry(model.TimeEntry{ProjectID: p2.ID, Date: date(2024, 3, 11), Start: "09:00", End: "10:00", Billable: true, Invoiced: true})
	s.CreateEntry(model.TimeEntry{ProjectID: p1.ID, Date: date(2023, 3, 10), Start: "09:00", End: "10:00", Billable: true})

	year := 2024
	entries, err := s.ListEntries(EntryFilter{Year: &year})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("year filter: %d entries, want 2", len(entries))
	}
	// Date descending.
	if !entries[0].Date.After(entries[1].Date) {
		t.Errorf("order wrong: %s before %s", entries[0].Date, entries[1].Date)
	}

	invoiced := true
	entries, err = s.ListEntries(EntryFilter{Invoiced: &invoiced})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ProjectID != p2.ID {
		t.Errorf("invoiced filter: %+v", entries)
	}

	entries, err = s.ListEntries(EntryFilter{ProjectID: &p1.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("project filter: %d entries, want 2", len(entries))
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "", 0)

	e, _ := s.CreateEntry(model.TimeEntry{ProjectID: p.ID, Date: date(2024, 3, 10), Start: "09:00", End: "10:00", Billable: true})

	e.End = "12:30"
	e.Description = "longer session"
	if err := s.UpdateEntry(*e); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetEntry(e.ID)
	if got.End != "12:30" || got.Description != "longer session" {
		t.Errorf("got %+v", got)
	}

	if err := s.DeleteEntry(e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEntry(e.ID); err == nil {
		t.Error("deleted entry should not be found")
	}
}

// ============================================================
// Cost items
// ============================================================

func TestCostItemDenormalizesClient(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "Acme", 50)

	c, err := s.CreateCostItem(model.CostItem{
		Category:  model.CategoryLicenses,
		Name:      "IDE seat",
		Price:     120,
		ProjectID: p.ID,
		Date:      date(2024, 6, 5),
		Invoiced:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Client != "Acme" {
		t.Errorf("client = %q, want denormalized Acme", c.Client)
	}
}

func TestCostItemClientFollowsProjectRename(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "Acme", 50)
	c, _ := s.CreateCostItem(model.CostItem{
		Category: model.CategoryServers, Name: "VPS", Price: 40, ProjectID: p.ID, Date: date(2024, 6, 1),
	})

	if err := s.UpdateProject(p.ID, "Website", "Initech", "#6C63FF", 50); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetCostItem(c.ID)
	if got.Client != "Initech" {
		t.Errorf("client = %q, want Initech after project update", got.Client)
	}
}

func TestCostItemRejectsNegativePrice(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "", 0)

	_, err := s.CreateCostItem(model.CostItem{
		Category: model.CategoryDomains, Name: "example.com", Price: -1, ProjectID: p.ID, Date: date(2024, 1, 1),
	})
	if err == nil {
		t.Fatal("negative price should be rejected")
	}
}

func TestListCostItemsByCategory(t *testing.T) {
	s := newTestStore(t)
	p := mustProject(t, s, "Website", "", 0)

	s.CreateCostItem(model.CostItem{Category: model.CategoryLicenses, Name: "IDE", Price: 120, ProjectID: p.ID, Date: date(2024, 6, 5)})
	s.CreateCostItem(model.CostItem{Category: model.CategoryServers, Name: "VPS", Price: 40, ProjectID: p.ID, Date: date(2024, 6, 1)})

	licenses, err := s.ListCostItems(model.CategoryLicenses)
	if err != nil {
		t.Fatal(err)
	}
	if len(licenses) != 1 || licenses[0].Name != "IDE" {
		t.Errorf("licenses = %+v", licenses)
	}

	all, err := s.ListCostItems("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaultsAndOverride(t *testing.T) {
	s := newTestStore(t)

	currency, err := s.GetSetting(SettingCurrency)
	if err != nil {
		t.Fatal(err)
	}
	if currency != "EUR" {
		t.Errorf("default currency = %q, want EUR", currency)
	}

	if err := s.SetSetting(SettingLocale, "fr-FR"); err != nil {
		t.Fatal(err)
	}
	locale, _ := s.GetSetting(SettingLocale)
	if locale != "fr-FR" {
		t.Errorf("locale = %q, want fr-FR", locale)
	}
}
