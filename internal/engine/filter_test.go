package engine

import (
	"testing"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

func catalog() []model.Project {
	return []model.Project{
		{ID: 1, Name: "Website", Client: "Acme"},
		{ID: 2, Name: "API", Client: "Acme"},
		{ID: 3, Name: "Audit", Client: "Beta Corp"},
		{ID: 4, Name: "Internal Tools", Client: ""},
	}
}

func TestAvailableProjectsAll(t *testing.T) {
	available := AvailableProjects(catalog(), ClientAll)
	if len(available) != 4 {
		t.Fatalf("available = %d, want 4", len(available))
	}
	// Client name then project name, unassigned last.
	wantOrder := []int64{2, 1, 3, 4}
	for i, want := range wantOrder {
		if available[i].ID != want {
			t.Errorf("available[%d].ID = %d, want %d", i, available[i].ID, want)
		}
	}
}

func TestAvailableProjectsByClient(t *testing.T) {
	available := AvailableProjects(catalog(), ClientFilter("Acme"))
	if len(available) != 2 {
		t.Fatalf("available = %d, want 2", len(available))
	}
	for _, p := range available {
		if p.Client != "Acme" {
			t.Errorf("project %q has client %q, want Acme", p.Name, p.Client)
		}
	}
}

func TestAvailableProjectsUnassigned(t *testing.T) {
	available := AvailableProjects(catalog(), ClientUnassigned)
	if len(available) != 1 || available[0].ID != 4 {
		t.Fatalf("available = %+v, want only project 4", available)
	}
}

func TestAvailableProjectsUnknownClient(t *testing.T) {
	if available := AvailableProjects(catalog(), ClientFilter("Nobody")); len(available) != 0 {
		t.Fatalf("available = %d, want 0", len(available))
	}
}

func TestReconcileSelectionDropsStaleIDs(t *testing.T) {
	available := AvailableProjects(catalog(), ClientFilter("Acme"))

	// Project 3 belongs to a different client and must be intersected away.
	selected := map[int64]bool{1: true, 3: true}
	active := ReconcileSelection(selected, available)

	if !active[1] {
		t.Error("project 1 should stay selected")
	}
	if active[3] {
		t.Error("stale project 3 leaked through reconciliation")
	}
	if active[2] {
		t.Error("project 2 was never selected")
	}
}

func TestReconcileSelectionNilDefaultsToAll(t *testing.T) {
	available := AvailableProjects(catalog(), ClientAll)
	active := ReconcileSelection(nil, available)
	if len(active) != len(available) {
		t.Fatalf("active = %d, want %d (all available)", len(active), len(available))
	}
}

func TestReconcileSelectionIdempotent(t *testing.T) {
	available := AvailableProjects(catalog(), ClientFilter("Acme"))
	selected := map[int64]bool{1: true, 3: true}

	once := ReconcileSelection(selected, available)
	twice := ReconcileSelection(once, available)

	if len(once) != len(twice) {
		t.Fatalf("sizes differ: once=%d twice=%d", len(once), len(twice))
	}
	for id := range once {
		if !twice[id] {
			t.Errorf("id %d present once but not twice", id)
		}
	}

	againAvailable := AvailableProjects(catalog(), ClientFilter("Acme"))
	if len(againAvailable) != len(available) {
		t.Fatal("AvailableProjects is not stable across calls")
	}
}

func TestInvoiceFilterMatches(t *testing.T) {
	tests := []struct {
		filter   InvoiceFilter
		invoiced bool
		want     bool
	}{
		{InvoiceAll, true, true},
		{InvoiceAll, false, true},
		{InvoicedOnly, true, true},
		{InvoicedOnly, false, false},
		{NotInvoiced, true, false},
		{NotInvoiced, false, true},
	}
	for _, tt := range tests {
		if got := tt.filter.matches(tt.invoiced); got != tt.want {
			t.Errorf("%s.matches(%v) = %v, want %v", tt.filter, tt.invoiced, got, tt.want)
		}
	}
}
