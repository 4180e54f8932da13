package engine

import (
	"sort"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// ClientFilter selects which client's projects are in scope. Besides the two
// sentinels it holds a client name verbatim.
type ClientFilter string

const (
	ClientAll        ClientFilter = "all"
	ClientUnassigned ClientFilter = "unassigned"
)

// InvoiceFilter narrows entries and cost items by their invoiced flag.
type InvoiceFilter string

const (
	InvoiceAll   InvoiceFilter = "all"
	InvoicedOnly InvoiceFilter = "invoiced"
	NotInvoiced  InvoiceFilter = "not-invoiced"
)

// Criteria is the live filter state an aggregation call runs under.
type Criteria struct {
	Year       int
	Client     ClientFilter
	ProjectIDs map[int64]bool // active project set, reconciled against Client
	Invoice    InvoiceFilter
}

// matchesInvoice reports whether an invoiced flag passes the filter.
func (f InvoiceFilter) matches(invoiced bool) bool {
	switch f {
	case InvoicedOnly:
		return invoiced
	case NotInvoiced:
		return !invoiced
	default:
		return true
	}
}

// AvailableProjects returns the projects visible under the client filter,
// sorted by client name then project name with unassigned projects last.
func AvailableProjects(projects []model.Project, client ClientFilter) []model.Project {
	var available []model.Project
	for _, p := range projects {
		switch client {
		case ClientAll:
			available = append(available, p)
		case ClientUnassigned:
			if p.Client == "" {
				available = append(available, p)
			}
		default:
			if p.Client == string(client) {
				available = append(available, p)
			}
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		ci, cj := available[i].Client, available[j].Client
		if ci != cj {
			// Unassigned sorts after every named client.
			if ci == "" {
				return false
			}
			if cj == "" {
				return true
			}
			return ci < cj
		}
		return available[i].Name < available[j].Name
	})
	return available
}

// ReconcileSelection intersects a previously chosen project-id set with the
// currently available projects. Ids left over from an earlier client filter
// are dropped silently; they must never leak into totals. A nil selection
// means "everything available" and defaults to the full available set.
func ReconcileSelection(selected map[int64]bool, available []model.Project) map[int64]bool {
	active := make(map[int64]bool, len(available))
	for _, p := range available {
		if selected == nil || selected[p.ID] {
			active[p.ID] = true
		}
	}
	return active
}
