// Package model holds the plain records the tracker works with. The store
// persists them; the engine consumes in-memory snapshots of them and never
// mutates its inputs.
package model

import "time"

type Client struct {
	Name  string // normalized, unique; join key from Project.Client and CostItem.Client
	Color string
}

type Project struct {
	ID         int64
	Name       string
	Client     string // "" = unassigned
	Color      string
	Active     bool    // filters selection UIs only, never reporting
	HourlyRate float64 // 0 = no rate
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TimeEntry is a single worked slot. Date carries calendar-day significance
// only; the time of day lives in Start/End as "HH:MM" wall-clock strings.
// An entry that wraps past midnight stays attributed to its stored Date.
type TimeEntry struct {
	ID          int64
	Description string
	ProjectID   int64
	Date        time.Time
	Start       string // "HH:MM"
	End         string // "HH:MM"
	Billable    bool
	Invoiced    bool // implies Billable
	CreatedAt   time.Time
}

// CostCategory tags a recurring cost item. Category is a tag, not a type
// distinction: all categories share the CostItem shape and aggregation path.
type CostCategory string

const (
	CategoryLicenses CostCategory = "licenses"
	CategoryServers  CostCategory = "servers"
	CategoryDomains  CostCategory = "domains"
)

// Categories lists all cost categories in display order.
var Categories = []CostCategory{CategoryLicenses, CategoryServers, CategoryDomains}

// CostItem is a recurring non-time expense attributed to a project.
// Client duplicates the referenced project's client name at write time;
// reconciliation on rename is the store's concern, not the engine's.
type CostItem struct {
	ID        int64
	Name      string
	Price     float64 // non-negative
	ProjectID int64
	Client    string
	Date      time.Time
	Invoiced  bool
	Category  CostCategory
}
