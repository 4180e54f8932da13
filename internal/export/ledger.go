package export

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// The section markers are part of the export contract: downstream consumers
// parse the ledger by them.
var (
	heavyRule = strings.Repeat("=", 65)
	lightRule = strings.Repeat("-", 65)
)

const unassignedGroup = "No Client / Internal"

// Ledger renders the year/filter-scoped entries as a grouped flat-text
// document: client, then project, then chronological entries with a subtotal
// per project and one grand total. Entries whose project is not in the
// catalog have no group key and are left out (logged, not fatal).
func Ledger(entries []model.TimeEntry, projects []model.Project, crit engine.Criteria, generatedAt time.Time) string {
	byID := make(map[int64]model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	scoped := engine.FilterEntries(entries, crit)

	// Ascending by date, then start time: the opposite order from the live
	// feed.
	sort.SliceStable(scoped, func(i, j int) bool {
		if !scoped[i].Date.Equal(scoped[j].Date) {
			return scoped[i].Date.Before(scoped[j].Date)
		}
		return scoped[i].Start < scoped[j].Start
	})

	// client group key -> project name -> entries
	groups := make(map[string]map[string][]model.TimeEntry)
	var grandHours float64
	for _, e := range scoped {
		p, ok := byID[e.ProjectID]
		if !ok {
			slog.Warn("ledger export: entry references unknown project, skipping",
				"entry_id", e.ID, "project_id", e.ProjectID)
			continue
		}
		client := p.Client
		if client == "" {
			client = unassignedGroup
		}
		if groups[client] == nil {
			groups[client] = make(map[string][]model.TimeEntry)
		}
		groups[client][p.Name] = append(groups[client][p.Name], e)
		grandHours += engine.Hours(engine.DurationMinutes(e.Start, e.End))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "REPORT EXPORT - %d\n", crit.Year)
	fmt.Fprintf(&b, "Client Filter: %s\n", clientLabel(crit.Client))
	fmt.Fprintf(&b, "Billing Status: %s\n", billingLabel(crit.Invoice))
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(heavyRule + "\n")

	for _, client := range sortedKeys(groups) {
		b.WriteString("\n")
		fmt.Fprintf(&b, "CLIENT: %s\n", client)
		b.WriteString(lightRule + "\n")

		byProject := groups[client]
		for _, project := range sortedKeys(byProject) {
			fmt.Fprintf(&b, "  PROJECT: %s\n", project)

			var projectHours float64
			for _, e := range byProject[project] {
				hours := engine.Hours(engine.DurationMinutes(e.Start, e.End))
				projectHours += hours

				fmt.Fprintf(&b, "    %s | %s - %s | %.2fh",
					e.Date.Format("2006-01-02"), e.Start, e.End, hours)
				if e.Description != "" {
					b.WriteString(" - " + e.Description)
				}
				if e.Invoiced {
					b.WriteString(" [INVOICED]")
				}
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "    >>> TOTAL PROJECT: %.2f hours\n", projectHours)
			b.WriteString("\n")
		}
	}

	b.WriteString(heavyRule + "\n")
	fmt.Fprintf(&b, "GRAND TOTAL: %.2f hours\n", grandHours)
	return b.String()
}

// WriteLedger renders the ledger and writes it to path.
func WriteLedger(path string, entries []model.TimeEntry, projects []model.Project, crit engine.Criteria) error {
	doc := Ledger(entries, projects, crit, time.Now())
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	return nil
}

func clientLabel(c engine.ClientFilter) string {
	switch c {
	case engine.ClientAll:
		return "All Clients"
	case engine.ClientUnassigned:
		return unassignedGroup
	default:
		return string(c)
	}
}

func billingLabel(f engine.InvoiceFilter) string {
	switch f {
	case engine.InvoicedOnly:
		return "Invoiced Only"
	case engine.NotInvoiced:
		return "Not Invoiced Only"
	default:
		return "All Statuses"
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
