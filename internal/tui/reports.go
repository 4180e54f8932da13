package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
	"github.com/progsightdimitri-maker/timesheet/internal/store"
)

var invoiceFilters = []engine.InvoiceFilter{engine.InvoiceAll, engine.InvoicedOnly, engine.NotInvoiced}

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	year       int
	clientIdx  int
	invoiceIdx int
	selected   map[int64]bool // nil means every available project

	entries  []model.TimeEntry
	costs    []model.CostItem
	projects []model.Project
	clients  []model.Client
	currency string
	locale   string

	crit      engine.Criteria
	available []model.Project
	report    engine.YearReport
	columns   [12]engine.ChartColumn
	legend    []engine.ProjectHours

	picking      bool
	pickerCursor int

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		year:  time.Now().Year(),
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	entries  []model.TimeEntry
	costs    []model.CostItem
	projects []model.Project
	clients  []model.Client
	currency string
	locale   string
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, _ := r.store.ListEntries(store.EntryFilter{})
		costs, _ := r.store.ListCostItems("")
		projects, _ := r.store.ListProjects(true)
		clients, _ := r.store.ListClients()
		currency, _ := r.store.GetSetting(store.SettingCurrency)
		locale, _ := r.store.GetSetting(store.SettingLocale)
		return reportsDataMsg{
			entries:  entries,
			costs:    costs,
			projects: projects,
			clients:  clients,
			currency: currency,
			locale:   locale,
		}
	}
}

// clientFilter maps the cycling index onto the filter value: all,
// unassigned, then each known client by name.
func (r reportsModel) clientFilter() engine.ClientFilter {
	switch {
	case r.clientIdx == 0:
		return engine.ClientAll
	case r.clientIdx == 1:
		return engine.ClientUnassigned
	default:
		return engine.ClientFilter(r.clients[r.clientIdx-2].Name)
	}
}

func (r *reportsModel) recompute() {
	client := r.clientFilter()
	r.available = engine.AvailableProjects(r.projects, client)
	r.crit = engine.Criteria{
		Year:       r.year,
		Client:     client,
		ProjectIDs: engine.ReconcileSelection(r.selected, r.available),
		Invoice:    invoiceFilters[r.invoiceIdx],
	}
	r.report = engine.AggregateYear(r.entries, r.costs, r.projects, r.crit)
	r.columns = engine.ScaleChart(r.report.Months)
	r.legend = engine.Legend(r.entries, r.projects, r.crit)
	r.buildChart()
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.entries = msg.entries
		r.costs = msg.costs
		r.projects = msg.projects
		r.clients = msg.clients
		r.currency = msg.currency
		r.locale = msg.locale
		// The cycled client may have been deleted since the last refresh.
		if r.clientIdx >= len(r.clients)+2 {
			r.clientIdx = 0
			r.selected = nil
		}
		r.recompute()
		return r, nil

	case tea.KeyMsg:
		if r.picking {
			return r.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Left):
			r.year--
			r.recompute()
		case key.Matches(msg, keys.Right):
			r.year++
			r.recompute()
		case key.Matches(msg, keys.Cycle):
			r.clientIdx = (r.clientIdx + 1) % (len(r.clients) + 2)
			// A new client scope invalidates the manual selection.
			r.selected = nil
			r.recompute()
		case key.Matches(msg, keys.Billing):
			r.invoiceIdx = (r.invoiceIdx + 1) % len(invoiceFilters)
			r.recompute()
		case key.Matches(msg, keys.Pick):
			if len(r.available) > 0 {
				r.picking = true
				r.pickerCursor = 0
			}
		}
	}
	return r, nil
}

func (r reportsModel) updatePicker(msg tea.KeyMsg) (reportsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if r.pickerCursor > 0 {
			r.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if r.pickerCursor < len(r.available)-1 {
			r.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		if r.selected == nil {
			r.selected = make(map[int64]bool, len(r.available))
			for _, p := range r.available {
				r.selected[p.ID] = true
			}
		}
		id := r.available[r.pickerCursor].ID
		r.selected[id] = !r.selected[id]
		r.recompute()
	case key.Matches(msg, keys.Back):
		r.picking = false
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 24 {
		chartWidth = 24
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, col := range r.columns {
		var values []barchart.BarValue
		for _, seg := range col.Segments {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color))
			values = append(values, barchart.BarValue{
				Name:  seg.Name,
				Value: seg.Fraction,
				Style: style,
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  col.Month.String()[:3],
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) money(amount float64) string {
	return cli.FormatMoney(amount, r.currency, r.locale)
}

func (r reportsModel) view() string {
	w := r.width - 4

	if r.picking {
		return r.renderProjectPicker(w)
	}

	clientLabel := string(r.crit.Client)
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(fmt.Sprintf("Reports %d", r.year)),
		"  ",
		mutedStyle.Render(fmt.Sprintf("client: %s  billing: %s", clientLabel, r.crit.Invoice)),
	)

	chartView := r.chart.View()
	legend := r.renderLegend()
	tableView := r.renderMonthTable()
	nav := mutedStyle.Render("  ←/→: year  c: client  b: billing  p: projects")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderMonthTable() string {
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-10s %8s %12s %12s %12s %12s %12s",
		"Month", "Hours", "Hours Amt", "Licenses", "Servers", "Domains", "Total"))

	var rows []string
	rows = append(rows, headerRow)
	for _, m := range r.report.Months {
		if m.EntryCount == 0 && m.TotalAmount == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-10s %8s %12s %12s %12s %12s %12s",
			m.Month,
			formatHours(m.TotalHours),
			r.money(m.HoursAmount),
			r.money(m.LicensesAmount),
			r.money(m.ServersAmount),
			r.money(m.DomainsAmount),
			r.money(m.TotalAmount),
		))
	}
	if len(rows) == 1 {
		return mutedStyle.Render("  No data for this year")
	}

	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-10s %8s %62s",
		"Total",
		formatHours(r.report.GrandTotalHours),
		r.money(r.report.GrandTotalAmount),
	)))

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	if len(r.legend) == 0 {
		return ""
	}
	var items []string
	for _, ph := range r.legend {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(ph.Color)).Render("●")
		items = append(items, fmt.Sprintf("%s %s %s", dot, ph.Name, mutedStyle.Render(formatHours(ph.Hours))))
	}
	return "  " + strings.Join(items, "  ")
}

func (r reportsModel) renderProjectPicker(w int) string {
	title := titleStyle.Render("Filter Projects")

	var rows []string
	rows = append(rows, title)
	for i, p := range r.available {
		mark := "[ ]"
		if r.crit.ProjectIDs[p.ID] {
			mark = "[x]"
		}
		cursor := "  "
		style := normalItemStyle
		if i == r.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := p.Name
		if p.Client != "" {
			label = p.Client + " / " + p.Name
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, mark, label)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: toggle  esc: done"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
