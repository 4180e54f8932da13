package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
	"github.com/progsightdimitri-maker/timesheet/internal/store"
)

type costsModel struct {
	store  *store.Store
	width  int
	height int

	items    []model.CostItem
	projects []model.Project
	currency string
	locale   string

	categoryIdx int // 0 = all, 1.. = model.Categories
	cursor      int

	formActive bool
	form       *huh.Form
	editingID  int64

	// Form field pointers (survive value copies)
	formCategory *string
	formName     *string
	formPrice    *string
	formProject  *int64
	formDate     *string
	formInvoiced *bool
}

func newCostsModel(s *store.Store) costsModel {
	cat, name, price, date := string(model.CategoryLicenses), "", "", ""
	var project int64
	invoiced := false
	return costsModel{
		store:        s,
		formCategory: &cat,
		formName:     &name,
		formPrice:    &price,
		formProject:  &project,
		formDate:     &date,
		formInvoiced: &invoiced,
	}
}

func (c *costsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c costsModel) category() model.CostCategory {
	if c.categoryIdx == 0 {
		return ""
	}
	return model.Categories[c.categoryIdx-1]
}

type costsDataMsg struct {
	items    []model.CostItem
	projects []model.Project
	currency string
	locale   string
}

func (c costsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		items, _ := c.store.ListCostItems(c.category())
		projects, _ := c.store.ListProjects(true)
		currency, _ := c.store.GetSetting(store.SettingCurrency)
		locale, _ := c.store.GetSetting(store.SettingLocale)
		return costsDataMsg{items: items, projects: projects, currency: currency, locale: locale}
	}
}

func (c costsModel) update(msg tea.Msg) (costsModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case costsDataMsg:
		c.items = msg.items
		c.projects = msg.projects
		c.currency = msg.currency
		c.locale = msg.locale
		if c.cursor >= len(c.items) {
			c.cursor = max(0, len(c.items)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.items)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Cycle):
			c.categoryIdx = (c.categoryIdx + 1) % (len(model.Categories) + 1)
			c.cursor = 0
			return c, c.refresh()
		case key.Matches(msg, keys.New):
			return c.showCostForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(c.items) > 0 {
				item := c.items[c.cursor]
				return c.showCostForm(&item)
			}
		case key.Matches(msg, keys.Delete):
			if len(c.items) > 0 {
				c.store.DeleteCostItem(c.items[c.cursor].ID)
				return c, c.refresh()
			}
		case key.Matches(msg, keys.Invoice):
			if len(c.items) > 0 {
				item := c.items[c.cursor]
				item.Invoiced = !item.Invoiced
				c.store.UpdateCostItem(item)
				return c, c.refresh()
			}
		}
	}
	return c, nil
}

func (c costsModel) showCostForm(item *model.CostItem) (costsModel, tea.Cmd) {
	if len(c.projects) == 0 {
		return c, func() tea.Msg {
			return statusMsg{text: "Create a project first.", isError: true}
		}
	}

	if item != nil {
		c.editingID = item.ID
		*c.formCategory = string(item.Category)
		*c.formName = item.Name
		*c.formPrice = strconv.FormatFloat(item.Price, 'f', 2, 64)
		*c.formProject = item.ProjectID
		*c.formDate = item.Date.Format("2006-01-02")
		*c.formInvoiced = item.Invoiced
	} else {
		c.editingID = 0
		*c.formCategory = string(model.CategoryLicenses)
		if cat := c.category(); cat != "" {
			*c.formCategory = string(cat)
		}
		*c.formName = ""
		*c.formPrice = ""
		*c.formProject = c.projects[0].ID
		*c.formDate = time.Now().Format("2006-01-02")
		*c.formInvoiced = false
	}

	catOptions := make([]huh.Option[string], len(model.Categories))
	for i, cat := range model.Categories {
		catOptions[i] = huh.NewOption(string(cat), string(cat))
	}
	projOptions := make([]huh.Option[int64], len(c.projects))
	for i, p := range c.projects {
		label := p.Name
		if p.Client != "" {
			label = p.Client + " / " + p.Name
		}
		projOptions[i] = huh.NewOption(label, p.ID)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(c.formCategory),
			huh.NewInput().Title("Name").Value(c.formName),
			huh.NewInput().Title("Price").Value(c.formPrice),
			huh.NewSelect[int64]().Title("Project").Options(projOptions...).Value(c.formProject),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(c.formDate),
			huh.NewConfirm().Title("Invoiced").Value(c.formInvoiced),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c costsModel) updateForm(msg tea.Msg) (costsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false

		price, err := strconv.ParseFloat(*c.formPrice, 64)
		if err != nil {
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Invalid price %q", *c.formPrice), isError: true}
			}
		}
		date, err := time.Parse("2006-01-02", *c.formDate)
		if err != nil {
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Invalid date %q", *c.formDate), isError: true}
			}
		}

		item := model.CostItem{
			ID:        c.editingID,
			Category:  model.CostCategory(*c.formCategory),
			Name:      *c.formName,
			Price:     price,
			ProjectID: *c.formProject,
			Date:      date,
			Invoiced:  *c.formInvoiced,
		}
		if c.editingID > 0 {
			c.store.UpdateCostItem(item)
		} else {
			c.store.CreateCostItem(item)
		}
		return c, c.refresh()
	}

	return c, cmd
}

func (c costsModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Cost")
		if c.editingID > 0 {
			title = titleStyle.Render("Edit Cost")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View()),
		)
	}

	catLabel := "all"
	if cat := c.category(); cat != "" {
		catLabel = string(cat)
	}
	title := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Costs"), "  ", mutedStyle.Render("category: "+catLabel),
	)

	if len(c.items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No cost items. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	byID := make(map[int64]model.Project, len(c.projects))
	for _, p := range c.projects {
		byID[p.ID] = p
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-12s %-10s %-20s %-16s %12s %s",
		"", "Date", "Category", "Name", "Project", "Price", ""))
	rows = append(rows, header)

	var total float64
	for i, item := range c.items {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		project := "-"
		if p, ok := byID[item.ProjectID]; ok {
			project = p.Name
		}
		mark := ""
		if item.Invoiced {
			mark = successStyle.Render(" ✓")
		}
		total += item.Price
		rows = append(rows, style.Render(fmt.Sprintf("%s  %-12s %-10s %-20s %-16s %12s",
			cursor,
			item.Date.Format("2006-01-02"),
			item.Category,
			item.Name,
			project,
			cli.FormatMoney(item.Price, c.currency, c.locale),
		))+mark)
	}

	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  Total: %s", cli.FormatMoney(total, c.currency, c.locale))))
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  i: invoiced  c: category"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
