package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
	"github.com/progsightdimitri-maker/timesheet/internal/store"
)

const feedEntryLimit = 100

type feedModel struct {
	store  *store.Store
	timer  timerModel
	width  int
	height int

	weeks    []engine.WeekGroup
	flat     []model.TimeEntry // entries in display order, for the cursor
	projects []model.Project
	cursor   int

	picking      bool
	pickerCursor int

	formActive bool
	form       *huh.Form
	editingID  int64 // 0 = creating

	// Form field pointers (survive value copies)
	formProject  *int64
	formDate     *string
	formStart    *string
	formEnd      *string
	formDesc     *string
	formBillable *bool
}

func newFeedModel(s *store.Store) feedModel {
	var project int64
	date, start, end, desc := "", "", "", ""
	billable := true
	return feedModel{
		store:        s,
		timer:        newTimerModel(s),
		formProject:  &project,
		formDate:     &date,
		formStart:    &start,
		formEnd:      &end,
		formDesc:     &desc,
		formBillable: &billable,
	}
}

func (f feedModel) Init() tea.Cmd {
	return f.refresh()
}

func (f *feedModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f feedModel) isRunning() bool        { return f.timer.running() }
func (f feedModel) elapsed() time.Duration { return f.timer.currentElapsed() }

type feedDataMsg struct {
	entries  []model.TimeEntry
	projects []model.Project
}

func (f feedModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, _ := f.store.ListEntries(store.EntryFilter{Limit: feedEntryLimit})
		projects, _ := f.store.ListProjects(false)
		return feedDataMsg{entries: entries, projects: projects}
	}
}

func (f feedModel) update(msg tea.Msg) (feedModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	switch msg := msg.(type) {
	case feedDataMsg:
		f.weeks = engine.GroupWeeks(msg.entries)
		f.flat = f.flat[:0]
		for _, w := range f.weeks {
			for _, d := range w.Days {
				f.flat = append(f.flat, d.Entries...)
			}
		}
		f.projects = msg.projects
		if f.cursor >= len(f.flat) {
			f.cursor = max(0, len(f.flat)-1)
		}
		return f, nil

	case tickMsg:
		return f, nil

	case tea.KeyMsg:
		if f.picking {
			return f.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if f.timer.running() {
				return f, nil
			}
			if len(f.projects) == 0 {
				return f, func() tea.Msg {
					return statusMsg{text: "No projects yet. Press 3 to go to Projects and create one.", isError: true}
				}
			}
			if len(f.projects) == 1 {
				f.timer.start(f.projects[0].ID, f.projects[0].Name)
				return f, func() tea.Msg { return timerStartedMsg{} }
			}
			f.picking = true
			f.pickerCursor = 0
			return f, nil

		case key.Matches(msg, keys.Stop):
			return f.stopTimer()

		case key.Matches(msg, keys.Up):
			if f.cursor > 0 {
				f.cursor--
			}
		case key.Matches(msg, keys.Down):
			if f.cursor < len(f.flat)-1 {
				f.cursor++
			}
		case key.Matches(msg, keys.New):
			return f.showEntryForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(f.flat) > 0 {
				e := f.flat[f.cursor]
				return f.showEntryForm(&e)
			}
		case key.Matches(msg, keys.Delete):
			if len(f.flat) > 0 {
				f.store.DeleteEntry(f.flat[f.cursor].ID)
				return f, f.refresh()
			}
		case key.Matches(msg, keys.Invoice):
			if len(f.flat) > 0 {
				e := f.flat[f.cursor]
				f.store.SetEntryInvoiced(e.ID, !e.Invoiced)
				return f, f.refresh()
			}
		}
	}
	return f, nil
}

func (f feedModel) updatePicker(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if f.pickerCursor > 0 {
			f.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if f.pickerCursor < len(f.projects)-1 {
			f.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		p := f.projects[f.pickerCursor]
		f.picking = false
		f.timer.start(p.ID, p.Name)
		return f, func() tea.Msg { return timerStartedMsg{} }
	case key.Matches(msg, keys.Back):
		f.picking = false
	}
	return f, nil
}

func (f feedModel) stopTimer() (feedModel, tea.Cmd) {
	entry, err := f.timer.stop()
	if err != nil {
		return f, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	if entry == nil {
		return f, nil
	}
	return f, tea.Batch(
		f.refresh(),
		func() tea.Msg { return timerStoppedMsg{entry: entry} },
	)
}

func (f feedModel) showEntryForm(e *model.TimeEntry) (feedModel, tea.Cmd) {
	if len(f.projects) == 0 {
		return f, func() tea.Msg {
			return statusMsg{text: "Create a project first.", isError: true}
		}
	}

	if e != nil {
		f.editingID = e.ID
		*f.formProject = e.ProjectID
		*f.formDate = e.Date.Format("2006-01-02")
		*f.formStart = e.Start
		*f.formEnd = e.End
		*f.formDesc = e.Description
		*f.formBillable = e.Billable
	} else {
		f.editingID = 0
		*f.formProject = f.projects[0].ID
		*f.formDate = time.Now().Format("2006-01-02")
		*f.formStart = ""
		*f.formEnd = ""
		*f.formDesc = ""
		*f.formBillable = true
	}

	options := make([]huh.Option[int64], len(f.projects))
	for i, p := range f.projects {
		label := p.Name
		if p.Client != "" {
			label = p.Client + " / " + p.Name
		}
		options[i] = huh.NewOption(label, p.ID)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(options...).Value(f.formProject),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(f.formDate),
			huh.NewInput().Title("Start (HH:MM)").Value(f.formStart),
			huh.NewInput().Title("End (HH:MM)").Value(f.formEnd),
			huh.NewInput().Title("Description").Value(f.formDesc),
			huh.NewConfirm().Title("Billable").Value(f.formBillable),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f feedModel) updateForm(msg tea.Msg) (feedModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		date, err := time.Parse("2006-01-02", *f.formDate)
		if err != nil {
			return f, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Invalid date %q", *f.formDate), isError: true}
			}
		}

		entry := model.TimeEntry{
			ID:          f.editingID,
			ProjectID:   *f.formProject,
			Date:        date,
			Start:       *f.formStart,
			End:         *f.formEnd,
			Description: *f.formDesc,
			Billable:    *f.formBillable,
		}

		if f.editingID > 0 {
			f.store.UpdateEntry(entry)
		} else {
			f.store.CreateEntry(entry)
		}
		return f, f.refresh()
	}

	return f, cmd
}

func (f feedModel) view() string {
	if f.width < 20 {
		return "Terminal too small"
	}

	w := f.width - 4

	if f.formActive && f.form != nil {
		title := titleStyle.Render("New Entry")
		if f.editingID > 0 {
			title = titleStyle.Render("Edit Entry")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", f.form.View()),
		)
	}

	timerPanel := f.renderTimerPanel(w)

	var bottomPanel string
	if f.picking {
		bottomPanel = f.renderProjectPicker(w)
	} else {
		bottomPanel = f.renderWeeks(w)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, bottomPanel)
}

func (f feedModel) renderTimerPanel(w int) string {
	if f.timer.running() {
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatElapsed(f.timer.currentElapsed()))
		indicator := successStyle.Render("●  RUNNING")
		projectLine := highlightStyle.Render(f.timer.projectName)

		content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, projectLine)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start tracking")

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, hint)
	return panelStyle.Width(w).Render(content)
}

func (f feedModel) renderWeeks(w int) string {
	title := titleStyle.Render("Entries")
	if len(f.weeks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	byID := make(map[int64]model.Project, len(f.projects))
	for _, p := range f.projects {
		byID[p.ID] = p
	}

	var rows []string
	rows = append(rows, title)
	idx := 0
	for _, week := range f.weeks {
		weekLabel := fmt.Sprintf("Week of %s", week.Start.Format("Jan 2"))
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s  %s", weekLabel, formatMinutes(week.TotalMinutes))))

		for _, day := range week.Days {
			rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %s  %s",
				day.Date.Format("Mon Jan 02"), formatMinutes(day.TotalMinutes))))

			for _, e := range day.Entries {
				cursor := "  "
				style := normalItemStyle
				if idx == f.cursor {
					cursor = "> "
					style = selectedItemStyle
				}
				idx++

				pName := "?"
				colorDot := " "
				if p, ok := byID[e.ProjectID]; ok {
					pName = p.Name
					colorDot = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
				}
				minutes := engine.DurationMinutes(e.Start, e.End)
				mark := ""
				if e.Invoiced {
					mark = successStyle.Render(" ✓")
				} else if !e.Billable {
					mark = mutedStyle.Render(" ·")
				}
				row := style.Render(fmt.Sprintf("  %s%s %s - %s  %-16s %s", cursor, colorDot, e.Start, e.End, pName, formatMinutes(minutes))) + mark
				rows = append(rows, row)
			}
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  i: invoiced"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (f feedModel) renderProjectPicker(w int) string {
	title := titleStyle.Render("Select Project")

	var rows []string
	rows = append(rows, title)
	for i, p := range f.projects {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == f.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, colorDot, p.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
