package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
	"github.com/progsightdimitri-maker/timesheet/internal/store"
)

var paletteColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type projectsModel struct {
	store  *store.Store
	width  int
	height int

	projects       []model.Project
	clients        []model.Client
	cursor         int
	clientCursor   int
	showInactive   bool
	viewingClients bool

	formActive bool
	form       *huh.Form
	formType   string // "project", "edit_project", "client", "edit_client"

	// Form field pointers (survive value copies)
	formName   *string
	formClient *string
	formColor  *string
	formRate   *string

	editingID     int64
	editingClient string
}

func newProjectsModel(s *store.Store) projectsModel {
	name, client, color, rate := "", "", paletteColors[0], ""
	return projectsModel{
		store:      s,
		formName:   &name,
		formClient: &client,
		formColor:  &color,
		formRate:   &rate,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type projectsDataMsg struct {
	projects []model.Project
	clients  []model.Client
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, _ := p.store.ListProjects(p.showInactive)
		clients, _ := p.store.ListClients()
		return projectsDataMsg{projects: projects, clients: clients}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		p.clients = msg.clients
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		if p.clientCursor >= len(p.clients) {
			p.clientCursor = max(0, len(p.clients)-1)
		}
		return p, nil

	case tea.KeyMsg:
		if p.viewingClients {
			return p.updateClientList(msg)
		}
		return p.updateProjectList(msg)
	}
	return p, nil
}

func (p projectsModel) updateProjectList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		p.viewingClients = true
		p.clientCursor = 0
	case key.Matches(msg, keys.New):
		return p.showProjectForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(p.projects) > 0 {
			proj := p.projects[p.cursor]
			return p.showProjectForm(&proj)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.projects) > 0 {
			p.store.DeactivateProject(p.projects[p.cursor].ID)
			return p, p.refresh()
		}
	case key.Matches(msg, keys.Invoice):
		p.showInactive = !p.showInactive
		return p, p.refresh()
	}
	return p, nil
}

func (p projectsModel) updateClientList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		p.viewingClients = false
	case key.Matches(msg, keys.Up):
		if p.clientCursor > 0 {
			p.clientCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.clientCursor < len(p.clients)-1 {
			p.clientCursor++
		}
	case key.Matches(msg, keys.New):
		return p.showClientForm()
	case key.Matches(msg, keys.Edit):
		if len(p.clients) > 0 {
			c := p.clients[p.clientCursor]
			return p.showClientColorForm(c)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.clients) > 0 {
			p.store.DeleteClient(p.clients[p.clientCursor].Name)
			return p, p.refresh()
		}
	}
	return p, nil
}

func colorOptions() []huh.Option[string] {
	options := make([]huh.Option[string], len(paletteColors))
	for i, c := range paletteColors {
		options[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}
	return options
}

func (p projectsModel) clientOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range p.clients {
		options = append(options, huh.NewOption(c.Name, c.Name))
	}
	return options
}

func (p projectsModel) showProjectForm(proj *model.Project) (projectsModel, tea.Cmd) {
	if proj != nil {
		p.formType = "edit_project"
		p.editingID = proj.ID
		*p.formName = proj.Name
		*p.formClient = proj.Client
		*p.formColor = proj.Color
		*p.formRate = strconv.FormatFloat(proj.HourlyRate, 'f', 2, 64)
	} else {
		p.formType = "project"
		p.editingID = 0
		*p.formName = ""
		*p.formClient = ""
		*p.formColor = paletteColors[0]
		*p.formRate = "0"
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(p.formName),
			huh.NewSelect[string]().Title("Client").Options(p.clientOptions()...).Value(p.formClient),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(p.formColor),
			huh.NewInput().Title("Hourly Rate").Value(p.formRate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showClientForm() (projectsModel, tea.Cmd) {
	p.formType = "client"
	*p.formName = ""
	*p.formColor = paletteColors[0]

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Client Name").Value(p.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showClientColorForm(c model.Client) (projectsModel, tea.Cmd) {
	p.formType = "edit_client"
	p.editingClient = c.Name
	*p.formColor = c.Color

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		switch p.formType {
		case "project":
			if *p.formName != "" {
				rate, _ := strconv.ParseFloat(*p.formRate, 64)
				p.store.CreateProject(*p.formName, *p.formClient, *p.formColor, rate)
			}
			return p, p.refresh()
		case "edit_project":
			if *p.formName != "" {
				rate, _ := strconv.ParseFloat(*p.formRate, 64)
				p.store.UpdateProject(p.editingID, *p.formName, *p.formClient, *p.formColor, rate)
			}
			return p, p.refresh()
		case "client":
			if *p.formName != "" {
				p.store.CreateClient(*p.formName, *p.formColor)
			}
			return p, p.refresh()
		case "edit_client":
			p.store.UpdateClientColor(p.editingClient, *p.formColor)
			return p, p.refresh()
		}
	}

	return p, cmd
}

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		switch p.formType {
		case "edit_project":
			title = titleStyle.Render("Edit Project")
		case "client":
			title = titleStyle.Render("New Client")
		case "edit_client":
			title = titleStyle.Render("Edit Client")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	if p.viewingClients {
		return p.renderClientList()
	}
	return p.renderProjectList()
}

func (p projectsModel) renderProjectList() string {
	w := p.width - 4
	title := titleStyle.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-16s %10s", "", "Name", "Client", "Rate"))
	rows = append(rows, header)

	for i, proj := range p.projects {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(proj.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		client := proj.Client
		if client == "" {
			client = "-"
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %-16s %10.2f", cursor, colorDot, proj.Name, client, proj.HourlyRate))
		if !proj.Active {
			row += mutedStyle.Render("  (inactive)")
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: deactivate  i: show inactive  enter: clients"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderClientList() string {
	w := p.width - 4
	title := titleStyle.Render("Clients")

	if len(p.clients) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No clients. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, c := range p.clients {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == p.clientCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		count := 0
		for _, proj := range p.projects {
			if proj.Client == c.Name {
				count++
			}
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s", cursor, colorDot, c.Name))+mutedStyle.Render(fmt.Sprintf(" %d projects", count)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new client  e: recolor  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
