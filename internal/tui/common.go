package tui

import (
	"fmt"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewFeed viewState = iota
	viewReports
	viewProjects
	viewCosts
	viewSettings
)

var viewNames = []string{"Feed", "Reports", "Projects", "Costs", "Settings"}

// --- Messages ---

type timerStartedMsg struct{}

type timerStoppedMsg struct {
	entry *model.TimeEntry
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}
